package reminder_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tramitefacil-api/internal/application/ports"
	"github.com/jhoicas/tramitefacil-api/internal/application/reminder"
	"github.com/jhoicas/tramitefacil-api/internal/domain"
	"github.com/jhoicas/tramitefacil-api/internal/domain/calendar"
	"github.com/jhoicas/tramitefacil-api/internal/domain/entity"
	"github.com/jhoicas/tramitefacil-api/internal/infrastructure/memstore"
)

const (
	userA = "aaaaaaaa-0000-0000-0000-00000000000a"
	userB = "bbbbbbbb-0000-0000-0000-00000000000b"
	userC = "cccccccc-0000-0000-0000-00000000000c"
)

type fakeIdentity struct {
	emails map[string]string
}

func (f *fakeIdentity) GetUserEmail(_ context.Context, id string) (string, error) {
	if e, ok := f.emails[id]; ok {
		return e, nil
	}
	return "", fmt.Errorf("usuario %s: %w", id, domain.ErrNotFound)
}

type fakeMailer struct {
	mu     sync.Mutex
	sent   []ports.Mail
	failTo string
}

func (f *fakeMailer) Send(_ context.Context, m ports.Mail) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m.To == f.failTo {
		return 500, fmt.Errorf("proveedor caído: %w", domain.ErrNotifyFailed)
	}
	f.sent = append(f.sent, m)
	return 202, nil
}

func (f *fakeMailer) to(addr string) *ports.Mail {
	for i := range f.sent {
		if f.sent[i].To == addr {
			return &f.sent[i]
		}
	}
	return nil
}

// 2024-03-01 10:00 en Costa Rica (UTC-6)
var now = time.Date(2024, 3, 1, 16, 0, 0, 0, time.UTC)

func seed(t *testing.T) *memstore.Store {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()

	company := func(owner, name string) int64 {
		c := &entity.Company{OwnerID: owner, TradeName: name, LegalName: name + " S.A."}
		require.NoError(t, store.Companies().Create(ctx, c))
		return c.ID
	}
	add := func(owner string, companyID int64, title string, due time.Time, completed bool) {
		o := &entity.Obligation{CompanyID: companyID, OwnerID: owner, Title: title, DueDate: due,
			Frequency: entity.FrequencyUnique, Completed: completed}
		require.NoError(t, store.Obligations().Create(ctx, o))
	}

	ca := company(userA, "Soda <La Esquina>")
	cb := company(userB, "Ferretería Brenes")
	cc := company(userC, "Panadería Castro")

	add(userA, ca, "IVA", calendar.Date(2024, 3, 1), false)
	add(userA, ca, "Patente municipal", calendar.Date(2024, 3, 8), false)
	add(userA, ca, "Fuera de ventana", calendar.Date(2024, 3, 9), false)
	add(userB, cb, "CCSS planilla", calendar.Date(2024, 3, 5), false)
	add(userB, cb, "Pagada", calendar.Date(2024, 3, 5), true)
	add(userC, cc, "Vencida", calendar.Date(2024, 2, 29), false)
	add(userC, cc, "Completada", calendar.Date(2024, 3, 2), true)
	return store
}

func newDispatcher(store *memstore.Store, id ports.IdentityResolver, m ports.MailSender) *reminder.Dispatcher {
	loc, _ := time.LoadLocation("America/Costa_Rica")
	return reminder.NewDispatcher(store.Obligations(), id, m, reminder.Config{
		HorizonDays: 7,
		Location:    loc,
		FromEmail:   "alertas@tramitefacil.test",
		FromName:    "Alertas",
	}, zerolog.Nop())
}

func TestRunDailyReminders_UnCorreoPorUsuario(t *testing.T) {
	store := seed(t)
	before := store.AllObligations()
	id := &fakeIdentity{emails: map[string]string{userA: "a@x.test", userB: "b@x.test", userC: "c@x.test"}}
	mailer := &fakeMailer{}

	report, err := newDispatcher(store, id, mailer).RunDailyReminders(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Obligations)
	assert.Equal(t, 2, report.Users)
	assert.Equal(t, 2, report.Sent)
	assert.Zero(t, report.Failed)
	assert.Equal(t, calendar.Date(2024, 3, 1), report.ReferenceDate)

	require.Len(t, mailer.sent, 2)
	a := mailer.to("a@x.test")
	require.NotNil(t, a)
	assert.Equal(t, reminder.Subject, a.Subject)
	assert.Equal(t, "alertas@tramitefacil.test", a.FromEmail)
	assert.Contains(t, a.HTMLBody, "<strong>IVA</strong>")
	assert.Contains(t, a.HTMLBody, "01 de marzo")
	assert.Contains(t, a.HTMLBody, "08 de marzo")
	assert.Contains(t, a.HTMLBody, "Soda &lt;La Esquina&gt;")
	assert.NotContains(t, a.HTMLBody, "Fuera de ventana")

	b := mailer.to("b@x.test")
	require.NotNil(t, b)
	assert.Contains(t, b.HTMLBody, "CCSS planilla")
	assert.NotContains(t, b.HTMLBody, "Pagada")

	assert.Nil(t, mailer.to("c@x.test"))
	assert.Equal(t, before, store.AllObligations(), "el dispatcher no escribe")
}

func TestRunDailyReminders_FalloDeUnUsuarioNoDetieneAlResto(t *testing.T) {
	store := seed(t)
	id := &fakeIdentity{emails: map[string]string{userA: "a@x.test", userB: "b@x.test"}}
	mailer := &fakeMailer{failTo: "a@x.test"}

	report, err := newDispatcher(store, id, mailer).RunDailyReminders(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 1, report.Failed)
	assert.NotNil(t, mailer.to("b@x.test"))
}

func TestRunDailyReminders_CorreoNoResuelto(t *testing.T) {
	store := seed(t)
	id := &fakeIdentity{emails: map[string]string{userB: "b@x.test"}}
	mailer := &fakeMailer{}

	report, err := newDispatcher(store, id, mailer).RunDailyReminders(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "b@x.test", mailer.sent[0].To)
}

func TestRunDailyReminders_ErrorDelStore(t *testing.T) {
	store := seed(t)
	store.FailOn(memstore.OpListObligations, errors.New("conexión rechazada"))
	mailer := &fakeMailer{}

	_, err := newDispatcher(store, &fakeIdentity{}, mailer).RunDailyReminders(context.Background(), now)
	require.Error(t, err)
	assert.Empty(t, mailer.sent)
}

func TestRunDailyReminders_SinPendientes(t *testing.T) {
	mailer := &fakeMailer{}
	report, err := newDispatcher(memstore.New(), &fakeIdentity{}, mailer).RunDailyReminders(context.Background(), now)
	require.NoError(t, err)
	assert.Zero(t, report.Users)
	assert.Empty(t, mailer.sent)
}

func TestRenderHTML_MontoEnColones(t *testing.T) {
	amount := decimal.RequireFromString("150000.50")
	body, err := reminder.RenderHTML([]entity.ObligationView{{
		Obligation:         entity.Obligation{Title: "Renta", DueDate: calendar.Date(2024, 1, 2), EstimatedAmount: &amount},
		CompanyDisplayName: "Tienda",
	}})
	require.NoError(t, err)
	assert.Contains(t, body, "02 de enero")
	assert.Contains(t, body, "₡150.000")
	assert.Contains(t, body, "Inicia sesión en TrámiteFácil")
}
