package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tramitefacil-api/internal/application/usecase"
	"github.com/jhoicas/tramitefacil-api/internal/domain"
	"github.com/jhoicas/tramitefacil-api/internal/domain/calendar"
	"github.com/jhoicas/tramitefacil-api/internal/domain/entity"
)

type fakeGenerator struct {
	company *entity.Company
	rows    []entity.ObligationView
	on      time.Time
	err     error
}

func (g *fakeGenerator) GenerateObligationReport(_ context.Context, c *entity.Company, rows []entity.ObligationView, on time.Time) ([]byte, error) {
	g.company, g.rows, g.on = c, rows, on
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-1.3"), nil
}

func TestCompanyObligationsPDF(t *testing.T) {
	f := newFixture(t)
	f.create(t, "IVA", "2024-03-15", "Mensual")
	f.create(t, "Patente", "2024-02-01", "Única")
	gen := &fakeGenerator{}
	uc := usecase.NewReportUseCase(f.store.Companies(), f.store.Obligations(), gen)

	pdf, name, err := uc.CompanyObligationsPDF(context.Background(), ownerA, f.companyA, time.Date(2024, 2, 15, 18, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), pdf)
	assert.Equal(t, "obligaciones-ferreteria-el-clavo-2024-02-15.pdf", name)
	assert.Equal(t, calendar.Date(2024, 2, 15), gen.on)
	require.Len(t, gen.rows, 2)
	assert.Equal(t, "Patente", gen.rows[0].Title, "ordenadas por vencimiento")
}

func TestCompanyObligationsPDF_EmpresaAjena(t *testing.T) {
	f := newFixture(t)
	gen := &fakeGenerator{}
	uc := usecase.NewReportUseCase(f.store.Companies(), f.store.Obligations(), gen)

	_, _, err := uc.CompanyObligationsPDF(context.Background(), ownerB, f.companyA, time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, gen.company, "no se genera nada")
}

func TestCompanyObligationsPDF_ErrorDelGenerador(t *testing.T) {
	f := newFixture(t)
	uc := usecase.NewReportUseCase(f.store.Companies(), f.store.Obligations(), &fakeGenerator{err: errors.New("fuente")})

	_, _, err := uc.CompanyObligationsPDF(context.Background(), ownerA, f.companyA, time.Now())
	assert.ErrorContains(t, err, "generar pdf")
}
