// Package reminder envía por correo las obligaciones pendientes próximas a vencer.
package reminder

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/tramitefacil-api/internal/application/ports"
	"github.com/jhoicas/tramitefacil-api/internal/domain/calendar"
	"github.com/jhoicas/tramitefacil-api/internal/domain/entity"
	"github.com/jhoicas/tramitefacil-api/internal/domain/repository"
)

// DefaultHorizonDays ventana de anticipación si no se configura otra.
const DefaultHorizonDays = 7

// Config parámetros del dispatcher.
type Config struct {
	HorizonDays int
	Location    *time.Location // define "hoy"; nil = UTC
	FromEmail   string
	FromName    string
}

// Report resultado de una ejecución.
type Report struct {
	ReferenceDate time.Time
	HorizonDays   int
	Obligations   int // pendientes dentro de la ventana
	Users         int // usuarios con al menos una
	Sent          int
	Failed        int
}

// Dispatcher agrupa las obligaciones por usuario y envía un correo a cada uno.
// No escribe en el store ni reintenta envíos.
type Dispatcher struct {
	repo     repository.ObligationRepository
	identity ports.IdentityResolver
	mailer   ports.MailSender
	cfg      Config
	log      zerolog.Logger
}

// NewDispatcher construye el dispatcher.
func NewDispatcher(
	repo repository.ObligationRepository,
	identity ports.IdentityResolver,
	mailer ports.MailSender,
	cfg Config,
	log zerolog.Logger,
) *Dispatcher {
	if cfg.HorizonDays < 0 {
		cfg.HorizonDays = DefaultHorizonDays
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Dispatcher{repo: repo, identity: identity, mailer: mailer, cfg: cfg, log: log}
}

// HorizonDays ventana configurada.
func (d *Dispatcher) HorizonDays() int { return d.cfg.HorizonDays }

// RunDailyReminders envía los recordatorios de las obligaciones pendientes que vencen entre
// hoy y hoy+HorizonDays. Solo devuelve error si no se pudo leer el store; los fallos de un
// usuario se registran y no detienen a los demás.
func (d *Dispatcher) RunDailyReminders(ctx context.Context, now time.Time) (Report, error) {
	today := calendar.Today(now, d.cfg.Location)
	limit := calendar.AddDays(today, d.cfg.HorizonDays)
	pending := false

	report := Report{ReferenceDate: today, HorizonDays: d.cfg.HorizonDays}
	rows, err := d.repo.List(ctx, entity.ObligationFilter{
		Completed: &pending,
		DueFrom:   &today,
		DueTo:     &limit,
	})
	if err != nil {
		return report, fmt.Errorf("recordatorios: listar obligaciones: %w", err)
	}
	report.Obligations = len(rows)

	byOwner := make(map[string][]entity.ObligationView)
	for _, r := range rows {
		byOwner[r.OwnerID] = append(byOwner[r.OwnerID], r)
	}
	owners := make([]string, 0, len(byOwner))
	for owner := range byOwner {
		owners = append(owners, owner)
	}
	sort.Strings(owners)
	report.Users = len(owners)

	for _, owner := range owners {
		if ctx.Err() != nil {
			break
		}
		log := d.log.With().Str("user_id", owner).Int("obligaciones", len(byOwner[owner])).Logger()
		if err := d.notify(ctx, owner, byOwner[owner]); err != nil {
			report.Failed++
			log.Error().Err(err).Msg("recordatorio no enviado")
			continue
		}
		report.Sent++
		log.Info().Msg("recordatorio enviado")
	}

	d.log.Info().
		Str("fecha", calendar.Format(today)).
		Int("obligaciones", report.Obligations).
		Int("usuarios", report.Users).
		Int("enviados", report.Sent).
		Int("fallidos", report.Failed).
		Msg("recordatorios: ejecución terminada")
	return report, nil
}

func (d *Dispatcher) notify(ctx context.Context, owner string, rows []entity.ObligationView) error {
	email, err := d.identity.GetUserEmail(ctx, owner)
	if err != nil {
		return fmt.Errorf("resolver correo: %w", err)
	}
	body, err := RenderHTML(rows)
	if err != nil {
		return err
	}
	status, err := d.mailer.Send(ctx, ports.Mail{
		FromEmail: d.cfg.FromEmail,
		FromName:  d.cfg.FromName,
		To:        email,
		Subject:   Subject,
		HTMLBody:  body,
	})
	if err != nil {
		return fmt.Errorf("enviar a %s (status %d): %w", email, status, err)
	}
	return nil
}
