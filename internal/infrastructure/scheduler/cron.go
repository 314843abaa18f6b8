// Package scheduler dispara trabajos periódicos (recordatorios) con expresiones cron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job trabajo programado. now es la hora de disparo en la zona del scheduler.
type Job func(ctx context.Context, now time.Time)

// Scheduler ejecuta un Job en cada expresión configurada. Si una ejecución sigue en curso
// cuando llega la siguiente, la nueva se omite.
type Scheduler struct {
	cron   *cron.Cron
	loc    *time.Location
	ctx    context.Context
	cancel context.CancelFunc
	log    zerolog.Logger
}

// New registra job en cada expresión de specs (formato estándar de 5 campos o descriptores
// como @daily) evaluadas en loc.
func New(specs []string, loc *time.Location, job Job, log zerolog.Logger) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	cl := cronLogger{log: log}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{cron: c, loc: loc, ctx: ctx, cancel: cancel, log: log}

	for _, spec := range specs {
		_, err := c.AddFunc(spec, func() {
			start := time.Now().In(loc)
			log.Info().Str("spec", spec).Msg("scheduler: inicio de ejecución")
			job(s.ctx, start)
			log.Info().Str("spec", spec).Dur("duracion", time.Since(start)).Msg("scheduler: fin de ejecución")
		})
		if err != nil {
			cancel()
			return nil, fmt.Errorf("expresión cron %q: %w", spec, err)
		}
	}
	return s, nil
}

// Start arranca el scheduler en segundo plano.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Int("trabajos", len(s.cron.Entries())).Msg("scheduler iniciado")
}

// NextRuns próximas ejecuciones de cada expresión después de t, evaluadas en la zona
// del scheduler sin importar la zona de t.
func (s *Scheduler) NextRuns(t time.Time) []time.Time {
	entries := s.cron.Entries()
	out := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Schedule.Next(t.In(s.loc)))
	}
	return out
}

// Stop deja de programar ejecuciones y espera a la que esté en curso. Si ctx vence antes,
// cancela el contexto del trabajo y devuelve ctx.Err().
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.cancel()
		return nil
	case <-ctx.Done():
		s.cancel()
		return ctx.Err()
	}
}

// cronLogger adapta zerolog a cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
