// Package analytics contiene el caso de uso del resumen del dashboard: próximas a vencer,
// vencidas y total estimado del mes.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/tramitefacil-api/internal/application/dto"
	"github.com/jhoicas/tramitefacil-api/internal/application/ports"
	"github.com/jhoicas/tramitefacil-api/internal/application/usecase"
	"github.com/jhoicas/tramitefacil-api/internal/domain/calendar"
	"github.com/jhoicas/tramitefacil-api/internal/domain/entity"
	"github.com/jhoicas/tramitefacil-api/internal/domain/repository"
)

const (
	upcomingWindowDays = 30 // horizonte de "próximas a vencer"
	dashboardListLimit = 10 // filas por lista del dashboard
)

// Window filtros que componen el resumen para un usuario y un "hoy" fijo.
type Window struct {
	Upcoming entity.ObligationFilter
	Overdue  entity.ObligationFilter
	Month    entity.ObligationFilter
}

// WindowFor calcula los tres filtros a partir de un único "hoy".
func WindowFor(ownerID string, today time.Time) Window {
	pending := false
	horizon := calendar.AddDays(today, upcomingWindowDays)
	first, last := calendar.MonthBounds(today)
	return Window{
		Upcoming: entity.ObligationFilter{
			OwnerID: ownerID, Completed: &pending, DueFrom: &today, DueTo: &horizon, Limit: dashboardListLimit,
		},
		Overdue: entity.ObligationFilter{
			OwnerID: ownerID, Completed: &pending, DueBefore: &today, Limit: dashboardListLimit,
		},
		// sin filtro de completada: el total del mes incluye lo ya pagado
		Month: entity.ObligationFilter{
			OwnerID: ownerID, DueFrom: &first, DueTo: &last,
		},
	}
}

// DashboardUseCase genera el resumen del dashboard.
//
// Fuente de datos: ObligationRepository (tres lecturas en paralelo).
// Si hay caché, el resultado se guarda por usuario y día; las escrituras de obligaciones
// la invalidan.
type DashboardUseCase struct {
	repo  repository.ObligationRepository
	cache ports.DashboardCache // opcional
	sf    singleflight.Group
	log   zerolog.Logger
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(repo repository.ObligationRepository, cache ports.DashboardCache, log zerolog.Logger) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, cache: cache, log: log}
}

// GetSummary devuelve el resumen para ownerID tomando today como fecha de referencia.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, ownerID string, today time.Time) (*dto.DashboardSummaryDTO, error) {
	today = calendar.DateOf(today)
	if uc.cache == nil {
		return uc.Summarize(ctx, ownerID, today)
	}

	key := ownerID + ":" + calendar.Format(today)
	v, err, _ := uc.sf.Do(key, func() (interface{}, error) {
		cached, version, cacheErr := uc.cache.Get(ctx, ownerID, today)
		if cacheErr == nil && cached != nil {
			return cached, nil
		}
		if cacheErr != nil {
			uc.log.Warn().Err(cacheErr).Msg("dashboard: lectura de caché fallida")
		}
		summary, err := uc.Summarize(ctx, ownerID, today)
		if err != nil {
			return nil, err
		}
		// Sin versión conocida no se escribe: podría pisar una invalidación.
		if cacheErr != nil {
			return summary, nil
		}
		if err := uc.cache.Set(ctx, ownerID, today, version, summary); err != nil {
			uc.log.Warn().Err(err).Msg("dashboard: escritura de caché fallida")
		}
		return summary, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.DashboardSummaryDTO), nil
}

// Summarize calcula el resumen sin caché.
//
// Tres llamadas en paralelo con el mismo "hoy":
//  1. List(upcoming) → pendientes entre hoy y hoy+30
//  2. List(overdue)  → pendientes antes de hoy
//  3. SumEstimated(mes en curso) → total estimado, completadas incluidas
func (uc *DashboardUseCase) Summarize(ctx context.Context, ownerID string, today time.Time) (*dto.DashboardSummaryDTO, error) {
	w := WindowFor(ownerID, today)

	type listResult struct {
		rows []entity.ObligationView
		err  error
	}
	type sumResult struct {
		total decimal.Decimal
		err   error
	}

	upcomingCh := make(chan listResult, 1)
	overdueCh := make(chan listResult, 1)
	monthCh := make(chan sumResult, 1)

	go func() {
		rows, err := uc.repo.List(ctx, w.Upcoming)
		upcomingCh <- listResult{rows, err}
	}()
	go func() {
		rows, err := uc.repo.List(ctx, w.Overdue)
		overdueCh <- listResult{rows, err}
	}()
	go func() {
		total, err := uc.repo.SumEstimated(ctx, w.Month)
		monthCh <- sumResult{total, err}
	}()

	upcoming := <-upcomingCh
	overdue := <-overdueCh
	month := <-monthCh

	if upcoming.err != nil {
		return nil, fmt.Errorf("dashboard: próximas: %w", upcoming.err)
	}
	if overdue.err != nil {
		return nil, fmt.Errorf("dashboard: vencidas: %w", overdue.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: total del mes: %w", month.err)
	}

	return &dto.DashboardSummaryDTO{
		Upcoming:           usecase.ToObligationSummaries(upcoming.rows),
		Overdue:            usecase.ToObligationSummaries(overdue.rows),
		MonthEstimateTotal: month.total.Round(2),
		ReferenceDate:      calendar.Format(today),
		MonthLabel:         calendar.MonthLabelES(today),
	}, nil
}
