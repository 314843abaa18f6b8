// Package recurrence mantiene la serie de obligaciones mensuales: al completar una
// obligación mensual se genera la del mes siguiente y al desmarcarla se retira.
package recurrence

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/tramitefacil-api/internal/domain/calendar"
	"github.com/jhoicas/tramitefacil-api/internal/domain/entity"
	"github.com/jhoicas/tramitefacil-api/internal/domain/repository"
)

// Action efecto aplicado por el motor en una invocación.
type Action string

const (
	ActionNone      Action = "none"
	ActionSpawned   Action = "spawned"
	ActionSkipped   Action = "skipped" // la política decidió no generar
	ActionRetracted Action = "retracted"
	ActionFailed    Action = "failed"
)

// Outcome resultado de OnCompletionChange, útil para logs y tests.
type Outcome struct {
	Action      Action
	SuccessorID int64
}

// Engine aplica la recurrencia mensual sobre el repositorio de obligaciones.
// No es atómico respecto de la actualización que lo dispara: cada paso es una sentencia
// independiente y una actualización concurrente puede dejar la serie inconsistente.
type Engine struct {
	repo   repository.ObligationRepository
	policy SpawnPolicy
	log    zerolog.Logger
}

// NewEngine construye el motor. policy nil equivale a AlwaysSpawn.
func NewEngine(repo repository.ObligationRepository, policy SpawnPolicy, log zerolog.Logger) *Engine {
	if policy == nil {
		policy = AlwaysSpawn{}
	}
	return &Engine{repo: repo, policy: policy, log: log}
}

// OnCompletionChange se invoca después de persistir el cambio de completada, con el
// estado previo de la obligación. Hace como máximo un insert o un delete. Los errores se
// registran y no se propagan: la actualización principal ya quedó confirmada.
func (e *Engine) OnCompletionChange(ctx context.Context, prev *entity.Obligation, newCompleted bool, ownerID string) Outcome {
	if prev == nil || !prev.IsMonthly() {
		return Outcome{Action: ActionNone}
	}
	nextDue := calendar.AddMonth(prev.DueDate)
	log := e.log.With().
		Int64("obligation_id", prev.ID).
		Str("owner_id", ownerID).
		Str("next_due", calendar.Format(nextDue)).
		Logger()

	if newCompleted {
		out, err := e.spawn(ctx, prev, nextDue, ownerID)
		if err != nil {
			log.Error().Err(err).Msg("recurrencia: no se pudo generar la siguiente obligación")
			return Outcome{Action: ActionFailed}
		}
		log.Info().Str("action", string(out.Action)).Int64("successor_id", out.SuccessorID).Msg("recurrencia: completada")
		return out
	}

	out, err := e.retract(ctx, prev, nextDue, ownerID)
	if err != nil {
		log.Error().Err(err).Msg("recurrencia: no se pudo retirar la siguiente obligación")
		return Outcome{Action: ActionFailed}
	}
	log.Info().Str("action", string(out.Action)).Int64("successor_id", out.SuccessorID).Msg("recurrencia: desmarcada")
	return out
}

func (e *Engine) spawn(ctx context.Context, prev *entity.Obligation, nextDue time.Time, ownerID string) (Outcome, error) {
	ok, err := e.policy.ShouldSpawn(ctx, e, prev, nextDue, ownerID)
	if err != nil {
		return Outcome{}, fmt.Errorf("evaluar política: %w", err)
	}
	if !ok {
		return Outcome{Action: ActionSkipped}, nil
	}
	next := &entity.Obligation{
		CompanyID:       prev.CompanyID,
		OwnerID:         ownerID,
		Title:           prev.Title,
		DueDate:         nextDue,
		EstimatedAmount: prev.EstimatedAmount,
		Frequency:       entity.FrequencyMonthly,
		Completed:       false,
	}
	if err := e.repo.Create(ctx, next); err != nil {
		return Outcome{}, fmt.Errorf("insertar sucesora: %w", err)
	}
	return Outcome{Action: ActionSpawned, SuccessorID: next.ID}, nil
}

func (e *Engine) retract(ctx context.Context, prev *entity.Obligation, nextDue time.Time, ownerID string) (Outcome, error) {
	successor, err := e.FindPendingSuccessor(ctx, prev, nextDue, ownerID)
	if err != nil {
		return Outcome{}, err
	}
	if successor == nil {
		return Outcome{Action: ActionNone}, nil
	}
	if _, err := e.repo.Delete(ctx, successor.ID, ownerID); err != nil {
		return Outcome{}, fmt.Errorf("eliminar sucesora %d: %w", successor.ID, err)
	}
	return Outcome{Action: ActionRetracted, SuccessorID: successor.ID}, nil
}

// FindPendingSuccessor busca la primera obligación pendiente con el mismo título, empresa
// y dueño que vence exactamente en nextDue. Devuelve nil si no hay ninguna.
func (e *Engine) FindPendingSuccessor(ctx context.Context, prev *entity.Obligation, nextDue time.Time, ownerID string) (*entity.Obligation, error) {
	pending := false
	rows, err := e.repo.List(ctx, entity.ObligationFilter{
		OwnerID:   ownerID,
		CompanyID: prev.CompanyID,
		Title:     prev.Title,
		Completed: &pending,
		DueFrom:   &nextDue,
		DueTo:     &nextDue,
		Limit:     1,
	})
	if err != nil {
		return nil, fmt.Errorf("buscar sucesora: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0].Obligation, nil
}
