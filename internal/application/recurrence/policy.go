package recurrence

import (
	"context"
	"time"

	"github.com/jhoicas/tramitefacil-api/internal/domain/entity"
)

// SpawnPolicy decide si se genera la obligación del mes siguiente al completar una mensual.
type SpawnPolicy interface {
	ShouldSpawn(ctx context.Context, e *Engine, prev *entity.Obligation, nextDue time.Time, ownerID string) (bool, error)
}

// AlwaysSpawn genera siempre la sucesora, sin comprobar si ya existe. Completar y desmarcar
// repetidamente puede producir sucesoras duplicadas.
type AlwaysSpawn struct{}

func (AlwaysSpawn) ShouldSpawn(context.Context, *Engine, *entity.Obligation, time.Time, string) (bool, error) {
	return true, nil
}

// SkipIfPendingSuccessor no genera la sucesora si ya hay una pendiente equivalente
// (misma búsqueda que usa el retiro).
type SkipIfPendingSuccessor struct{}

func (SkipIfPendingSuccessor) ShouldSpawn(ctx context.Context, e *Engine, prev *entity.Obligation, nextDue time.Time, ownerID string) (bool, error) {
	existing, err := e.FindPendingSuccessor(ctx, prev, nextDue, ownerID)
	if err != nil {
		return false, err
	}
	return existing == nil, nil
}

// PolicyFor devuelve la política según la configuración RECURRENCE_DEDUP.
func PolicyFor(dedup bool) SpawnPolicy {
	if dedup {
		return SkipIfPendingSuccessor{}
	}
	return AlwaysSpawn{}
}
