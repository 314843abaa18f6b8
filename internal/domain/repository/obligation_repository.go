package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tramitefacil-api/internal/domain/entity"
)

// ObligationRepository puerto de persistencia de obligaciones. Cada método es una única
// sentencia; no hay transacciones entre llamadas.
type ObligationRepository interface {
	// Create persiste la obligación y completa ID y CreatedAt.
	Create(ctx context.Context, o *entity.Obligation) error
	// GetByID devuelve (nil, nil) si no existe o pertenece a otro usuario.
	GetByID(ctx context.Context, id int64, ownerID string) (*entity.Obligation, error)
	// Update aplica el patch y devuelve la fila resultante; (nil, nil) si no existe.
	Update(ctx context.Context, id int64, ownerID string, patch entity.ObligationPatch) (*entity.Obligation, error)
	// Delete devuelve false si no había fila que borrar.
	Delete(ctx context.Context, id int64, ownerID string) (bool, error)

	// List devuelve las obligaciones que cumplen el filtro, con el nombre de la empresa,
	// ordenadas por fecha de vencimiento ascendente (y por id ante empates).
	List(ctx context.Context, filter entity.ObligationFilter) ([]entity.ObligationView, error)
	// SumEstimated suma monto_estimado (nulos = 0) de las filas que cumplen el filtro.
	SumEstimated(ctx context.Context, filter entity.ObligationFilter) (decimal.Decimal, error)
}
