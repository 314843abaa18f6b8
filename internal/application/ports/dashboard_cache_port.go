package ports

import (
	"context"
	"time"

	"github.com/jhoicas/tramitefacil-api/internal/application/dto"
)

// DashboardCache caché del resumen del dashboard por usuario y día.
//
// Cada usuario tiene una versión que Invalidate avanza. Get devuelve la versión vigente
// junto al resumen (nil en un miss) y Set guarda bajo la versión leída: un resumen
// calculado antes de una invalidación queda inalcanzable.
type DashboardCache interface {
	Get(ctx context.Context, ownerID string, day time.Time) (summary *dto.DashboardSummaryDTO, version int64, err error)
	Set(ctx context.Context, ownerID string, day time.Time, version int64, summary *dto.DashboardSummaryDTO) error
	// Invalidate descarta todas las entradas del usuario (cualquier día).
	Invalidate(ctx context.Context, ownerID string) error
}
