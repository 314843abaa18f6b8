package ports

import (
	"context"
	"time"

	"github.com/jhoicas/tramitefacil-api/internal/domain/entity"
)

// ObligationReportGenerator genera el reporte imprimible de obligaciones de una empresa.
type ObligationReportGenerator interface {
	GenerateObligationReport(
		ctx context.Context,
		company *entity.Company,
		obligations []entity.ObligationView,
		generatedOn time.Time,
	) ([]byte, error)
}
