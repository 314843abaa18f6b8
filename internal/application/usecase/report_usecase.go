package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jhoicas/tramitefacil-api/internal/application/ports"
	"github.com/jhoicas/tramitefacil-api/internal/domain"
	"github.com/jhoicas/tramitefacil-api/internal/domain/calendar"
	"github.com/jhoicas/tramitefacil-api/internal/domain/entity"
	"github.com/jhoicas/tramitefacil-api/internal/domain/repository"
)

// ReportUseCase genera el PDF de obligaciones de una empresa del usuario.
type ReportUseCase struct {
	companies   repository.CompanyRepository
	obligations repository.ObligationRepository
	generator   ports.ObligationReportGenerator
}

// NewReportUseCase construye el caso de uso inyectando sus dependencias.
func NewReportUseCase(
	companies repository.CompanyRepository,
	obligations repository.ObligationRepository,
	generator ports.ObligationReportGenerator,
) *ReportUseCase {
	return &ReportUseCase{companies: companies, obligations: obligations, generator: generator}
}

// CompanyObligationsPDF devuelve el PDF y el nombre de archivo sugerido.
//
// Retorna:
//   - domain.ErrNotFound si la empresa no existe o es de otro usuario.
func (uc *ReportUseCase) CompanyObligationsPDF(
	ctx context.Context,
	ownerID string,
	companyID int64,
	today time.Time,
) (pdfBytes []byte, filename string, err error) {
	company, err := uc.companies.GetByID(ctx, companyID, ownerID)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", fmt.Errorf("empresa %d: %w", companyID, domain.ErrNotFound)
	}

	rows, err := uc.obligations.List(ctx, entity.ObligationFilter{OwnerID: ownerID, CompanyID: companyID})
	if err != nil {
		return nil, "", fmt.Errorf("reporte: listar obligaciones: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateObligationReport(ctx, company, rows, calendar.DateOf(today))
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generar pdf: %w", err)
	}
	filename = fmt.Sprintf("obligaciones-%s-%s.pdf", slug(company.DisplayName()), calendar.Format(today))
	return pdfBytes, filename, nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// slug nombre seguro para Content-Disposition.
func slug(s string) string {
	r := strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n", "ü", "u")
	out := strings.Trim(nonSlug.ReplaceAllString(r.Replace(strings.ToLower(s)), "-"), "-")
	if out == "" {
		return "empresa"
	}
	return out
}
