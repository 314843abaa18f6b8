package usecase

import (
	"github.com/jhoicas/tramitefacil-api/internal/application/dto"
	"github.com/jhoicas/tramitefacil-api/internal/domain/calendar"
	"github.com/jhoicas/tramitefacil-api/internal/domain/entity"
)

// ToObligationResponse convierte la entidad al DTO de salida.
func ToObligationResponse(o *entity.Obligation) *dto.ObligationResponse {
	if o == nil {
		return nil
	}
	return &dto.ObligationResponse{
		ID:              o.ID,
		CompanyID:       o.CompanyID,
		OwnerID:         o.OwnerID,
		Title:           o.Title,
		DueDate:         calendar.Format(o.DueDate),
		EstimatedAmount: o.EstimatedAmount,
		Frequency:       string(o.Frequency),
		Completed:       o.Completed,
		CreatedAt:       o.CreatedAt,
	}
}

// ToObligationSummaries convierte la vista con empresa al DTO del dashboard.
// Nunca devuelve nil para que el JSON sea [] y no null.
func ToObligationSummaries(rows []entity.ObligationView) []dto.ObligationSummaryDTO {
	out := make([]dto.ObligationSummaryDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ObligationSummaryDTO{
			ID:                 r.ID,
			CompanyID:          r.CompanyID,
			Title:              r.Title,
			DueDate:            calendar.Format(r.DueDate),
			EstimatedAmount:    r.EstimatedAmount,
			Completed:          r.Completed,
			CompanyDisplayName: r.CompanyDisplayName,
		})
	}
	return out
}
