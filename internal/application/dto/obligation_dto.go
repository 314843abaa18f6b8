package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateObligationRequest entrada para crear una obligación.
// fecha_vencimiento en formato YYYY-MM-DD; frecuencia "Única" (por defecto) o "Mensual".
type CreateObligationRequest struct {
	CompanyID       int64            `json:"empresa_id" validate:"required,gt=0"`
	Title           string           `json:"titulo" validate:"required,max=200"`
	DueDate         string           `json:"fecha_vencimiento" validate:"required,datetime=2006-01-02"`
	EstimatedAmount *decimal.Decimal `json:"monto_estimado"`
	Frequency       *string          `json:"frecuencia"`
	Completed       bool             `json:"completada"`
}

// UpdateObligationRequest actualización parcial: los campos ausentes no se modifican.
type UpdateObligationRequest struct {
	Title           *string          `json:"titulo" validate:"omitempty,min=1,max=200"`
	DueDate         *string          `json:"fecha_vencimiento" validate:"omitempty,datetime=2006-01-02"`
	EstimatedAmount *decimal.Decimal `json:"monto_estimado"`
	Frequency       *string          `json:"frecuencia"`
	Completed       *bool            `json:"completada"`
}

// ObligationResponse salida de una obligación.
type ObligationResponse struct {
	ID              int64            `json:"id"`
	CompanyID       int64            `json:"empresa_id"`
	OwnerID         string           `json:"user_id"`
	Title           string           `json:"titulo"`
	DueDate         string           `json:"fecha_vencimiento"`
	EstimatedAmount *decimal.Decimal `json:"monto_estimado"`
	Frequency       string           `json:"frecuencia"`
	Completed       bool             `json:"completada"`
	CreatedAt       time.Time        `json:"created_at"`
}

// ObligationSummaryDTO obligación resumida para el dashboard, con el nombre de la empresa.
type ObligationSummaryDTO struct {
	ID                 int64            `json:"id"`
	CompanyID          int64            `json:"empresa_id"`
	Title              string           `json:"titulo"`
	DueDate            string           `json:"fecha_vencimiento"`
	EstimatedAmount    *decimal.Decimal `json:"monto_estimado"`
	Completed          bool             `json:"completada"`
	CompanyDisplayName string           `json:"nombre_empresa"`
}
