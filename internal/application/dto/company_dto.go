package dto

import "time"

// CreateCompanyRequest entrada para registrar una empresa.
type CreateCompanyRequest struct {
	TradeName string  `json:"nombre_comercial" validate:"required,max=200"`
	LegalName string  `json:"razon_social" validate:"required,max=200"`
	TaxID     string  `json:"cedula_juridica" validate:"required,max=30"`
	Phone     *string `json:"telefono" validate:"omitempty,max=30"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        int64     `json:"id"`
	OwnerID   string    `json:"user_id"`
	TradeName string    `json:"nombre_comercial"`
	LegalName string    `json:"razon_social"`
	TaxID     string    `json:"cedula_juridica"`
	Phone     *string   `json:"telefono"`
	CreatedAt time.Time `json:"created_at"`
}
