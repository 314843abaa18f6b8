package entity

import "time"

// Company empresa registrada por un usuario (tabla "Empresa"). Todas sus obligaciones
// comparten el mismo dueño.
type Company struct {
	ID        int64
	OwnerID   string // UUID del usuario en Supabase Auth
	LegalName string // razón social
	TradeName string // nombre comercial, el que se muestra
	TaxID     string // cédula jurídica
	Phone     *string
	CreatedAt time.Time
}

// DisplayName nombre a mostrar en listados y correos.
func (c *Company) DisplayName() string {
	if c.TradeName != "" {
		return c.TradeName
	}
	return c.LegalName
}
