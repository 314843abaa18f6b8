package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Frequency periodicidad de una obligación. Los valores coinciden con los almacenados.
type Frequency string

const (
	FrequencyUnique  Frequency = "Única"
	FrequencyMonthly Frequency = "Mensual"
)

// ParseFrequency acepta el valor almacenado o su equivalente sin tilde / en inglés.
func ParseFrequency(s string) (Frequency, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "única", "unica", "unique":
		return FrequencyUnique, true
	case "mensual", "monthly":
		return FrequencyMonthly, true
	}
	return "", false
}

// Obligation obligación de cumplimiento (tabla "Obligacion"): declaración, permiso, pago.
type Obligation struct {
	ID              int64
	CompanyID       int64
	OwnerID         string
	Title           string
	DueDate         time.Time        // fecha de calendario, ver paquete calendar
	EstimatedAmount *decimal.Decimal // nil = sin monto estimado
	Frequency       Frequency
	Completed       bool
	CreatedAt       time.Time
}

// IsMonthly informa si la obligación se repite cada mes.
func (o *Obligation) IsMonthly() bool {
	return o.Frequency == FrequencyMonthly
}

// AmountOrZero monto estimado, cero si no se definió.
func (o *Obligation) AmountOrZero() decimal.Decimal {
	if o.EstimatedAmount == nil {
		return decimal.Zero
	}
	return *o.EstimatedAmount
}

// ObligationView obligación con el nombre de su empresa ya resuelto (join tipado).
type ObligationView struct {
	Obligation
	CompanyDisplayName string
}

// ObligationPatch actualización parcial: los campos nil no se modifican.
type ObligationPatch struct {
	Title           *string
	DueDate         *time.Time
	EstimatedAmount *decimal.Decimal
	Frequency       *Frequency
	Completed       *bool
}

// IsEmpty informa si el patch no modifica ningún campo.
func (p ObligationPatch) IsEmpty() bool {
	return p.Title == nil && p.DueDate == nil && p.EstimatedAmount == nil &&
		p.Frequency == nil && p.Completed == nil
}

// ObligationFilter conjunción de predicados sobre obligaciones. Los campos cero no filtran.
// DueFrom y DueTo son inclusivos; DueBefore es exclusivo.
type ObligationFilter struct {
	OwnerID   string
	CompanyID int64
	Title     string
	Completed *bool
	DueFrom   *time.Time
	DueTo     *time.Time
	DueBefore *time.Time
	Limit     int // 0 = sin límite
}

// Matches evalúa el filtro en memoria con la misma semántica que la consulta SQL.
func (f ObligationFilter) Matches(o *Obligation) bool {
	if f.OwnerID != "" && o.OwnerID != f.OwnerID {
		return false
	}
	if f.CompanyID != 0 && o.CompanyID != f.CompanyID {
		return false
	}
	if f.Title != "" && o.Title != f.Title {
		return false
	}
	if f.Completed != nil && o.Completed != *f.Completed {
		return false
	}
	if f.DueFrom != nil && o.DueDate.Before(*f.DueFrom) {
		return false
	}
	if f.DueTo != nil && o.DueDate.After(*f.DueTo) {
		return false
	}
	if f.DueBefore != nil && !o.DueDate.Before(*f.DueBefore) {
		return false
	}
	return true
}
