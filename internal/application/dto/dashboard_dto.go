package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	// Pendientes que vencen entre hoy y hoy+30 días (máx. 10, por fecha ascendente)
	Upcoming []ObligationSummaryDTO `json:"proximas_obligaciones"`
	// Pendientes con fecha anterior a hoy (máx. 10, por fecha ascendente)
	Overdue []ObligationSummaryDTO `json:"obligaciones_vencidas"`
	// Suma de montos estimados del mes en curso, completadas o no
	MonthEstimateTotal decimal.Decimal `json:"total_estimado_mes"`

	ReferenceDate string `json:"fecha_referencia"` // "hoy" usado en el cálculo
	MonthLabel    string `json:"mes"`              // ej: "Febrero 2026"
}
