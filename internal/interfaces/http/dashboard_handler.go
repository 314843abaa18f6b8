package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/tramitefacil-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc    *appanalytics.DashboardUseCase
	clock Clock
	log   zerolog.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, clock Clock, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, clock: clock, log: log}
}

// GetSummary devuelve el resumen del usuario.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (proximas_obligaciones[10], obligaciones_vencidas[10],
// total_estimado_mes, fecha_referencia, mes).
// No requiere parámetros; "hoy" se calcula en el servidor con la zona APP_TIMEZONE.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), GetUserID(c), h.clock.Today())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(summary)
}
