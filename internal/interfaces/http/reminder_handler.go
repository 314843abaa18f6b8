package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/tramitefacil-api/internal/application/dto"
	"github.com/jhoicas/tramitefacil-api/internal/application/reminder"
)

// ReminderHandler disparo manual del envío de recordatorios.
type ReminderHandler struct {
	dispatcher *reminder.Dispatcher
	clock      Clock
	log        zerolog.Logger
}

// NewReminderHandler construye el handler.
func NewReminderHandler(d *reminder.Dispatcher, clock Clock, log zerolog.Logger) *ReminderHandler {
	return &ReminderHandler{dispatcher: d, clock: clock, log: log}
}

// Run godoc
// @Summary      Ejecutar recordatorios ahora
// @Description  Envía los recordatorios de todos los usuarios como lo hace el scheduler.
// @Tags         recordatorios
// @Produce      json
// @Success      200  {object}  dto.ReminderRunResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/recordatorios/ejecutar [post]
func (h *ReminderHandler) Run(c *fiber.Ctx) error {
	h.log.Info().Str("user_id", GetUserID(c)).Msg("recordatorios: disparo manual")
	report, err := h.dispatcher.RunDailyReminders(c.UserContext(), h.clock.Time())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.ReminderRunResponse{
		Status:      "ok",
		HorizonDays: report.HorizonDays,
		Obligations: report.Obligations,
		Users:       report.Users,
		Sent:        report.Sent,
		Failed:      report.Failed,
	})
}
