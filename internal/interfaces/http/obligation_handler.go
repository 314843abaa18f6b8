package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/tramitefacil-api/internal/application/dto"
	"github.com/jhoicas/tramitefacil-api/internal/application/usecase"
)

// ObligationHandler maneja las peticiones HTTP para el recurso Obligación.
type ObligationHandler struct {
	uc  *usecase.ObligationUseCase
	log zerolog.Logger
}

// NewObligationHandler construye el handler inyectando el caso de uso.
func NewObligationHandler(uc *usecase.ObligationUseCase, log zerolog.Logger) *ObligationHandler {
	return &ObligationHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear obligación
// @Tags         obligaciones
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateObligationRequest  true  "Datos de la obligación"
// @Success      201   {object}  dto.ObligationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/obligaciones [post]
func (h *ObligationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateObligationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar obligación (parcial)
// @Description  Al marcar como completada una obligación mensual se crea la del mes siguiente;
// @Description  al desmarcarla se elimina esa sucesora si sigue pendiente.
// @Tags         obligaciones
// @Accept       json
// @Produce      json
// @Param        id    path  int                          true  "ID de la obligación"
// @Param        body  body  dto.UpdateObligationRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ObligationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/obligaciones/{id} [patch]
func (h *ObligationHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	var in dto.UpdateObligationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar obligación
// @Tags         obligaciones
// @Param        id   path  int  true  "ID de la obligación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/obligaciones/{id} [delete]
func (h *ObligationHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c)
	}
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
