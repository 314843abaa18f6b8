package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tramitefacil-api/internal/application/dto"
)

// RequireFeature devuelve un middleware Fiber que corta la petición con 403 si la
// funcionalidad está desactivada por configuración.
func RequireFeature(name string, enabled bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !enabled {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FEATURE_DISABLED",
				Message: "la funcionalidad '" + name + "' no está habilitada",
			})
		}
		return c.Next()
	}
}
