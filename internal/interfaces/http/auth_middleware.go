package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/tramitefacil-api/internal/application/dto"
	"github.com/jhoicas/tramitefacil-api/pkg/jwt"
)

// Locals keys para UserID y Email en Fiber.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
)

// AuthMiddleware valida el access token de Supabase Auth (Bearer) y deja en c.Locals el
// UUID del usuario (sub) y su email. Todo lo que sigue filtra los datos por ese UUID.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return unauthorized(c, "INVALID_TOKEN", "formato: Bearer <token>")
		}
		if token == "" {
			return unauthorized(c, "MISSING_TOKEN", "Authorization header requerido")
		}

		sub, email, err := jwt.Parse(jwtSecret, token)
		if err != nil {
			return unauthorized(c, "INVALID_TOKEN", "token inválido o expirado")
		}
		userID, err := uuid.Parse(sub)
		if err != nil {
			return unauthorized(c, "INVALID_TOKEN", "sub del token no es un UUID")
		}

		c.Locals(LocalUserID, userID.String())
		c.Locals(LocalEmail, email)
		return c.Next()
	}
}

// bearerToken extrae el token del header. ok=false si el esquema no es Bearer; un header
// ausente o sin token devuelve ("", true).
func bearerToken(header string) (token string, ok bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", true
	}
	scheme, rest, _ := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

func unauthorized(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// GetUserID devuelve el UUID del usuario autenticado; vacío si la ruta no pasó por AuthMiddleware.
func GetUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}
