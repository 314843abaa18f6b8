// Package supabase consulta la API de administración de Supabase Auth.
package supabase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/tramitefacil-api/internal/application/ports"
	"github.com/jhoicas/tramitefacil-api/internal/domain"
)

var _ ports.IdentityResolver = (*IdentityClient)(nil)

type adminUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// IdentityClient resuelve correos de usuario con la service_role key.
type IdentityClient struct {
	http *resty.Client
}

// NewIdentityClient construye el cliente contra baseURL (https://<proyecto>.supabase.co).
func NewIdentityClient(baseURL, serviceKey string, timeout time.Duration) *IdentityClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("apikey", serviceKey).
		SetAuthToken(serviceKey).
		SetHeader("Accept", "application/json")
	return &IdentityClient{http: client}
}

// GetUserEmail devuelve el correo del usuario; domain.ErrNotFound si no existe o no tiene.
func (c *IdentityClient) GetUserEmail(ctx context.Context, userID string) (string, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return "", fmt.Errorf("user_id %q: %w", userID, domain.ErrInvalidInput)
	}

	var user adminUser
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", userID).
		SetResult(&user).
		Get("/auth/v1/admin/users/{id}")
	if err != nil {
		return "", fmt.Errorf("supabase admin: %w", err)
	}
	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return "", fmt.Errorf("usuario %s: %w", userID, domain.ErrNotFound)
	case resp.IsError():
		return "", fmt.Errorf("supabase admin: status %d", resp.StatusCode())
	}
	if user.Email == "" {
		return "", fmt.Errorf("usuario %s sin correo: %w", userID, domain.ErrNotFound)
	}
	return user.Email, nil
}
