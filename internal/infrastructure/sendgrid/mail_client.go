// Package sendgrid envía correos con la API v3 de SendGrid.
package sendgrid

import (
	"context"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/tramitefacil-api/internal/application/ports"
	"github.com/jhoicas/tramitefacil-api/internal/domain"
)

var _ ports.MailSender = (*MailClient)(nil)

type address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type personalization struct {
	To []address `json:"to"`
}

type content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             address           `json:"from"`
	Subject          string            `json:"subject"`
	Content          []content         `json:"content"`
}

// MailClient implementa ports.MailSender. Sin reintentos.
type MailClient struct {
	http *resty.Client
}

// NewMailClient construye el cliente. baseURL por defecto: https://api.sendgrid.com.
func NewMailClient(baseURL, apiKey string, timeout time.Duration) *MailClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json")
	return &MailClient{http: client}
}

// Send envía el correo. SendGrid responde 202 cuando lo acepta.
func (c *MailClient) Send(ctx context.Context, m ports.Mail) (int, error) {
	body := sendRequest{
		Personalizations: []personalization{{To: []address{{Email: m.To}}}},
		From:             address{Email: m.FromEmail, Name: m.FromName},
		Subject:          m.Subject,
		Content:          []content{{Type: "text/html", Value: m.HTMLBody}},
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post("/v3/mail/send")
	if err != nil {
		return 0, fmt.Errorf("sendgrid: %v: %w", err, domain.ErrNotifyFailed)
	}
	if resp.StatusCode() != http.StatusAccepted && resp.StatusCode() != http.StatusOK {
		return resp.StatusCode(), fmt.Errorf("sendgrid: status %d: %s: %w",
			resp.StatusCode(), truncate(resp.String(), 200), domain.ErrNotifyFailed)
	}
	return resp.StatusCode(), nil
}

// truncate corta s a lo sumo en n bytes sin partir una runa.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
