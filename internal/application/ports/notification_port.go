package ports

import "context"

// IdentityResolver resuelve el correo de un usuario a partir de su ID.
// Devuelve domain.ErrNotFound si el usuario no existe o no tiene correo.
type IdentityResolver interface {
	GetUserEmail(ctx context.Context, userID string) (string, error)
}

// Mail mensaje HTML listo para enviar.
type Mail struct {
	FromEmail string
	FromName  string
	To        string
	Subject   string
	HTMLBody  string
}

// MailSender envía correos transaccionales. Devuelve el código de estado del proveedor
// o un error envuelto en domain.ErrNotifyFailed.
type MailSender interface {
	Send(ctx context.Context, m Mail) (status int, err error)
}
