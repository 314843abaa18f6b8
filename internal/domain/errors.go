package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// ErrNotFound el recurso no existe o no pertenece al usuario; ambos casos son
	// indistinguibles para el cliente.
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	// ErrNotifyFailed fallo al resolver el correo o enviar un recordatorio.
	ErrNotifyFailed = errors.New("no se pudo notificar")
)
