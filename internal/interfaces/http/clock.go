package http

import (
	"time"

	"github.com/jhoicas/tramitefacil-api/internal/domain/calendar"
)

// Clock define el "hoy" de la API en la zona horaria configurada.
type Clock struct {
	Location *time.Location
	Now      func() time.Time // nil = time.Now
}

// Time instante actual.
func (k Clock) Time() time.Time {
	if k.Now != nil {
		return k.Now()
	}
	return time.Now()
}

// Today fecha de calendario actual en Location.
func (k Clock) Today() time.Time {
	return calendar.Today(k.Time(), k.Location)
}
