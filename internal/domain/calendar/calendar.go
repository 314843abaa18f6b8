// Package calendar opera con fechas de calendario (sin hora). Una fecha se representa
// como time.Time a medianoche UTC para que comparaciones y sumas no dependan de la zona.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Layout formato ISO de una fecha de calendario.
const Layout = "2006-01-02"

var monthsES = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// Date construye la fecha y/m/d. Valores fuera de rango se normalizan como en time.Date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf devuelve la fecha de calendario de t en su propia zona horaria.
func DateOf(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// Today devuelve la fecha actual en loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(now.In(loc))
}

// Parse interpreta "YYYY-MM-DD".
func Parse(s string) (time.Time, error) {
	d, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q: %w", s, err)
	}
	return d, nil
}

// Format devuelve la fecha en formato ISO.
func Format(d time.Time) string {
	return d.Format(Layout)
}

// DaysIn número de días del mes de d.
func DaysIn(d time.Time) int {
	return Date(d.Year(), d.Month()+1, 0).Day()
}

// MonthBounds primer y último día del mes de d, ambos inclusive.
func MonthBounds(d time.Time) (first, last time.Time) {
	first = Date(d.Year(), d.Month(), 1)
	last = Date(d.Year(), d.Month(), DaysIn(d))
	return first, last
}

// AddMonths suma n meses conservando el día; si el mes destino es más corto el día se
// recorta al último del mes (31 ene + 1 = 29 feb en bisiesto, 28 feb si no).
func AddMonths(d time.Time, n int) time.Time {
	target := Date(d.Year(), d.Month()+time.Month(n), 1)
	day := d.Day()
	if last := DaysIn(target); day > last {
		day = last
	}
	return Date(target.Year(), target.Month(), day)
}

// AddMonth atajo de AddMonths(d, 1).
func AddMonth(d time.Time) time.Time {
	return AddMonths(d, 1)
}

// AddDays suma n días.
func AddDays(d time.Time, n int) time.Time {
	return Date(d.Year(), d.Month(), d.Day()+n)
}

// LongES formato largo en español, ej: "05 de marzo".
func LongES(d time.Time) string {
	return fmt.Sprintf("%02d de %s", d.Day(), monthsES[d.Month()-1])
}

// MonthLabelES etiqueta del mes, ej: "Febrero 2026".
func MonthLabelES(d time.Time) string {
	m := monthsES[d.Month()-1]
	return fmt.Sprintf("%s%s %d", strings.ToUpper(m[:1]), m[1:], d.Year())
}
