package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Tablas heredadas del esquema de Supabase; los nombres llevan mayúscula y van entre comillas.
const (
	tableCompany    = `"Empresa"`
	tableObligation = `"Obligacion"`
)

// isForeignKeyViolation verifica si un error es una violación de clave foránea (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" // foreign_key_violation
	}
	return strings.Contains(err.Error(), "23503")
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

type pgxScanner interface {
	Scan(dest ...any) error
}
