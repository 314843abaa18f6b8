package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tramitefacil-api/internal/domain"
	"github.com/jhoicas/tramitefacil-api/internal/domain/entity"
	"github.com/jhoicas/tramitefacil-api/internal/domain/repository"
)

// Asegura que ObligationRepo implementa repository.ObligationRepository.
var _ repository.ObligationRepository = (*ObligationRepo)(nil)

const obligationColumns = `o.id, o.empresa_id, o.user_id::text, o.titulo, o.fecha_vencimiento, o.monto_estimado,
	o.frecuencia, o.completada, o.created_at`

// ObligationRepo implementación del puerto ObligationRepository sobre PostgreSQL.
// Cada método ejecuta una sola sentencia.
type ObligationRepo struct {
	pool *pgxpool.Pool
}

// NewObligationRepository construye el adaptador de persistencia para obligaciones.
func NewObligationRepository(pool *pgxpool.Pool) *ObligationRepo {
	return &ObligationRepo{pool: pool}
}

// Create inserta la obligación; ID y created_at los asigna la base.
func (r *ObligationRepo) Create(ctx context.Context, o *entity.Obligation) error {
	query := `
		INSERT INTO ` + tableObligation + ` (empresa_id, user_id, titulo, fecha_vencimiento, monto_estimado, frecuencia, completada)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		o.CompanyID, o.OwnerID, o.Title, o.DueDate, nullDecimal(o.EstimatedAmount), string(o.Frequency), o.Completed,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("empresa %d: %w", o.CompanyID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert obligacion: %w", err)
	}
	return nil
}

// GetByID obtiene una obligación del usuario; (nil, nil) si no existe o es de otro.
func (r *ObligationRepo) GetByID(ctx context.Context, id int64, ownerID string) (*entity.Obligation, error) {
	query := `SELECT ` + obligationColumns + ` FROM ` + tableObligation + ` o WHERE o.id = $1 AND o.user_id = $2`
	o, err := scanObligation(r.pool.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get obligacion: %w", err)
	}
	return o, nil
}

// Update aplica solo los campos presentes en el patch y devuelve la fila resultante.
func (r *ObligationRepo) Update(ctx context.Context, id int64, ownerID string, p entity.ObligationPatch) (*entity.Obligation, error) {
	if p.IsEmpty() {
		return r.GetByID(ctx, id, ownerID)
	}
	set, args := buildSet(p)
	args = append(args, id, ownerID)
	query := `UPDATE ` + tableObligation + ` o SET ` + set +
		` WHERE o.id = $` + strconv.Itoa(len(args)-1) + ` AND o.user_id = $` + strconv.Itoa(len(args)) +
		` RETURNING ` + obligationColumns
	o, err := scanObligation(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("update obligacion: %w", err)
	}
	return o, nil
}

// Delete borra la obligación del usuario. false si no había fila.
func (r *ObligationRepo) Delete(ctx context.Context, id int64, ownerID string) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM `+tableObligation+` WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete obligacion: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List obligaciones que cumplen el filtro con el nombre de su empresa.
func (r *ObligationRepo) List(ctx context.Context, f entity.ObligationFilter) ([]entity.ObligationView, error) {
	where, args := buildWhere(f)
	query := `SELECT ` + obligationColumns + `, COALESCE(NULLIF(e.nombre_comercial, ''), e.razon_social, '')
		FROM ` + tableObligation + ` o
		LEFT JOIN ` + tableCompany + ` e ON e.id = o.empresa_id` + where + `
		ORDER BY o.fecha_vencimiento, o.id`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list obligaciones: %w", err)
	}
	defer rows.Close()

	var list []entity.ObligationView
	for rows.Next() {
		var v entity.ObligationView
		var amount decimal.NullDecimal
		var freq string
		if err := rows.Scan(&v.ID, &v.CompanyID, &v.OwnerID, &v.Title, &v.DueDate, &amount,
			&freq, &v.Completed, &v.CreatedAt, &v.CompanyDisplayName); err != nil {
			return nil, fmt.Errorf("scan obligacion: %w", err)
		}
		v.EstimatedAmount = fromNullDecimal(amount)
		v.Frequency = entity.Frequency(freq)
		list = append(list, v)
	}
	return list, rows.Err()
}

// SumEstimated suma monto_estimado de las filas que cumplen el filtro; nulos cuentan 0.
// Limit no aplica a la suma.
func (r *ObligationRepo) SumEstimated(ctx context.Context, f entity.ObligationFilter) (decimal.Decimal, error) {
	where, args := buildWhere(f)
	query := `SELECT COALESCE(SUM(o.monto_estimado), 0) FROM ` + tableObligation + ` o` + where
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum obligaciones: %w", err)
	}
	return total, nil
}

// buildWhere traduce el filtro a una cláusula WHERE con parámetros posicionales.
// Misma semántica que ObligationFilter.Matches.
func buildWhere(f entity.ObligationFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, strings.Replace(cond, "?", "$"+strconv.Itoa(len(args)), 1))
	}
	if f.OwnerID != "" {
		add("o.user_id = ?", f.OwnerID)
	}
	if f.CompanyID != 0 {
		add("o.empresa_id = ?", f.CompanyID)
	}
	if f.Title != "" {
		add("o.titulo = ?", f.Title)
	}
	if f.Completed != nil {
		add("o.completada = ?", *f.Completed)
	}
	if f.DueFrom != nil {
		add("o.fecha_vencimiento >= ?", *f.DueFrom)
	}
	if f.DueTo != nil {
		add("o.fecha_vencimiento <= ?", *f.DueTo)
	}
	if f.DueBefore != nil {
		add("o.fecha_vencimiento < ?", *f.DueBefore)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// buildSet arma la lista SET del UPDATE parcial. El patch no debe estar vacío.
func buildSet(p entity.ObligationPatch) (string, []any) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, col+" = $"+strconv.Itoa(len(args)))
	}
	if p.Title != nil {
		add("titulo", *p.Title)
	}
	if p.DueDate != nil {
		add("fecha_vencimiento", *p.DueDate)
	}
	if p.EstimatedAmount != nil {
		add("monto_estimado", *p.EstimatedAmount)
	}
	if p.Frequency != nil {
		add("frecuencia", string(*p.Frequency))
	}
	if p.Completed != nil {
		add("completada", *p.Completed)
	}
	return strings.Join(sets, ", "), args
}

func scanObligation(row pgxScanner) (*entity.Obligation, error) {
	var o entity.Obligation
	var amount decimal.NullDecimal
	var freq string
	if err := row.Scan(&o.ID, &o.CompanyID, &o.OwnerID, &o.Title, &o.DueDate, &amount,
		&freq, &o.Completed, &o.CreatedAt); err != nil {
		return nil, err
	}
	o.EstimatedAmount = fromNullDecimal(amount)
	o.Frequency = entity.Frequency(freq)
	return &o, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func fromNullDecimal(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}
