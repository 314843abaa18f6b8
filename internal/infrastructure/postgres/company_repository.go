package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/tramitefacil-api/internal/domain/entity"
	"github.com/jhoicas/tramitefacil-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, user_id::text, razon_social, nombre_comercial, cedula_juridica, telefono, created_at`

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{pool: pool}
}

// Create persiste una nueva empresa; el ID y created_at los asigna la base.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	query := `
		INSERT INTO ` + tableCompany + ` (user_id, razon_social, nombre_comercial, cedula_juridica, telefono)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		company.OwnerID, company.LegalName, company.TradeName, company.TaxID, company.Phone,
	).Scan(&company.ID, &company.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert empresa: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa del usuario; (nil, nil) si no existe o es de otro.
func (r *CompanyRepo) GetByID(ctx context.Context, id int64, ownerID string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM ` + tableCompany + ` WHERE id = $1 AND user_id = $2`
	c, err := scanCompany(r.pool.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get empresa: %w", err)
	}
	return c, nil
}

// ListByOwner devuelve las empresas del usuario, la más antigua primero.
func (r *CompanyRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM ` + tableCompany + ` WHERE user_id = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list empresas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan empresa: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanCompany(row pgxScanner) (*entity.Company, error) {
	var c entity.Company
	if err := row.Scan(&c.ID, &c.OwnerID, &c.LegalName, &c.TradeName, &c.TaxID, &c.Phone, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
