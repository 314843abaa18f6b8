package repository

import (
	"context"

	"github.com/jhoicas/tramitefacil-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// Toda lectura filtra por dueño: una empresa ajena se comporta como inexistente.
type CompanyRepository interface {
	// Create persiste la empresa y completa ID y CreatedAt.
	Create(ctx context.Context, company *entity.Company) error
	// GetByID devuelve (nil, nil) si no existe o pertenece a otro usuario.
	GetByID(ctx context.Context, id int64, ownerID string) (*entity.Company, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Company, error)
}
