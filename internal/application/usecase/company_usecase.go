package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/tramitefacil-api/internal/application/dto"
	"github.com/jhoicas/tramitefacil-api/internal/domain/entity"
	"github.com/jhoicas/tramitefacil-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create registra una empresa a nombre de ownerID. Devuelve domain.ErrInvalidInput si los
// datos no validan.
func (uc *CompanyUseCase) Create(ctx context.Context, ownerID string, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	in.TradeName = strings.TrimSpace(in.TradeName)
	in.LegalName = strings.TrimSpace(in.LegalName)
	in.TaxID = strings.TrimSpace(in.TaxID)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	company := &entity.Company{
		OwnerID:   ownerID,
		LegalName: in.LegalName,
		TradeName: in.TradeName,
		TaxID:     in.TaxID,
		Phone:     in.Phone,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, fmt.Errorf("crear empresa: %w", err)
	}
	return entityToCompanyResponse(company), nil
}

// List devuelve las empresas del usuario.
func (uc *CompanyUseCase) List(ctx context.Context, ownerID string) ([]dto.CompanyResponse, error) {
	list, err := uc.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listar empresas: %w", err)
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return items, nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		OwnerID:   c.OwnerID,
		TradeName: c.TradeName,
		LegalName: c.LegalName,
		TaxID:     c.TaxID,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}
