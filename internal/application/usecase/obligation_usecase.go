package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tramitefacil-api/internal/application/dto"
	"github.com/jhoicas/tramitefacil-api/internal/application/ports"
	"github.com/jhoicas/tramitefacil-api/internal/application/recurrence"
	"github.com/jhoicas/tramitefacil-api/internal/domain"
	"github.com/jhoicas/tramitefacil-api/internal/domain/calendar"
	"github.com/jhoicas/tramitefacil-api/internal/domain/entity"
	"github.com/jhoicas/tramitefacil-api/internal/domain/repository"
)

// completionHook lo implementa *recurrence.Engine.
type completionHook interface {
	OnCompletionChange(ctx context.Context, prev *entity.Obligation, newCompleted bool, ownerID string) recurrence.Outcome
}

// ObligationUseCase ciclo de vida de las obligaciones: alta, listado, actualización parcial
// (con la recurrencia mensual) y baja. Toda operación se restringe al dueño.
type ObligationUseCase struct {
	companies   repository.CompanyRepository
	obligations repository.ObligationRepository
	recurrence  completionHook
	cache       ports.DashboardCache // opcional
	log         zerolog.Logger
}

// NewObligationUseCase construye el caso de uso. cache puede ser nil.
func NewObligationUseCase(
	companies repository.CompanyRepository,
	obligations repository.ObligationRepository,
	engine completionHook,
	cache ports.DashboardCache,
	log zerolog.Logger,
) *ObligationUseCase {
	return &ObligationUseCase{
		companies:   companies,
		obligations: obligations,
		recurrence:  engine,
		cache:       cache,
		log:         log,
	}
}

// Create crea una obligación en una empresa del usuario.
// Errores: domain.ErrInvalidInput, domain.ErrNotFound (empresa ausente o ajena).
func (uc *ObligationUseCase) Create(ctx context.Context, ownerID string, in dto.CreateObligationRequest) (*dto.ObligationResponse, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	due, err := calendar.Parse(in.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha_vencimiento", domain.ErrInvalidInput)
	}
	if err := validateAmount(in.EstimatedAmount); err != nil {
		return nil, err
	}
	freq := entity.FrequencyUnique
	if in.Frequency != nil {
		f, ok := entity.ParseFrequency(*in.Frequency)
		if !ok {
			return nil, fmt.Errorf("%w: frecuencia debe ser Única o Mensual", domain.ErrInvalidInput)
		}
		freq = f
	}

	company, err := uc.companies.GetByID(ctx, in.CompanyID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("verificar empresa: %w", err)
	}
	if company == nil {
		return nil, fmt.Errorf("empresa %d: %w", in.CompanyID, domain.ErrNotFound)
	}

	o := &entity.Obligation{
		CompanyID:       company.ID,
		OwnerID:         ownerID,
		Title:           in.Title,
		DueDate:         due,
		EstimatedAmount: in.EstimatedAmount,
		Frequency:       freq,
		Completed:       in.Completed,
	}
	if err := uc.obligations.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("crear obligación: %w", err)
	}
	uc.invalidate(ctx, ownerID)
	return ToObligationResponse(o), nil
}

// ListByCompany lista las obligaciones de una empresa del usuario, por fecha ascendente.
func (uc *ObligationUseCase) ListByCompany(ctx context.Context, ownerID string, companyID int64) ([]dto.ObligationResponse, error) {
	company, err := uc.companies.GetByID(ctx, companyID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("verificar empresa: %w", err)
	}
	if company == nil {
		return nil, fmt.Errorf("empresa %d: %w", companyID, domain.ErrNotFound)
	}
	rows, err := uc.obligations.List(ctx, entity.ObligationFilter{OwnerID: ownerID, CompanyID: companyID})
	if err != nil {
		return nil, fmt.Errorf("listar obligaciones: %w", err)
	}
	out := make([]dto.ObligationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *ToObligationResponse(&rows[i].Obligation))
	}
	return out, nil
}

// Update aplica la actualización parcial. Si cambia "completada" se invoca la recurrencia
// con el estado previo; sus fallos no afectan al resultado.
func (uc *ObligationUseCase) Update(ctx context.Context, ownerID string, id int64, in dto.UpdateObligationRequest) (*dto.ObligationResponse, error) {
	patch, err := toPatch(in)
	if err != nil {
		return nil, err
	}

	prev, err := uc.obligations.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("leer obligación: %w", err)
	}
	if prev == nil {
		return nil, fmt.Errorf("obligación %d: %w", id, domain.ErrNotFound)
	}

	updated := prev
	if !patch.IsEmpty() {
		updated, err = uc.obligations.Update(ctx, id, ownerID, patch)
		if err != nil {
			return nil, fmt.Errorf("actualizar obligación: %w", err)
		}
		if updated == nil {
			// borrada entre la lectura y la escritura
			return nil, fmt.Errorf("obligación %d: %w", id, domain.ErrNotFound)
		}
	}

	if patch.Completed != nil && uc.recurrence != nil {
		uc.recurrence.OnCompletionChange(ctx, prev, *patch.Completed, ownerID)
	}
	uc.invalidate(ctx, ownerID)
	return ToObligationResponse(updated), nil
}

// Delete elimina una obligación del usuario.
func (uc *ObligationUseCase) Delete(ctx context.Context, ownerID string, id int64) error {
	deleted, err := uc.obligations.Delete(ctx, id, ownerID)
	if err != nil {
		return fmt.Errorf("eliminar obligación: %w", err)
	}
	if !deleted {
		return fmt.Errorf("obligación %d: %w", id, domain.ErrNotFound)
	}
	uc.invalidate(ctx, ownerID)
	return nil
}

func (uc *ObligationUseCase) invalidate(ctx context.Context, ownerID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, ownerID); err != nil {
		uc.log.Warn().Err(err).Str("owner_id", ownerID).Msg("no se pudo invalidar la caché del dashboard")
	}
}

func toPatch(in dto.UpdateObligationRequest) (entity.ObligationPatch, error) {
	var p entity.ObligationPatch
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		in.Title = &t
	}
	if err := dto.Validate(in); err != nil {
		return p, err
	}
	if err := validateAmount(in.EstimatedAmount); err != nil {
		return p, err
	}
	p.Title = in.Title
	p.EstimatedAmount = in.EstimatedAmount
	p.Completed = in.Completed
	if in.DueDate != nil {
		d, err := calendar.Parse(*in.DueDate)
		if err != nil {
			return p, fmt.Errorf("%w: fecha_vencimiento", domain.ErrInvalidInput)
		}
		p.DueDate = &d
	}
	if in.Frequency != nil {
		f, ok := entity.ParseFrequency(*in.Frequency)
		if !ok {
			return p, fmt.Errorf("%w: frecuencia debe ser Única o Mensual", domain.ErrInvalidInput)
		}
		p.Frequency = &f
	}
	return p, nil
}

func validateAmount(a *decimal.Decimal) error {
	if a != nil && a.IsNegative() {
		return fmt.Errorf("%w: monto_estimado no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}
