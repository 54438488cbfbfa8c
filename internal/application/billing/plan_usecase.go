package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/redcobro-api/internal/application/dto"
	"github.com/jhoicas/redcobro-api/internal/domain"
	"github.com/jhoicas/redcobro-api/internal/domain/entity"
	"github.com/jhoicas/redcobro-api/internal/domain/repository"
	"github.com/jhoicas/redcobro-api/pkg/clock"
)

// PlanUseCase catálogo de planes de internet.
type PlanUseCase struct {
	repo  repository.PlanRepository
	clock clock.Clock
}

// NewPlanUseCase construye el caso de uso.
func NewPlanUseCase(repo repository.PlanRepository, clk clock.Clock) *PlanUseCase {
	return &PlanUseCase{repo: repo, clock: clk}
}

// Create da de alta un plan activo.
func (uc *PlanUseCase) Create(ctx context.Context, companyID string, in dto.PlanRequest) (*dto.PlanResponse, error) {
	if err := validatePlan(in); err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	plan := &entity.Plan{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Name:         strings.TrimSpace(in.Name),
		MonthlyPrice: in.MonthlyPrice,
		Speed:        strings.TrimSpace(in.Speed),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return dto.NewPlanResponse(plan), nil
}

// List lista los planes de la empresa.
func (uc *PlanUseCase) List(ctx context.Context, companyID string, onlyActive bool) ([]dto.PlanResponse, error) {
	plans, err := uc.repo.ListByCompany(ctx, companyID, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, *dto.NewPlanResponse(p))
	}
	return out, nil
}

// Update cambia nombre, precio y velocidad. El nuevo precio aplica desde el siguiente cargo mensual.
func (uc *PlanUseCase) Update(ctx context.Context, companyID, id string, in dto.PlanRequest) (*dto.PlanResponse, error) {
	if err := validatePlan(in); err != nil {
		return nil, err
	}
	plan, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	plan.Name = strings.TrimSpace(in.Name)
	plan.MonthlyPrice = in.MonthlyPrice
	plan.Speed = strings.TrimSpace(in.Speed)
	plan.UpdatedAt = uc.clock.Now()
	if err := uc.repo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return dto.NewPlanResponse(plan), nil
}

// Deactivate oculta el plan para nuevas cuentas; las existentes lo conservan.
func (uc *PlanUseCase) Deactivate(ctx context.Context, companyID, id string) (*dto.PlanResponse, error) {
	plan, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if !plan.Active {
		return dto.NewPlanResponse(plan), nil
	}
	plan.Active = false
	plan.UpdatedAt = uc.clock.Now()
	if err := uc.repo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return dto.NewPlanResponse(plan), nil
}

func (uc *PlanUseCase) get(ctx context.Context, companyID, id string) (*entity.Plan, error) {
	plan, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	return plan, nil
}

func validatePlan(in dto.PlanRequest) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: el nombre del plan es obligatorio", domain.ErrInvalidInput)
	}
	if !in.MonthlyPrice.IsPositive() {
		return fmt.Errorf("%w: la mensualidad debe ser mayor a cero", domain.ErrInvalidInput)
	}
	return nil
}
