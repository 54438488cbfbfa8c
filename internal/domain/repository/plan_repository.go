package repository

import (
	"context"

	"github.com/jhoicas/redcobro-api/internal/domain/entity"
)

// PlanRepository puerto de persistencia para planes.
type PlanRepository interface {
	Create(ctx context.Context, plan *entity.Plan) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Plan, error)
	ListByCompany(ctx context.Context, companyID string, onlyActive bool) ([]*entity.Plan, error)
	Update(ctx context.Context, plan *entity.Plan) error
}
