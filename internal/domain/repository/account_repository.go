package repository

import (
	"context"

	"github.com/jhoicas/redcobro-api/internal/domain/entity"
)

// AccountFilter filtros de GET /accounts. Cero = sin filtro.
type AccountFilter struct {
	Status string
	DueDay int
}

// AccountRepository puerto de persistencia para cuentas (clientes).
type AccountRepository interface {
	Create(ctx context.Context, acc *entity.Account) error
	GetByID(ctx context.Context, companyID, id string) (*entity.AccountWithPlan, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE); solo tiene sentido dentro de una transacción.
	GetForUpdate(ctx context.Context, companyID, id string) (*entity.Account, error)
	List(ctx context.Context, companyID string, f AccountFilter) ([]entity.AccountWithPlan, error)
	// UpdateProfile actualiza datos de contacto, plan y día de corte (no saldos ni estado).
	UpdateProfile(ctx context.Context, acc *entity.Account) error
	// UpdateBalances persiste CurrentDue, DeferredDue y LastChargedPeriod.
	UpdateBalances(ctx context.Context, acc *entity.Account) error
	UpdateStatus(ctx context.Context, acc *entity.Account) error
}
