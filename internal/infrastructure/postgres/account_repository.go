package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/redcobro-api/internal/domain"
	"github.com/jhoicas/redcobro-api/internal/domain/entity"
	"github.com/jhoicas/redcobro-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implementación de AccountRepository sobre PostgreSQL (usable con pool o tx).
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador de cuentas. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

const accountColumns = `a.id, a.company_id, a.name, a.phone, a.address, a.plan_id, a.due_day,
	a.current_due, a.deferred_due, a.status, a.last_charged_period, a.created_at, a.updated_at`

const accountWithPlanSelect = `SELECT ` + accountColumns + `,
	p.id, p.name, p.monthly_price, p.speed, p.active, p.created_at, p.updated_at
	FROM accounts a
	LEFT JOIN plans p ON p.id = a.plan_id`

// Create persiste una nueva cuenta.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	query := `
		INSERT INTO accounts (id, company_id, name, phone, address, plan_id, due_day,
			current_due, deferred_due, status, last_charged_period, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.CompanyID, a.Name, a.Phone, a.Address, a.PlanID, a.DueDay,
		a.CurrentDue, a.DeferredDue, a.Status, a.LastChargedPeriod, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID obtiene la cuenta con su plan. Devuelve nil, nil si no existe.
func (r *AccountRepo) GetByID(ctx context.Context, companyID, id string) (*entity.AccountWithPlan, error) {
	query := accountWithPlanSelect + ` WHERE a.company_id = $1 AND a.id = $2`
	acc, err := scanAccountWithPlan(r.q.QueryRow(ctx, query, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return acc, nil
}

// GetForUpdate obtiene la cuenta y bloquea la fila (SELECT FOR UPDATE).
// Serializa pagos, cargos y cambios de estado de la misma cuenta.
func (r *AccountRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts a
		WHERE a.company_id = $1 AND a.id = $2
		FOR UPDATE`
	var a entity.Account
	err := r.q.QueryRow(ctx, query, companyID, id).Scan(accountDest(&a)...)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, mapTxError("get account for update", err)
	}
	return &a, nil
}

// List lista cuentas con su plan, filtrando por estado y día de corte.
func (r *AccountRepo) List(ctx context.Context, companyID string, f repository.AccountFilter) ([]entity.AccountWithPlan, error) {
	query := accountWithPlanSelect + `
		WHERE a.company_id = $1
		  AND ($2 = '' OR a.status = $2)
		  AND ($3 = 0 OR a.due_day = $3)
		ORDER BY a.name, a.id`
	rows, err := r.q.Query(ctx, query, companyID, f.Status, f.DueDay)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()
	var list []entity.AccountWithPlan
	for rows.Next() {
		acc, err := scanAccountWithPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		list = append(list, *acc)
	}
	return list, rows.Err()
}

// UpdateProfile actualiza contacto, plan y día de corte.
func (r *AccountRepo) UpdateProfile(ctx context.Context, a *entity.Account) error {
	query := `
		UPDATE accounts SET name = $3, phone = $4, address = $5, plan_id = $6, due_day = $7, updated_at = $8
		WHERE company_id = $1 AND id = $2`
	return r.exec(ctx, "update account profile", query,
		a.CompanyID, a.ID, a.Name, a.Phone, a.Address, a.PlanID, a.DueDay, a.UpdatedAt)
}

// UpdateBalances persiste saldos y último periodo cobrado.
func (r *AccountRepo) UpdateBalances(ctx context.Context, a *entity.Account) error {
	query := `
		UPDATE accounts SET current_due = $3, deferred_due = $4, last_charged_period = $5, updated_at = $6
		WHERE company_id = $1 AND id = $2`
	return r.exec(ctx, "update account balances", query,
		a.CompanyID, a.ID, a.CurrentDue, a.DeferredDue, a.LastChargedPeriod, a.UpdatedAt)
}

// UpdateStatus persiste el estado de servicio.
func (r *AccountRepo) UpdateStatus(ctx context.Context, a *entity.Account) error {
	query := `UPDATE accounts SET status = $3, updated_at = $4 WHERE company_id = $1 AND id = $2`
	return r.exec(ctx, "update account status", query, a.CompanyID, a.ID, a.Status, a.UpdatedAt)
}

func (r *AccountRepo) exec(ctx context.Context, op, query string, args ...any) error {
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return mapTxError(op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func accountDest(a *entity.Account) []any {
	return []any{
		&a.ID, &a.CompanyID, &a.Name, &a.Phone, &a.Address, &a.PlanID, &a.DueDay,
		&a.CurrentDue, &a.DeferredDue, &a.Status, &a.LastChargedPeriod, &a.CreatedAt, &a.UpdatedAt,
	}
}

// scanAccountWithPlan lee una fila del LEFT JOIN; el plan queda nil si la cuenta no tiene.
func scanAccountWithPlan(row pgx.Row) (*entity.AccountWithPlan, error) {
	var (
		acc                  entity.AccountWithPlan
		planID, name, speed  *string
		price                decimal.NullDecimal
		active               *bool
		createdAt, updatedAt *time.Time
	)
	dest := append(accountDest(&acc.Account), &planID, &name, &price, &speed, &active, &createdAt, &updatedAt)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if planID != nil {
		acc.Plan = &entity.Plan{
			ID:           *planID,
			CompanyID:    acc.CompanyID,
			Name:         deref(name),
			MonthlyPrice: price.Decimal,
			Speed:        deref(speed),
			Active:       active != nil && *active,
		}
		if createdAt != nil {
			acc.Plan.CreatedAt = *createdAt
		}
		if updatedAt != nil {
			acc.Plan.UpdatedAt = *updatedAt
		}
	}
	return &acc, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
