package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/redcobro-api/internal/domain"
	"github.com/jhoicas/redcobro-api/internal/domain/entity"
	"github.com/jhoicas/redcobro-api/internal/domain/repository"
)

var _ repository.PlanRepository = (*PlanRepo)(nil)

// PlanRepo implementación de PlanRepository sobre PostgreSQL.
type PlanRepo struct {
	q Querier
}

// NewPlanRepository construye el adaptador de planes. Pasar pool o tx (Querier).
func NewPlanRepository(q Querier) *PlanRepo {
	return &PlanRepo{q: q}
}

const planColumns = `id, company_id, name, monthly_price, speed, active, created_at, updated_at`

// Create persiste un nuevo plan.
func (r *PlanRepo) Create(ctx context.Context, p *entity.Plan) error {
	query := `
		INSERT INTO plans (` + planColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.Name, p.MonthlyPrice, p.Speed, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("plan %q: %w", p.Name, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

// GetByID obtiene un plan de la empresa. Devuelve nil, nil si no existe.
func (r *PlanRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE company_id = $1 AND id = $2`
	var p entity.Plan
	err := r.q.QueryRow(ctx, query, companyID, id).Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.MonthlyPrice, &p.Speed, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return &p, nil
}

// ListByCompany lista los planes ordenados por precio.
func (r *PlanRepo) ListByCompany(ctx context.Context, companyID string, onlyActive bool) ([]*entity.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans
		WHERE company_id = $1 AND ($2 = false OR active)
		ORDER BY monthly_price, name`
	rows, err := r.q.Query(ctx, query, companyID, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()
	var list []*entity.Plan
	for rows.Next() {
		var p entity.Plan
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Name, &p.MonthlyPrice, &p.Speed, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza nombre, precio, velocidad y bandera activa.
func (r *PlanRepo) Update(ctx context.Context, p *entity.Plan) error {
	query := `
		UPDATE plans SET name = $3, monthly_price = $4, speed = $5, active = $6, updated_at = $7
		WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, p.CompanyID, p.ID, p.Name, p.MonthlyPrice, p.Speed, p.Active, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("plan %q: %w", p.Name, domain.ErrDuplicate)
		}
		return fmt.Errorf("update plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
