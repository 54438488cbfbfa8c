package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/redcobro-api/internal/domain/entity"
	"github.com/jhoicas/redcobro-api/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo bitácora de actividad sobre PostgreSQL.
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construye el adaptador de bitácora. Pasar pool o tx (Querier).
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

// Create inserta una entrada.
func (r *ActivityRepo) Create(ctx context.Context, e *entity.ActivityLog) error {
	query := `
		INSERT INTO activity_log (id, company_id, user_id, account_id, action, detail, created_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, e.ID, e.CompanyID, e.UserID, e.AccountID, e.Action, e.Detail, e.CreatedAt)
	if err != nil {
		return mapTxError("insert activity", err)
	}
	return nil
}
