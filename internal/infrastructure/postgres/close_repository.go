package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/redcobro-api/internal/domain"
	"github.com/jhoicas/redcobro-api/internal/domain/entity"
	"github.com/jhoicas/redcobro-api/internal/domain/repository"
)

var _ repository.CloseRepository = (*CloseRepo)(nil)

// CloseRepo implementación de CloseRepository sobre PostgreSQL (usable con pool o tx).
type CloseRepo struct {
	q Querier
}

// NewCloseRepository construye el adaptador de cierres. Pasar pool o tx (Querier).
func NewCloseRepository(q Querier) *CloseRepo {
	return &CloseRepo{q: q}
}

const closeColumns = `id, company_id, period_label, period_start, period_end, meta_estimada,
	cobrado_a_tiempo, cobrado_recuperado, faltante, excedente, estado, pagos_incluidos, created_at`

// Create inserta el cierre. El constraint único (company_id, period_label)
// garantiza un solo cierre por quincena aun con ejecuciones concurrentes.
func (r *CloseRepo) Create(ctx context.Context, c *entity.BiweeklyClose) error {
	query := `
		INSERT INTO biweekly_closes (` + closeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.CompanyID, c.PeriodLabel, c.PeriodStart, c.PeriodEnd, c.MetaEstimada,
		c.CobradoATiempo, c.CobradoRecuperado, c.Faltante, c.Excedente, c.Estado, c.PagosIncluidos, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("cierre %s: %w", c.PeriodLabel, domain.ErrPeriodAlreadyClosed)
		}
		return mapTxError("insert close", err)
	}
	return nil
}

// GetByID obtiene un cierre. Devuelve nil, nil si no existe.
func (r *CloseRepo) GetByID(ctx context.Context, companyID, id string) (*entity.BiweeklyClose, error) {
	query := `SELECT ` + closeColumns + ` FROM biweekly_closes WHERE company_id = $1 AND id = $2`
	return r.getOne(ctx, "get close", query, companyID, id)
}

// GetByPeriod obtiene el cierre de una quincena, si existe.
func (r *CloseRepo) GetByPeriod(ctx context.Context, companyID, periodLabel string) (*entity.BiweeklyClose, error) {
	query := `SELECT ` + closeColumns + ` FROM biweekly_closes WHERE company_id = $1 AND period_label = $2`
	return r.getOne(ctx, "get close by period", query, companyID, periodLabel)
}

// List historial de cierres, más antiguo primero.
func (r *CloseRepo) List(ctx context.Context, companyID string) ([]*entity.BiweeklyClose, error) {
	query := `SELECT ` + closeColumns + ` FROM biweekly_closes WHERE company_id = $1 ORDER BY period_start`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list closes: %w", err)
	}
	defer rows.Close()
	var list []*entity.BiweeklyClose
	for rows.Next() {
		c, err := scanClose(rows)
		if err != nil {
			return nil, fmt.Errorf("scan close: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Last último cierre registrado de la empresa.
func (r *CloseRepo) Last(ctx context.Context, companyID string) (*entity.BiweeklyClose, error) {
	query := `SELECT ` + closeColumns + ` FROM biweekly_closes WHERE company_id = $1
		ORDER BY period_start DESC LIMIT 1`
	return r.getOne(ctx, "get last close", query, companyID)
}

func (r *CloseRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.BiweeklyClose, error) {
	c, err := scanClose(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func scanClose(row pgx.Row) (*entity.BiweeklyClose, error) {
	var c entity.BiweeklyClose
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.PeriodLabel, &c.PeriodStart, &c.PeriodEnd, &c.MetaEstimada,
		&c.CobradoATiempo, &c.CobradoRecuperado, &c.Faltante, &c.Excedente, &c.Estado, &c.PagosIncluidos, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
