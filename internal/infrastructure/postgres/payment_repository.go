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

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// Índice único parcial (company_id, request_id) de migrations/001_init.sql.
const paymentsRequestIDKey = "payments_company_request_id_key"

// PaymentRepo implementación de PaymentRepository sobre PostgreSQL (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador de pagos. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `id, company_id, account_id, COALESCE(user_id, ''), COALESCE(request_id, ''),
	amount, applied_amount, kind, method, reference, service_period, late_justification, note,
	is_late, days_late, penalized, close_id, created_at`

// Create inserta el evento. Una llave de idempotencia repetida se reporta como
// conflicto de concurrencia: otra petición con la misma llave ganó la carrera.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (id, company_id, account_id, user_id, request_id,
			amount, applied_amount, kind, method, reference, service_period, late_justification, note,
			is_late, days_late, penalized, close_id, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''),
			$6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.AccountID, p.UserID, p.RequestID,
		p.Amount, p.AppliedAmount, p.Kind, p.Method, p.Reference, p.ServicePeriod, p.LateJustification, p.Note,
		p.IsLate, p.DaysLate, p.Penalized, p.CloseID, p.CreatedAt,
	)
	if err != nil {
		if isConstraint(err, paymentsRequestIDKey) {
			return fmt.Errorf("request_id %q: %w", p.RequestID, domain.ErrConcurrencyConflict)
		}
		return mapTxError("insert payment", err)
	}
	return nil
}

// GetByID obtiene un pago. Devuelve nil, nil si no existe.
func (r *PaymentRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE company_id = $1 AND id = $2`
	return r.getOne(ctx, "get payment", query, companyID, id)
}

// GetByRequestID busca el pago registrado con una llave de idempotencia.
func (r *PaymentRepo) GetByRequestID(ctx context.Context, companyID, requestID string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE company_id = $1 AND request_id = $2`
	return r.getOne(ctx, "get payment by request id", query, companyID, requestID)
}

// ListByAccount historial de pagos de la cuenta, más reciente primero.
func (r *PaymentRepo) ListByAccount(ctx context.Context, companyID, accountID string) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments
		WHERE company_id = $1 AND account_id = $2
		ORDER BY created_at DESC, id DESC`
	rows, err := r.q.Query(ctx, query, companyID, accountID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ListInRange pagos de [from, to) que ningún cierre ha consumido.
func (r *PaymentRepo) ListInRange(ctx context.Context, companyID string, from, to time.Time) ([]entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments
		WHERE company_id = $1 AND created_at >= $2 AND created_at < $3 AND close_id IS NULL
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, mapTxError("list payments in range", err)
	}
	defer rows.Close()
	var list []entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}

// MarkClosed asigna close_id a los pagos incluidos. Solo toca pagos sin cierre.
func (r *PaymentRepo) MarkClosed(ctx context.Context, closeID string, paymentIDs []string) error {
	if len(paymentIDs) == 0 {
		return nil
	}
	query := `UPDATE payments SET close_id = $1 WHERE id = ANY($2) AND close_id IS NULL`
	tag, err := r.q.Exec(ctx, query, closeID, paymentIDs)
	if err != nil {
		return mapTxError("mark payments closed", err)
	}
	if tag.RowsAffected() != int64(len(paymentIDs)) {
		return fmt.Errorf("mark payments closed: %w", domain.ErrConcurrencyConflict)
	}
	return nil
}

// OldestUnclosed fecha del pago más antiguo que ningún cierre ha consumido.
func (r *PaymentRepo) OldestUnclosed(ctx context.Context, companyID string) (*time.Time, error) {
	var oldest *time.Time
	err := r.q.QueryRow(ctx,
		`SELECT min(created_at) FROM payments WHERE company_id = $1 AND close_id IS NULL`, companyID,
	).Scan(&oldest)
	if err != nil {
		return nil, fmt.Errorf("oldest unclosed payment: %w", err)
	}
	return oldest, nil
}

// LockForInsert ROW EXCLUSIVE no choca entre pagos, sí con el SHARE ROW EXCLUSIVE del cierre.
func (r *PaymentRepo) LockForInsert(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `LOCK TABLE payments IN ROW EXCLUSIVE MODE`); err != nil {
		return mapTxError("lock payments for insert", err)
	}
	return nil
}

// LockForClose en REPEATABLE READ la foto se toma en la primera consulta, no en LOCK TABLE:
// tomado al inicio, el cierre ve todo pago que se confirmó mientras esperaba.
func (r *PaymentRepo) LockForClose(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `LOCK TABLE payments IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return mapTxError("lock payments for close", err)
	}
	return nil
}

// SumCollected suma el dinero recibido en [from, to); las prórrogas no cuentan.
func (r *PaymentRepo) SumCollected(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments
		WHERE company_id = $1 AND created_at >= $2 AND created_at < $3 AND kind <> $4`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, companyID, from, to, entity.PaymentKindDeferral).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum collected: %w", err)
	}
	return total, nil
}

func (r *PaymentRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Payment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.AccountID, &p.UserID, &p.RequestID,
		&p.Amount, &p.AppliedAmount, &p.Kind, &p.Method, &p.Reference, &p.ServicePeriod, &p.LateJustification, &p.Note,
		&p.IsLate, &p.DaysLate, &p.Penalized, &p.CloseID, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
