package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/redcobro-api/internal/domain/entity"
)

// PaymentRepository puerto de persistencia para eventos de pago (solo inserción).
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Payment, error)
	GetByRequestID(ctx context.Context, companyID, requestID string) (*entity.Payment, error)
	// ListByAccount historial de la cuenta, más reciente primero.
	ListByAccount(ctx context.Context, companyID, accountID string) ([]*entity.Payment, error)
	// ListInRange pagos con created_at en [from, to) aún no consumidos por un cierre.
	ListInRange(ctx context.Context, companyID string, from, to time.Time) ([]entity.Payment, error)
	// MarkClosed estampa close_id en los pagos incluidos en un cierre.
	MarkClosed(ctx context.Context, closeID string, paymentIDs []string) error
	// OldestUnclosed created_at del pago más antiguo sin cierre; nil si no hay.
	OldestUnclosed(ctx context.Context, companyID string) (*time.Time, error)
	// LockForInsert candado compartido entre pagos que excluye a un cierre en curso.
	// Dentro de la transacción va antes de fijar la hora del pago.
	LockForInsert(ctx context.Context) error
	// LockForClose espera a los pagos en vuelo y bloquea nuevos hasta el fin del cierre.
	// Debe ser la primera sentencia de la transacción del cierre.
	LockForClose(ctx context.Context) error
	// SumCollected dinero recibido (sin prórrogas) en [from, to).
	SumCollected(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error)
}
