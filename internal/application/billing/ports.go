package billing

import (
	"context"
	"time"

	"github.com/jhoicas/redcobro-api/internal/domain/entity"
	"github.com/jhoicas/redcobro-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Accounts repository.AccountRepository
	Payments repository.PaymentRepository
	Closes   repository.CloseRepository
	Activity repository.ActivityRepository
}

// TxRunner ejecuta fn dentro de una transacción; Commit si fn devuelve nil, Rollback si no.
type TxRunner interface {
	// Run transacción READ COMMITTED; los use cases bloquean la cuenta con GetForUpdate.
	Run(ctx context.Context, fn func(repos TxRepos) error) error
	// RunSnapshot transacción REPEATABLE READ (cierres: lectura consistente de los pagos).
	RunSnapshot(ctx context.Context, fn func(repos TxRepos) error) error
}

// IdempotencyStore recuerda qué pago produjo cada llave Idempotency-Key.
// Es solo una vía rápida; la fuente de verdad es el índice único de payments.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (paymentID string, ok bool, err error)
	Put(ctx context.Context, key, paymentID string, ttl time.Duration) error
}

// ReceiptData datos para el comprobante de pago.
type ReceiptData struct {
	Company *entity.Company
	Account *entity.AccountWithPlan
	Payment *entity.Payment
}

// ReportPDFGenerator genera los PDF de comprobante de pago y de reporte de cierre.
type ReportPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, data ReceiptData) ([]byte, error)
	GenerateCloseReportPDF(ctx context.Context, company *entity.Company, close *entity.BiweeklyClose) ([]byte, error)
}
