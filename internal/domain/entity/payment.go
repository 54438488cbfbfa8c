package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de pago.
const (
	PaymentKindSettlement = "SETTLEMENT" // liquidación total
	PaymentKindPartial    = "PARTIAL"    // abono
	PaymentKindDeferral   = "DEFERRAL"   // prórroga, no mueve dinero
)

// Métodos de pago.
const (
	PaymentMethodCash     = "CASH"
	PaymentMethodTransfer = "TRANSFER"
	PaymentMethodDeposit  = "DEPOSIT"
	PaymentMethodCard     = "CARD"
	PaymentMethodSystem   = "SYSTEM"
)

// Justificaciones de pago tardío. Solo CLIENT_FAULT se marca como penalizado.
const (
	LateJustificationClientFault       = "CLIENT_FAULT"
	LateJustificationPriorAgreement    = "PRIOR_AGREEMENT"
	LateJustificationInternalLogistics = "INTERNAL_LOGISTICS"
)

// Payment evento de pago inmutable; también es la bitácora de auditoría.
// Las correcciones se registran como eventos nuevos.
type Payment struct {
	ID                string
	CompanyID         string
	AccountID         string
	UserID            string
	RequestID         string // llave de idempotencia enviada por el cliente (opcional)
	Amount            decimal.Decimal
	AppliedAmount     decimal.Decimal // parte del monto que redujo saldos
	Kind              string
	Method            string
	Reference         string
	ServicePeriod     string // "AAAA-MM"
	LateJustification string
	Note              string
	IsLate            bool
	DaysLate          int
	Penalized         bool
	CloseID           *string
	CreatedAt         time.Time
}

// MovesMoney indica si el evento representa dinero recibido (las prórrogas no).
func (p *Payment) MovesMoney() bool {
	return p.Kind != PaymentKindDeferral
}
