package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cuenta (cliente). CANCELED es terminal.
const (
	AccountStatusActive    = "ACTIVE"
	AccountStatusSuspended = "SUSPENDED"
	AccountStatusCut       = "CUT"
	AccountStatusCanceled  = "CANCELED"
)

// Account cliente del ISP con su saldo corriente.
// CurrentDue y DeferredDue se llevan por separado: una prórroga es un pasivo
// con su propia justificación, no solo deuda acumulada.
type Account struct {
	ID                string
	CompanyID         string
	Name              string
	Phone             string
	Address           string
	PlanID            *string
	DueDay            int // día de corte del mes (1–31; en la práctica 15 o 30)
	CurrentDue        decimal.Decimal
	DeferredDue       decimal.Decimal
	Status            string
	LastChargedPeriod string // "AAAA-MM" del último cargo mensual aplicado
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TotalDebt adeudo corriente más prorrogado.
func (a *Account) TotalDebt() decimal.Decimal {
	return a.CurrentDue.Add(a.DeferredDue)
}

// IsCanceled indica si la cuenta ya no admite pagos ni cambios de estado.
func (a *Account) IsCanceled() bool {
	return a.Status == AccountStatusCanceled
}

// AccountWithPlan cuenta con su plan resuelto (listados y vistas de cobranza).
type AccountWithPlan struct {
	Account
	Plan *Plan
}
