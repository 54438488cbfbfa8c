package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCloseRequest body para POST /api/closes.
// Period vacío = última quincena terminada; Target nil = meta calculada de las cuentas activas.
type CreateCloseRequest struct {
	Period string           `json:"period,omitempty"`
	Target *decimal.Decimal `json:"target,omitempty"`
}

// CloseResponse cierre quincenal.
type CloseResponse struct {
	ID                string          `json:"id"`
	PeriodLabel       string          `json:"periodLabel"`
	PeriodStart       time.Time       `json:"periodStart"`
	PeriodEnd         time.Time       `json:"periodEnd"`
	MetaEstimada      decimal.Decimal `json:"metaEstimada"`
	CobradoATiempo    decimal.Decimal `json:"cobradoATiempo"`
	CobradoRecuperado decimal.Decimal `json:"cobradoRecuperado"`
	Faltante          decimal.Decimal `json:"faltante"`
	Excedente         decimal.Decimal `json:"excedente"`
	Estado            string          `json:"estado"`
	PagosIncluidos    int             `json:"pagosIncluidos"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// ChargeRunResponse resultado de POST /api/billing/charges.
type ChargeRunResponse struct {
	Date         string          `json:"date"`
	Charged      int             `json:"charged"`
	TotalCharged decimal.Decimal `json:"totalCharged"`
	Skipped      int             `json:"skipped"`
}
