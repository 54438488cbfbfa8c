package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePaymentRequest body para POST /api/payments.
// RequestID es opcional; también puede llegar en el header Idempotency-Key.
type CreatePaymentRequest struct {
	AccountID         string          `json:"accountId"`
	Amount            decimal.Decimal `json:"amount"`
	Kind              string          `json:"kind"`
	Method            string          `json:"method"`
	Reference         string          `json:"reference,omitempty"`
	Period            string          `json:"period,omitempty"`
	LateJustification string          `json:"lateJustification,omitempty"`
	Note              string          `json:"note,omitempty"`
	RequestID         string          `json:"requestId,omitempty"`
}

// PaymentResponse evento de pago.
type PaymentResponse struct {
	ID                string          `json:"id"`
	AccountID         string          `json:"accountId"`
	Amount            decimal.Decimal `json:"amount"`
	AppliedAmount     decimal.Decimal `json:"appliedAmount"`
	Kind              string          `json:"kind"`
	Method            string          `json:"method"`
	Reference         string          `json:"reference,omitempty"`
	Period            string          `json:"period"`
	LateJustification string          `json:"lateJustification,omitempty"`
	Note              string          `json:"note,omitempty"`
	IsLate            bool            `json:"isLate"`
	DaysLate          int             `json:"daysLate"`
	Penalized         bool            `json:"penalized"`
	RequestID         string          `json:"requestId,omitempty"`
	UserID            string          `json:"userId,omitempty"`
	CloseID           *string         `json:"closeId,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// PaymentResultResponse respuesta de POST /api/payments: evento + cuenta actualizada.
// Replayed indica que la llave de idempotencia ya existía y no se aplicó de nuevo.
type PaymentResultResponse struct {
	Payment  PaymentResponse `json:"payment"`
	Account  AccountResponse `json:"account"`
	Replayed bool            `json:"replayed"`
}
