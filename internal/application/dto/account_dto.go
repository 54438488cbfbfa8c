package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountRequest body para POST /api/accounts y PUT /api/accounts/:id.
// En la creación CurrentDue permite registrar un saldo inicial migrado.
type AccountRequest struct {
	Name       string           `json:"name"`
	Phone      string           `json:"phone,omitempty"`
	Address    string           `json:"address,omitempty"`
	PlanID     *string          `json:"planId"`
	DueDay     int              `json:"dueDay"`
	CurrentDue *decimal.Decimal `json:"currentDue,omitempty"`
}

// ChangeStatusRequest body para POST /api/accounts/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// AccountResponse cuenta con saldos y plan.
type AccountResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Phone             string          `json:"phone,omitempty"`
	Address           string          `json:"address,omitempty"`
	PlanID            *string         `json:"planId"`
	Plan              *PlanResponse   `json:"plan,omitempty"`
	DueDay            int             `json:"dueDay"`
	CurrentDue        decimal.Decimal `json:"currentDue"`
	DeferredDue       decimal.Decimal `json:"deferredDue"`
	TotalDebt         decimal.Decimal `json:"totalDebt"`
	Status            string          `json:"status"`
	LastChargedPeriod string          `json:"lastChargedPeriod,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// PaymentSuggestionResponse respuesta de GET /api/accounts/:id/payment-suggestion.
type PaymentSuggestionResponse struct {
	AccountID             string          `json:"accountId"`
	TotalDebt             decimal.Decimal `json:"totalDebt"`
	DaysLate              int             `json:"daysLate"`
	IsLate                bool            `json:"isLate"`
	JustificationRequired bool            `json:"justificationRequired"`
	SuggestedKind         string          `json:"suggestedKind"`
	SuggestedAmount       decimal.Decimal `json:"suggestedAmount"`
	ServicePeriod         string          `json:"period"`
}
