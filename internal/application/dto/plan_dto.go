package dto

import "github.com/shopspring/decimal"

// PlanRequest body para POST /api/plans y PUT /api/plans/:id.
type PlanRequest struct {
	Name         string          `json:"name"`
	MonthlyPrice decimal.Decimal `json:"monthlyPrice"`
	Speed        string          `json:"speed,omitempty"`
}

// PlanResponse plan en respuestas.
type PlanResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	MonthlyPrice decimal.Decimal `json:"monthlyPrice"`
	Speed        string          `json:"speed,omitempty"`
	Active       bool            `json:"active"`
}
