package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan de internet contratable. Nunca se borra si una cuenta lo referencia;
// se desactiva con Active=false.
type Plan struct {
	ID           string
	CompanyID    string
	Name         string
	MonthlyPrice decimal.Decimal
	Speed        string // informativo, ej. "20 Mbps"
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
