package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clasificación del cierre.
const (
	CloseStatusTargetMet = "META_CUMPLIDA"
	CloseStatusDeficit   = "DEFICIT"
)

// BiweeklyClose cierre quincenal: meta contra lo cobrado a tiempo y recuperado.
// Solo se inserta; nunca se modifica.
type BiweeklyClose struct {
	ID                string
	CompanyID         string
	PeriodLabel       string // "AAAA-MM-Q1" | "AAAA-MM-Q2"
	PeriodStart       time.Time
	PeriodEnd         time.Time // exclusivo
	MetaEstimada      decimal.Decimal
	CobradoATiempo    decimal.Decimal
	CobradoRecuperado decimal.Decimal
	Faltante          decimal.Decimal
	Excedente         decimal.Decimal
	Estado            string
	PagosIncluidos    int
	CreatedAt         time.Time
}
