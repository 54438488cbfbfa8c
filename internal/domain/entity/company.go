package entity

import "time"

// Company proveedor de internet (tenant). Todo cliente, plan, pago y cierre pertenece a una.
type Company struct {
	ID        string
	Name      string
	TaxID     string
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended
	CreatedAt time.Time
	UpdatedAt time.Time
}
