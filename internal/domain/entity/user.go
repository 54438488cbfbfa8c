package entity

import "time"

// Roles de operador.
const (
	RoleAdmin    = "admin"
	RoleCobrador = "cobrador"
	RoleTecnico  = "tecnico"
)

const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User operador del back-office (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
