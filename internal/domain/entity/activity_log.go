package entity

import "time"

// Acciones registradas en la bitácora de actividad.
const (
	ActivityPayment      = "PAYMENT"
	ActivityStatusChange = "STATUS_CHANGE"
	ActivityCharge       = "CHARGE"
	ActivityClose        = "CLOSE"
)

// ActivityLog entrada de bitácora.
type ActivityLog struct {
	ID        string
	CompanyID string
	UserID    string
	AccountID string
	Action    string
	Detail    string
	CreatedAt time.Time
}
