package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Las cuatro familias de cobranza son ErrInvalidInput, ErrConcurrencyConflict,
// ErrNotFound y ErrClosing; los errores específicos las envuelven con %w.
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia, reintente")
	ErrClosing             = errors.New("cierre quincenal no permitido")
)

// Validación de pagos y cuentas.
var (
	ErrInvalidAmount          = fmt.Errorf("%w: el monto debe ser mayor a cero", ErrInvalidInput)
	ErrReferenceRequired      = fmt.Errorf("%w: la referencia es obligatoria para este método de pago", ErrInvalidInput)
	ErrJustificationRequired  = fmt.Errorf("%w: el pago es tardío y requiere justificación", ErrInvalidInput)
	ErrAccountCanceled        = fmt.Errorf("%w: la cuenta está cancelada", ErrInvalidInput)
	ErrInsufficientSettlement = fmt.Errorf("%w: la liquidación no cubre el adeudo total", ErrInvalidInput)
	ErrDeferralExceedsDue     = fmt.Errorf("%w: la prórroga excede el adeudo actual", ErrInvalidInput)
	ErrDeferralNoteRequired   = fmt.Errorf("%w: la prórroga requiere una nota de justificación", ErrInvalidInput)
	ErrInvalidKind            = fmt.Errorf("%w: tipo de pago desconocido", ErrInvalidInput)
	ErrInvalidMethod          = fmt.Errorf("%w: método de pago desconocido", ErrInvalidInput)
	ErrInvalidJustification   = fmt.Errorf("%w: justificación desconocida", ErrInvalidInput)
	ErrInvalidServicePeriod   = fmt.Errorf("%w: periodo de servicio debe tener formato AAAA-MM", ErrInvalidInput)
	ErrInvalidDueDay          = fmt.Errorf("%w: el día de corte debe estar entre 1 y 31", ErrInvalidInput)
	ErrInvalidTransition      = fmt.Errorf("%w: cambio de estado no permitido", ErrInvalidInput)
	ErrPlanInactive           = fmt.Errorf("%w: el plan está desactivado", ErrInvalidInput)
	ErrInvalidPeriod          = fmt.Errorf("%w: periodo quincenal debe tener formato AAAA-MM-Q1 o AAAA-MM-Q2", ErrInvalidInput)
)

// Cierres quincenales.
var (
	ErrPeriodNotElapsed    = fmt.Errorf("%w: el periodo aún no termina", ErrClosing)
	ErrPeriodAlreadyClosed = fmt.Errorf("%w: el periodo ya fue cerrado", ErrClosing)
)

// Códigos estables para clientes de la API.
const (
	CodeValidation          = "VALIDATION"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	CodeNotFound            = "NOT_FOUND"
	CodeClosing             = "CLOSING"
	CodeDuplicate           = "DUPLICATE"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeInternal            = "INTERNAL"
)

// ErrorCode traduce cualquier error a su código estable.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return CodeValidation
	case errors.Is(err, ErrConcurrencyConflict):
		return CodeConcurrencyConflict
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound):
		return CodeNotFound
	case errors.Is(err, ErrClosing):
		return CodeClosing
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrEmailAlreadyExists):
		return CodeDuplicate
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	default:
		return CodeInternal
	}
}
