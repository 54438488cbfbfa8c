package billing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/redcobro-api/internal/domain"
	"github.com/jhoicas/redcobro-api/internal/domain/entity"
)

// Assessment situación de una cuenta frente a un intento de pago.
type Assessment struct {
	TotalDebt       decimal.Decimal
	DaysLate        int
	IsLate          bool
	SuggestedKind   string
	SuggestedAmount decimal.Decimal
}

// Assess calcula adeudo, atraso y la sugerencia de tipo/monto para el formulario de pago.
// planPrice es la mensualidad del plan (cero si la cuenta no tiene plan).
func Assess(acc *entity.Account, planPrice decimal.Decimal, today time.Time) Assessment {
	total := acc.TotalDebt()
	daysLate := DaysLate(acc.DueDay, today)
	a := Assessment{
		TotalDebt: total,
		DaysLate:  daysLate,
		IsLate:    isLate(acc, daysLate),
	}
	if total.IsPositive() {
		a.SuggestedKind = entity.PaymentKindSettlement
		a.SuggestedAmount = total
	} else {
		a.SuggestedKind = entity.PaymentKindPartial
		a.SuggestedAmount = planPrice
	}
	return a
}

// Una prórroga vigente vuelve tardía a la cuenta sin importar los días transcurridos.
func isLate(acc *entity.Account, daysLate int) bool {
	return daysLate > GraceDays || acc.DeferredDue.IsPositive()
}

// PaymentAttempt datos capturados por el operador.
type PaymentAttempt struct {
	Amount            decimal.Decimal
	Kind              string
	Method            string
	Reference         string
	ServicePeriod     string
	LateJustification string
	Note              string
}

// Classification resultado normalizado, listo para el libro de saldos.
type Classification struct {
	Amount            decimal.Decimal
	Kind              string
	Method            string
	Reference         string
	ServicePeriod     string
	LateJustification string
	Note              string
	DaysLate          int
	IsLate            bool
	Penalized         bool
}

// Classify decide tipo, atraso y penalización de un intento de pago y aplica la
// compuerta de validación previa al libro de saldos.
// Si Kind viene vacío se usa el tipo sugerido; en una prórroga sin monto se
// prorroga todo el adeudo corriente.
func Classify(acc *entity.Account, in PaymentAttempt, today time.Time) (Classification, error) {
	if acc.IsCanceled() {
		return Classification{}, domain.ErrAccountCanceled
	}
	assessment := Assess(acc, decimal.Zero, today)

	c := Classification{
		Amount:            in.Amount,
		Kind:              strings.ToUpper(strings.TrimSpace(in.Kind)),
		Method:            strings.ToUpper(strings.TrimSpace(in.Method)),
		Reference:         strings.TrimSpace(in.Reference),
		ServicePeriod:     strings.TrimSpace(in.ServicePeriod),
		LateJustification: strings.ToUpper(strings.TrimSpace(in.LateJustification)),
		Note:              strings.TrimSpace(in.Note),
		DaysLate:          assessment.DaysLate,
		IsLate:            assessment.IsLate,
	}
	if c.Kind == "" {
		c.Kind = assessment.SuggestedKind
	}
	if !validKind(c.Kind) {
		return Classification{}, domain.ErrInvalidKind
	}

	if c.Kind == entity.PaymentKindDeferral {
		c.Method = entity.PaymentMethodSystem
		c.Reference = ""
		if c.Amount.IsZero() {
			c.Amount = acc.CurrentDue
		}
	} else if !validMethod(c.Method) {
		return Classification{}, domain.ErrInvalidMethod
	}

	if c.ServicePeriod == "" {
		c.ServicePeriod = ServicePeriodOf(today)
	} else if !ValidServicePeriod(c.ServicePeriod) {
		return Classification{}, domain.ErrInvalidServicePeriod
	}

	if err := ValidateMovement(acc, c.Kind, c.Method, c.Reference, c.Amount); err != nil {
		return Classification{}, err
	}

	if c.Kind == entity.PaymentKindDeferral && c.Note == "" {
		return Classification{}, domain.ErrDeferralNoteRequired
	}

	switch {
	case !c.IsLate:
		c.LateJustification = ""
	case c.LateJustification != "" && !validJustification(c.LateJustification):
		return Classification{}, domain.ErrInvalidJustification
	case c.Kind != entity.PaymentKindDeferral:
		if c.LateJustification == "" {
			return Classification{}, domain.ErrJustificationRequired
		}
		c.Penalized = c.LateJustification == entity.LateJustificationClientFault
	}
	return c, nil
}

// ValidateMovement reglas comunes al clasificador y al libro de saldos:
// cuenta no cancelada, monto > 0 y referencia cuando el método la exige.
func ValidateMovement(acc *entity.Account, kind, method, reference string, amount decimal.Decimal) error {
	if acc.IsCanceled() {
		return domain.ErrAccountCanceled
	}
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if ReferenceRequired(kind, method) && strings.TrimSpace(reference) == "" {
		return domain.ErrReferenceRequired
	}
	return nil
}

// ReferenceRequired la referencia es obligatoria salvo en efectivo o prórroga.
func ReferenceRequired(kind, method string) bool {
	return kind != entity.PaymentKindDeferral && method != entity.PaymentMethodCash
}

func validKind(k string) bool {
	switch k {
	case entity.PaymentKindSettlement, entity.PaymentKindPartial, entity.PaymentKindDeferral:
		return true
	}
	return false
}

func validMethod(m string) bool {
	switch m {
	case entity.PaymentMethodCash, entity.PaymentMethodTransfer, entity.PaymentMethodDeposit,
		entity.PaymentMethodCard, entity.PaymentMethodSystem:
		return true
	}
	return false
}

func validJustification(j string) bool {
	switch j {
	case entity.LateJustificationClientFault, entity.LateJustificationPriorAgreement,
		entity.LateJustificationInternalLogistics:
		return true
	}
	return false
}
