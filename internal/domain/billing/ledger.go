package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/redcobro-api/internal/domain"
	"github.com/jhoicas/redcobro-api/internal/domain/entity"
)

// Apply aplica un evento de pago sobre la cuenta y devuelve la cuenta resultante.
// La cuenta recibida no se modifica.
//
//   - SETTLEMENT: el monto debe cubrir CurrentDue+DeferredDue; ambos quedan en cero.
//   - PARTIAL: descuenta primero de CurrentDue y luego de DeferredDue. El excedente
//     no se abona a favor: los saldos se detienen en cero.
//   - DEFERRAL: traslada el monto de CurrentDue a DeferredDue sin reducir deuda.
func Apply(acc entity.Account, p *entity.Payment) (entity.Account, error) {
	if err := ValidateMovement(&acc, p.Kind, p.Method, p.Reference, p.Amount); err != nil {
		return acc, err
	}
	switch p.Kind {
	case entity.PaymentKindSettlement:
		if p.Amount.LessThan(acc.TotalDebt()) {
			return acc, domain.ErrInsufficientSettlement
		}
		acc.CurrentDue = decimal.Zero
		acc.DeferredDue = decimal.Zero
	case entity.PaymentKindPartial:
		remaining := p.Amount
		acc.CurrentDue, remaining = deduct(acc.CurrentDue, remaining)
		acc.DeferredDue, _ = deduct(acc.DeferredDue, remaining)
	case entity.PaymentKindDeferral:
		if p.Amount.GreaterThan(acc.CurrentDue) {
			return acc, domain.ErrDeferralExceedsDue
		}
		acc.CurrentDue = acc.CurrentDue.Sub(p.Amount)
		acc.DeferredDue = acc.DeferredDue.Add(p.Amount)
	default:
		return acc, domain.ErrInvalidKind
	}
	return acc, nil
}

// AppliedAmount parte del pago que redujo deuda entre before y after.
func AppliedAmount(before, after *entity.Account) decimal.Decimal {
	return before.TotalDebt().Sub(after.TotalDebt())
}

// deduct resta amount de balance sin bajar de cero y devuelve el remanente.
func deduct(balance, amount decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	if amount.GreaterThanOrEqual(balance) {
		return decimal.Zero, amount.Sub(balance)
	}
	return balance.Sub(amount), decimal.Zero
}
