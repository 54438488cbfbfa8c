package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/redcobro-api/internal/domain/entity"
)

// PendingChargePeriods meses de servicio ("AAAA-MM") que la cuenta debe cargar en today,
// del más antiguo al más reciente. Además del mes en curso (si ya llegó su corte)
// se recupera el mes anterior cuando quedó sin cargar, p. ej. un corte del 30
// con el proceso caído hasta el día 1. No se recupera más atrás: las cuentas
// reactivadas quedan marcadas con el mes anterior (MarkReactivated).
func PendingChargePeriods(acc *entity.Account, today time.Time) []string {
	if acc.Status != entity.AccountStatusActive || acc.PlanID == nil {
		return nil
	}
	month := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	current := ServicePeriodOf(month)
	previous := ServicePeriodOf(month.AddDate(0, -1, 0))
	last := acc.LastChargedPeriod
	if last >= current {
		return nil
	}
	var out []string
	// "AAAA-MM" ordena igual que las fechas.
	if last != "" && last < previous {
		out = append(out, previous)
	}
	if today.Day() >= EffectiveDueDay(acc.DueDay, today.Year(), today.Month()) {
		out = append(out, current)
	}
	return out
}

// ChargeDue indica si a la cuenta le corresponde algún cargo mensual en today:
// activa, con plan y con un mes vencido sin cargar.
func ChargeDue(acc *entity.Account, today time.Time) bool {
	return len(PendingChargePeriods(acc, today)) > 0
}

// ApplyCharge suma una mensualidad por cada mes pendiente y marca el último mes cargado.
func ApplyCharge(acc entity.Account, monthlyPrice decimal.Decimal, today time.Time) entity.Account {
	periods := PendingChargePeriods(&acc, today)
	if len(periods) == 0 {
		return acc
	}
	acc.CurrentDue = acc.CurrentDue.Add(monthlyPrice.Mul(decimal.NewFromInt(int64(len(periods)))))
	acc.LastChargedPeriod = periods[len(periods)-1]
	return acc
}

// MarkReactivated al volver a ACTIVE los meses suspendidos no se cobran:
// el mes anterior queda como último cargado si el registro era más viejo.
func MarkReactivated(acc entity.Account, today time.Time) entity.Account {
	previous := ServicePeriodOf(time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location()).AddDate(0, -1, 0))
	if acc.LastChargedPeriod < previous {
		acc.LastChargedPeriod = previous
	}
	return acc
}
