package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/redcobro-api/internal/domain/entity"
)

// TargetTolerance diferencia por redondeo que todavía cuenta como meta cumplida.
var TargetTolerance = decimal.NewFromInt(1)

// closeNamespace espacio de nombres para los ids de cierre (UUID v5 por empresa y periodo).
var closeNamespace = uuid.MustParse("6f1c3c1e-2f55-4a8e-9d1b-3b7f0a51c2d4")

// CloseID id determinista del cierre de una empresa en un periodo.
func CloseID(companyID, periodLabel string) string {
	return uuid.NewSHA1(closeNamespace, []byte(companyID+"|"+periodLabel)).String()
}

// ClosePeriod construye el cierre quincenal a partir de los pagos del periodo.
// Es determinista: mismas entradas, mismo registro. Las prórrogas no mueven
// dinero y no suman a lo cobrado.
func ClosePeriod(companyID string, period Period, payments []entity.Payment, target decimal.Decimal, createdAt time.Time) entity.BiweeklyClose {
	onTime := decimal.Zero
	recovered := decimal.Zero
	included := 0
	for i := range payments {
		p := &payments[i]
		if !p.MovesMoney() {
			continue
		}
		included++
		if p.IsLate {
			recovered = recovered.Add(p.Amount)
		} else {
			onTime = onTime.Add(p.Amount)
		}
	}
	collected := onTime.Add(recovered)
	faltante := decimal.Max(decimal.Zero, target.Sub(collected))

	return entity.BiweeklyClose{
		ID:                CloseID(companyID, period.Label()),
		CompanyID:         companyID,
		PeriodLabel:       period.Label(),
		PeriodStart:       period.Start(),
		PeriodEnd:         period.End(),
		MetaEstimada:      target,
		CobradoATiempo:    onTime,
		CobradoRecuperado: recovered,
		Faltante:          faltante,
		Excedente:         decimal.Max(decimal.Zero, collected.Sub(target)),
		Estado:            CloseStatus(faltante),
		PagosIncluidos:    included,
		CreatedAt:         createdAt,
	}
}

// CloseStatus META_CUMPLIDA si el faltante está dentro de la tolerancia, si no DEFICIT.
func CloseStatus(faltante decimal.Decimal) string {
	if faltante.LessThanOrEqual(TargetTolerance) {
		return entity.CloseStatusTargetMet
	}
	return entity.CloseStatusDeficit
}

// PeriodTarget meta de la quincena: mensualidad de las cuentas activas con plan
// cuyo día de corte cae dentro del periodo.
func PeriodTarget(period Period, accounts []entity.AccountWithPlan) decimal.Decimal {
	target := decimal.Zero
	for _, a := range accounts {
		if a.Status != entity.AccountStatusActive || a.Plan == nil {
			continue
		}
		if period.IncludesDueDay(a.DueDay) {
			target = target.Add(a.Plan.MonthlyPrice)
		}
	}
	return target
}
