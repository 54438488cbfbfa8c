// Package billing reúne el modelo de cobranza que comparten todas las vistas:
// días de atraso, clasificación de pagos, libro de saldos, vistas de cobranza y
// cierres quincenales. Son funciones puras; "hoy" siempre llega como parámetro.
package billing

import "time"

const (
	// GraceDays ventana de gracia después del día de corte.
	GraceDays = 5
	// RolloverWindowDays primeros días del mes en los que el atraso se sigue
	// contando desde el corte del mes anterior.
	RolloverWindowDays = 7
)

// DaysLate días transcurridos desde el día de corte dueDay hasta today.
//
// Si today.Day()-dueDay es negativo y today.Day() <= 7, el atraso se cuenta desde
// el corte del mes anterior: today.Day() + (últimoDíaMesAnterior - dueDay).
// Un corte el 30 no vuelve a "0 días" el día 1 del mes siguiente.
// Valores <= 0 significan que el corte aún no llega; no se recorta el resultado.
func DaysLate(dueDay int, today time.Time) int {
	day := today.Day()
	diff := day - EffectiveDueDay(dueDay, today.Year(), today.Month())
	if diff < 0 && day <= RolloverWindowDays {
		prev := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location()).AddDate(0, -1, 0)
		lastPrev := LastDayOfMonth(prev.Year(), prev.Month())
		return day + (lastPrev - EffectiveDueDay(dueDay, prev.Year(), prev.Month()))
	}
	return diff
}

// EffectiveDueDay día de corte real dentro del mes: un corte el 31 cae el 30 en
// abril y el 28 o 29 en febrero.
func EffectiveDueDay(dueDay int, year int, month time.Month) int {
	last := LastDayOfMonth(year, month)
	if dueDay > last {
		return last
	}
	return dueDay
}

// LastDayOfMonth número de días del mes.
func LastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsWithinGrace indica si daysLate cae dentro de la ventana de gracia (1..5).
func IsWithinGrace(daysLate int) bool {
	return daysLate > 0 && daysLate <= GraceDays
}

// ValidDueDay indica si el día de corte es aceptable.
func ValidDueDay(dueDay int) bool {
	return dueDay >= 1 && dueDay <= 31
}
