package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/redcobro-api/internal/domain"
)

// Quincenas del mes.
const (
	FirstHalf  = 1 // días 1–15
	SecondHalf = 2 // días 16–fin de mes
)

const firstHalfLastDay = 15

// Period quincena [Start, End) en la zona horaria del negocio.
type Period struct {
	Year  int
	Month time.Month
	Half  int
	loc   *time.Location
}

// PeriodOf quincena que contiene t.
func PeriodOf(t time.Time) Period {
	half := FirstHalf
	if t.Day() > firstHalfLastDay {
		half = SecondHalf
	}
	return Period{Year: t.Year(), Month: t.Month(), Half: half, loc: t.Location()}
}

// ParsePeriod interpreta etiquetas "AAAA-MM-Q1" y "AAAA-MM-Q2".
func ParsePeriod(label string, loc *time.Location) (Period, error) {
	parts := strings.Split(strings.TrimSpace(label), "-")
	if len(parts) != 3 {
		return Period{}, domain.ErrInvalidPeriod
	}
	month, err := time.Parse("2006-01", parts[0]+"-"+parts[1])
	if err != nil {
		return Period{}, domain.ErrInvalidPeriod
	}
	var half int
	switch strings.ToUpper(parts[2]) {
	case "Q1":
		half = FirstHalf
	case "Q2":
		half = SecondHalf
	default:
		return Period{}, domain.ErrInvalidPeriod
	}
	if loc == nil {
		loc = time.UTC
	}
	return Period{Year: month.Year(), Month: month.Month(), Half: half, loc: loc}, nil
}

// Label etiqueta estable del periodo.
func (p Period) Label() string {
	return fmt.Sprintf("%04d-%02d-Q%d", p.Year, int(p.Month), p.Half)
}

func (p Period) location() *time.Location {
	if p.loc == nil {
		return time.UTC
	}
	return p.loc
}

// Start inicio inclusivo.
func (p Period) Start() time.Time {
	day := 1
	if p.Half == SecondHalf {
		day = firstHalfLastDay + 1
	}
	return time.Date(p.Year, p.Month, day, 0, 0, 0, 0, p.location())
}

// End fin exclusivo.
func (p Period) End() time.Time {
	if p.Half == FirstHalf {
		return time.Date(p.Year, p.Month, firstHalfLastDay+1, 0, 0, 0, 0, p.location())
	}
	return time.Date(p.Year, p.Month+1, 1, 0, 0, 0, 0, p.location())
}

// Previous quincena anterior.
func (p Period) Previous() Period {
	if p.Half == SecondHalf {
		return Period{Year: p.Year, Month: p.Month, Half: FirstHalf, loc: p.loc}
	}
	prev := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, p.location()).AddDate(0, -1, 0)
	return Period{Year: prev.Year(), Month: prev.Month(), Half: SecondHalf, loc: p.loc}
}

// Next quincena siguiente.
func (p Period) Next() Period {
	if p.Half == FirstHalf {
		return Period{Year: p.Year, Month: p.Month, Half: SecondHalf, loc: p.loc}
	}
	next := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, p.location()).AddDate(0, 1, 0)
	return Period{Year: next.Year(), Month: next.Month(), Half: FirstHalf, loc: p.loc}
}

// Before indica si p empieza antes que q.
func (p Period) Before(q Period) bool {
	return p.Start().Before(q.Start())
}

// Elapsed indica si el periodo ya terminó en now.
func (p Period) Elapsed(now time.Time) bool {
	return !now.Before(p.End())
}

// Contains indica si t cae dentro del periodo.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start()) && t.Before(p.End())
}

// IncludesDueDay indica si un día de corte pertenece a esta quincena (para la meta).
func (p Period) IncludesDueDay(dueDay int) bool {
	effective := EffectiveDueDay(dueDay, p.Year, p.Month)
	if p.Half == FirstHalf {
		return effective <= firstHalfLastDay
	}
	return effective > firstHalfLastDay
}

// ServicePeriodOf mes de servicio "AAAA-MM" de t.
func ServicePeriodOf(t time.Time) string {
	return t.Format("2006-01")
}

// ValidServicePeriod valida el formato "AAAA-MM".
func ValidServicePeriod(s string) bool {
	if len(s) != len("2006-01") {
		return false
	}
	_, err := time.Parse("2006-01", s)
	return err == nil
}
