package billing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/redcobro-api/internal/domain/entity"
)

// CollectionEntry cuenta dentro de una vista de cobranza con su atraso calculado.
type CollectionEntry struct {
	Account   entity.AccountWithPlan
	DaysLate  int
	TotalDebt decimal.Decimal
}

// CollectionsView listas de cobranza derivadas de una foto de cuentas.
type CollectionsView struct {
	DueToday         []CollectionEntry
	InGrace          []CollectionEntry
	Arrears          []CollectionEntry // candidatos a corte
	TotalOutstanding decimal.Decimal
}

// BuildCollections clasifica las cuentas usando la misma ventana de gracia que el
// clasificador de pagos, para que tablero y formulario nunca discrepen.
//
//   - DueToday: atraso == 0 y ACTIVE.
//   - InGrace: 0 < atraso <= 5 (o con prórroga vigente) y ACTIVE.
//   - Arrears: adeudo > 0 y no CANCELED, por adeudo descendente y luego id.
func BuildCollections(accounts []entity.AccountWithPlan, today time.Time) CollectionsView {
	view := CollectionsView{
		DueToday: []CollectionEntry{},
		InGrace:  []CollectionEntry{},
		Arrears:  []CollectionEntry{},
	}
	for _, a := range accounts {
		e := CollectionEntry{
			Account:   a,
			DaysLate:  DaysLate(a.DueDay, today),
			TotalDebt: a.TotalDebt(),
		}
		active := a.Status == entity.AccountStatusActive
		if active && e.DaysLate == 0 {
			view.DueToday = append(view.DueToday, e)
		}
		if active && (IsWithinGrace(e.DaysLate) || a.DeferredDue.IsPositive()) {
			view.InGrace = append(view.InGrace, e)
		}
		if e.TotalDebt.IsPositive() && !a.IsCanceled() {
			view.Arrears = append(view.Arrears, e)
		}
	}
	sort.SliceStable(view.Arrears, func(i, j int) bool {
		a, b := view.Arrears[i], view.Arrears[j]
		if c := a.TotalDebt.Cmp(b.TotalDebt); c != 0 {
			return c > 0
		}
		return a.Account.ID < b.Account.ID
	})
	view.TotalOutstanding = TotalOutstanding(accounts)
	return view
}

// TotalOutstanding suma del adeudo total de las cuentas recibidas.
func TotalOutstanding(accounts []entity.AccountWithPlan) decimal.Decimal {
	total := decimal.Zero
	for i := range accounts {
		total = total.Add(accounts[i].TotalDebt())
	}
	return total
}

// EntriesOutstanding suma del adeudo de una lista ya filtrada.
func EntriesOutstanding(entries []CollectionEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.TotalDebt)
	}
	return total
}
