package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/redcobro-api/internal/application/billing"
	"github.com/jhoicas/redcobro-api/internal/domain/entity"
	"github.com/jhoicas/redcobro-api/pkg/logger"
)

type countingPurger struct{ calls int }

func (p *countingPurger) Purge() int { p.calls++; return 0 }

func TestScheduler_RunOnceCobraYCierra(t *testing.T) {
	f := newFixture(at(2026, time.October, 19, 6))
	f.addAccount("a", 15, "0", "0")
	purger := &countingPurger{}
	s := billing.NewScheduler(f.companies, f.charges, f.closing, purger, time.Hour, logger.Nop())

	s.RunOnce(context.Background())
	s.RunOnce(context.Background())

	assert.True(t, f.account("a").CurrentDue.Equal(dec("300")), "el cargo mensual se aplica una sola vez")
	list, err := f.closing.List(context.Background(), companyID)
	assert.NoError(t, err)
	if assert.Len(t, list, 1) {
		assert.Equal(t, "2026-10-Q1", list[0].PeriodLabel)
	}
	assert.Equal(t, 2, purger.calls)
}

// Tras un reinicio que saltó una quincena entera, la siguiente vuelta la cierra también.
func TestScheduler_RecuperaQuincenaPerdida(t *testing.T) {
	f := newFixture(at(2026, time.October, 19, 6))
	f.addAccount("a", 25, "300", "0")
	s := billing.NewScheduler(f.companies, f.charges, f.closing, nil, time.Hour, logger.Nop())
	ctx := context.Background()

	s.RunOnce(ctx)
	f.pay(t, at(2026, time.October, 25, 9), cashPayment("a", entity.PaymentKindSettlement, "300"))

	f.clock.T = at(2026, time.November, 20, 6)
	s.RunOnce(ctx)

	list, err := f.closing.List(ctx, companyID)
	require.NoError(t, err)
	labels := make([]string, 0, len(list))
	for _, c := range list {
		labels = append(labels, c.PeriodLabel)
	}
	assert.Equal(t, []string{"2026-10-Q1", "2026-10-Q2", "2026-11-Q1"}, labels)
	assert.Equal(t, 1, list[1].PagosIncluidos, "el pago del 25 de octubre queda en su cierre")
	for _, p := range f.store.payments {
		assert.NotNil(t, p.CloseID, "ningún pago queda fuera de un cierre")
	}
}

func TestScheduler_StartStop(t *testing.T) {
	f := newFixture(at(2026, time.October, 19, 6))
	s := billing.NewScheduler(f.companies, f.charges, f.closing, nil, time.Hour, logger.Nop())

	s.Start(context.Background())
	s.Start(context.Background()) // segunda llamada no lanza otra goroutine

	assert.Eventually(t, func() bool {
		list, _ := f.closing.List(context.Background(), companyID)
		return len(list) == 1
	}, time.Second, 10*time.Millisecond, "la primera vuelta corre al iniciar")

	s.Stop()
	s.Stop()
}
