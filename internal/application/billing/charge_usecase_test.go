package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/redcobro-api/internal/domain/entity"
)

func TestChargeRun_UnaVezPorMes(t *testing.T) {
	f := newFixture(at(2026, time.October, 19, 6))
	f.addAccount("corte-15", 15, "0", "0")
	f.addAccount("corte-30", 30, "0", "0")
	f.addAccount("suspendida", 1, "0", "0")
	susp := f.store.accounts["suspendida"]
	susp.Status = entity.AccountStatusSuspended
	f.store.accounts["suspendida"] = susp

	res, err := f.charges.Run(context.Background(), companyID, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Charged, "solo la cuenta activa cuyo corte ya pasó")
	assert.True(t, res.TotalCharged.Equal(dec("300")))

	acc := f.account("corte-15")
	assert.True(t, acc.CurrentDue.Equal(dec("300")))
	assert.Equal(t, "2026-10", acc.LastChargedPeriod)
	assert.True(t, f.account("corte-30").CurrentDue.IsZero())
	assert.True(t, f.account("suspendida").CurrentDue.IsZero())

	again, err := f.charges.Run(context.Background(), companyID, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Charged, "repetir el mismo mes no duplica el cargo")
	assert.True(t, f.account("corte-15").CurrentDue.Equal(dec("300")))
}

// Un corte el 31 se cobra el último día de los meses cortos.
func TestChargeRun_CorteFinDeMes(t *testing.T) {
	f := newFixture(at(2026, time.February, 28, 6))
	f.addAccount("corte-31", 31, "0", "0")

	res, err := f.charges.Run(context.Background(), companyID, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Charged)
	assert.Equal(t, "2026-02", f.account("corte-31").LastChargedPeriod)
}

// El proceso estuvo caído el 30 y 31: el día 1 se cobra el mes anterior.
func TestChargeRun_RecuperaCorteDelMesAnterior(t *testing.T) {
	f := newFixture(at(2026, time.November, 1, 6))
	f.addAccount("corte-30", 30, "0", "0")
	acc := f.store.accounts["corte-30"]
	acc.LastChargedPeriod = "2026-09"
	f.store.accounts["corte-30"] = acc

	res, err := f.charges.Run(context.Background(), companyID, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Charged)
	assert.True(t, res.TotalCharged.Equal(dec("300")))
	assert.Equal(t, "2026-10", f.account("corte-30").LastChargedPeriod)

	f.clock.T = at(2026, time.November, 30, 6)
	res, err = f.charges.Run(context.Background(), companyID, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Charged)
	assert.True(t, f.account("corte-30").CurrentDue.Equal(dec("600")), "octubre y noviembre, sin duplicar")
}
