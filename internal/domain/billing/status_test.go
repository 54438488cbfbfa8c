package billing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/redcobro-api/internal/domain"
	"github.com/jhoicas/redcobro-api/internal/domain/billing"
	"github.com/jhoicas/redcobro-api/internal/domain/entity"
)

func TestTransitionStatus(t *testing.T) {
	acc := account("0", "0")
	assert.NoError(t, billing.TransitionStatus(&acc, entity.AccountStatusSuspended))
	assert.NoError(t, billing.TransitionStatus(&acc, entity.AccountStatusCut))
	assert.ErrorIs(t, billing.TransitionStatus(&acc, entity.AccountStatusActive), domain.ErrInvalidTransition, "mismo estado")

	acc.Status = entity.AccountStatusCut
	assert.NoError(t, billing.TransitionStatus(&acc, entity.AccountStatusActive), "reactivar")
	assert.ErrorIs(t, billing.TransitionStatus(&acc, entity.AccountStatusSuspended), domain.ErrInvalidTransition)
	assert.ErrorIs(t, billing.TransitionStatus(&acc, "BORRADA"), domain.ErrInvalidTransition)

	acc.Status = entity.AccountStatusCanceled
	assert.ErrorIs(t, billing.TransitionStatus(&acc, entity.AccountStatusActive), domain.ErrAccountCanceled, "cancelada es terminal")
}

func TestChargeDue(t *testing.T) {
	planID := "plan-1"
	acc := account("0", "0")
	acc.PlanID = &planID

	assert.False(t, billing.ChargeDue(&acc, day(2026, time.October, 14)), "antes del corte")
	assert.True(t, billing.ChargeDue(&acc, day(2026, time.October, 15)))
	assert.True(t, billing.ChargeDue(&acc, day(2026, time.October, 20)), "se recupera un cargo atrasado")

	charged := billing.ApplyCharge(acc, dec("350"), day(2026, time.October, 15))
	assertDec(t, "350", charged.CurrentDue, "cargo aplicado")
	assert.Equal(t, "2026-10", charged.LastChargedPeriod)
	assert.False(t, billing.ChargeDue(&charged, day(2026, time.October, 20)), "un cargo por mes")
	assert.True(t, billing.ChargeDue(&charged, day(2026, time.November, 15)))

	acc.Status = entity.AccountStatusSuspended
	assert.False(t, billing.ChargeDue(&acc, day(2026, time.October, 15)), "solo cuentas activas")
	acc.Status = entity.AccountStatusActive
	acc.PlanID = nil
	assert.False(t, billing.ChargeDue(&acc, day(2026, time.October, 15)), "sin plan no hay cargo")

	feb := account("0", "0")
	feb.DueDay = 30
	feb.PlanID = &planID
	assert.True(t, billing.ChargeDue(&feb, day(2026, time.February, 28)), "corte 30 en febrero cae el 28")
}

func TestChargeDue_RecuperaMesAnterior(t *testing.T) {
	planID := "plan-1"
	acc := account("0", "0")
	acc.PlanID = &planID
	acc.DueDay = 30
	acc.LastChargedPeriod = "2026-09"

	// Proceso caído del 30 al 31 de octubre: el 1 de noviembre aún se cobra octubre.
	nov1 := day(2026, time.November, 1)
	assert.Equal(t, []string{"2026-10"}, billing.PendingChargePeriods(&acc, nov1))
	charged := billing.ApplyCharge(acc, dec("300"), nov1)
	assertDec(t, "300", charged.CurrentDue, "una sola mensualidad")
	assert.Equal(t, "2026-10", charged.LastChargedPeriod)
	assert.False(t, billing.ChargeDue(&charged, day(2026, time.November, 29)))

	// Ambos meses pendientes el día 30.
	both := billing.ApplyCharge(acc, dec("300"), day(2026, time.November, 30))
	assertDec(t, "600", both.CurrentDue, "octubre y noviembre")
	assert.Equal(t, "2026-11", both.LastChargedPeriod)

	// Una reactivación no cobra los meses suspendidos.
	acc.LastChargedPeriod = "2026-05"
	react := billing.MarkReactivated(acc, day(2026, time.November, 3))
	assert.Equal(t, "2026-10", react.LastChargedPeriod)
	assert.Empty(t, billing.PendingChargePeriods(&react, day(2026, time.November, 3)))
	assert.Equal(t, []string{"2026-11"}, billing.PendingChargePeriods(&react, day(2026, time.November, 30)))
}
