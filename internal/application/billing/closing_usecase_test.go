package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/redcobro-api/internal/application/billing"
	"github.com/jhoicas/redcobro-api/internal/application/dto"
	"github.com/jhoicas/redcobro-api/internal/domain"
	"github.com/jhoicas/redcobro-api/internal/domain/entity"
	"github.com/jhoicas/redcobro-api/internal/infrastructure/idempotency"
	"github.com/jhoicas/redcobro-api/pkg/clock"
	"github.com/jhoicas/redcobro-api/pkg/logger"
)

// pay registra un pago con el reloj en when.
func (f *fixture) pay(t *testing.T, when time.Time, in dto.CreatePaymentRequest) {
	t.Helper()
	f.clock.T = when
	_, err := f.payments.Register(context.Background(), companyID, userID, "", in)
	require.NoError(t, err)
}

func TestClose_QuincenaNoTerminada(t *testing.T) {
	f := newFixture(at(2026, time.October, 10, 12))

	_, err := f.closing.Close(context.Background(), companyID, userID, dto.CreateCloseRequest{Period: "2026-10-Q1"})
	require.ErrorIs(t, err, domain.ErrPeriodNotElapsed)
	assert.Equal(t, domain.CodeClosing, domain.ErrorCode(err))

	_, err = f.closing.Close(context.Background(), companyID, userID, dto.CreateCloseRequest{Period: "2026-10-Q3"})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestClose_SumasYUnaSolaVez(t *testing.T) {
	f := newFixture(onTimeDay)
	f.addAccount("a", 15, "300", "0")
	f.addAccount("b", 1, "200", "0")
	f.addAccount("c", 15, "300", "0")

	f.pay(t, at(2026, time.October, 15, 9), cashPayment("a", entity.PaymentKindSettlement, "300"))
	late := cashPayment("b", entity.PaymentKindSettlement, "200")
	late.LateJustification = entity.LateJustificationPriorAgreement
	f.pay(t, at(2026, time.October, 14, 9), late)
	f.pay(t, at(2026, time.October, 15, 11), dto.CreatePaymentRequest{AccountID: "c", Kind: entity.PaymentKindDeferral, Note: "acuerdo"})
	// Fuera del periodo: no cuenta. Con prórroga vigente el abono es tardío.
	outside := cashPayment("c", entity.PaymentKindPartial, "50")
	outside.LateJustification = entity.LateJustificationInternalLogistics
	f.pay(t, at(2026, time.October, 16, 9), outside)

	f.clock.T = at(2026, time.October, 19, 8)
	target := dec("600")
	res, err := f.closing.Close(context.Background(), companyID, userID, dto.CreateCloseRequest{Target: &target})
	require.NoError(t, err)

	assert.Equal(t, "2026-10-Q1", res.PeriodLabel, "sin periodo se cierra la última quincena terminada")
	assert.True(t, res.CobradoATiempo.Equal(dec("300")))
	assert.True(t, res.CobradoRecuperado.Equal(dec("200")), "el pago tardío cuenta como recuperado")
	assert.True(t, res.Faltante.Equal(dec("100")), "la prórroga no suma a lo cobrado")
	assert.Equal(t, entity.CloseStatusDeficit, res.Estado)
	assert.Equal(t, 2, res.PagosIncluidos)

	_, err = f.closing.Close(context.Background(), companyID, userID, dto.CreateCloseRequest{Period: "2026-10-Q1"})
	assert.ErrorIs(t, err, domain.ErrPeriodAlreadyClosed)
	assert.Equal(t, domain.CodeClosing, domain.ErrorCode(err))

	list, err := f.closing.List(context.Background(), companyID)
	require.NoError(t, err)
	assert.Len(t, list, 1, "un solo cierre por quincena")

	for _, p := range f.store.payments {
		if p.CreatedAt.Day() <= 15 {
			require.NotNil(t, p.CloseID, "los pagos del periodo quedan ligados al cierre")
			assert.Equal(t, res.ID, *p.CloseID)
		} else {
			assert.Nil(t, p.CloseID)
		}
	}
}

func TestClose_MetaCalculadaDeCuentasActivas(t *testing.T) {
	f := newFixture(at(2026, time.October, 19, 8))
	f.addAccount("q1", 15, "0", "0")
	f.addAccount("q2", 30, "0", "0")
	f.addAccount("suspendida", 10, "0", "0")
	susp := f.store.accounts["suspendida"]
	susp.Status = entity.AccountStatusSuspended
	f.store.accounts["suspendida"] = susp

	res, err := f.closing.Close(context.Background(), companyID, userID, dto.CreateCloseRequest{Period: "2026-10-Q1"})
	require.NoError(t, err)
	assert.True(t, res.MetaEstimada.Equal(dec("300")), "solo la cuenta activa con corte en la quincena")
	assert.True(t, res.Faltante.Equal(dec("300")))
	assert.Equal(t, entity.CloseStatusDeficit, res.Estado)
}

func TestClose_ToleranciaDeUnPeso(t *testing.T) {
	f := newFixture(onTimeDay)
	f.addAccount("a", 15, "299", "0")
	f.pay(t, at(2026, time.October, 15, 9), cashPayment("a", entity.PaymentKindSettlement, "299"))

	f.clock.T = at(2026, time.October, 16, 0)
	target := dec("300")
	res, err := f.closing.Close(context.Background(), companyID, userID, dto.CreateCloseRequest{Target: &target})
	require.NoError(t, err)
	assert.True(t, res.Faltante.Equal(dec("1")))
	assert.Equal(t, entity.CloseStatusTargetMet, res.Estado)
}

func TestCloseElapsed_Repetido(t *testing.T) {
	f := newFixture(at(2026, time.November, 2, 8))

	first, err := f.closing.CloseElapsed(context.Background(), companyID)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "2026-10-Q2", first[0].PeriodLabel)

	second, err := f.closing.CloseElapsed(context.Background(), companyID)
	require.NoError(t, err)
	assert.Empty(t, second, "la segunda vuelta no hace nada")
}

// Sin cierres previos se arranca en la quincena del pago sin cerrar más antiguo.
func TestCloseElapsed_DesdeElPrimerPagoSinCierre(t *testing.T) {
	f := newFixture(onTimeDay)
	f.addAccount("a", 15, "300", "0")
	f.pay(t, at(2026, time.October, 15, 9), cashPayment("a", entity.PaymentKindSettlement, "300"))

	f.clock.T = at(2026, time.November, 20, 8)
	closed, err := f.closing.CloseElapsed(context.Background(), companyID)
	require.NoError(t, err)
	require.Len(t, closed, 3)
	assert.Equal(t, "2026-10-Q1", closed[0].PeriodLabel)
	assert.Equal(t, 1, closed[0].PagosIncluidos)
	assert.Equal(t, "2026-10-Q2", closed[1].PeriodLabel)
	assert.Equal(t, "2026-11-Q1", closed[2].PeriodLabel)
}

// waitingTx simula la espera por los candados: el reloj avanza antes de que fn corra.
type waitingTx struct {
	*memTx
	clock *clock.Fixed
	until time.Time
}

func (t waitingTx) Run(ctx context.Context, fn func(repos billing.TxRepos) error) error {
	t.clock.T = t.until
	return t.memTx.Run(ctx, fn)
}

// Un pago que espera el candado de la cuenta al filo de la quincena queda fechado
// después de la espera, así nunca cae en una quincena que ya se cerró sin él.
func TestRegister_HoraTomadaTrasLosCandados(t *testing.T) {
	f := newFixture(time.Date(2026, time.October, 15, 23, 59, 59, 0, time.UTC))
	f.addAccount("a", 15, "300", "0")
	ctx := context.Background()

	tx := waitingTx{memTx: &memTx{store: f.store}, clock: f.clock, until: time.Date(2026, time.October, 16, 0, 0, 1, 0, time.UTC)}
	uc := billing.NewPaymentUseCase(&memAccounts{f.store}, &memPayments{f.store}, tx,
		idempotency.NewMemoryStore(), time.Hour, f.clock, logger.Nop())

	res, err := uc.Register(ctx, companyID, userID, "", cashPayment("a", entity.PaymentKindSettlement, "300"))
	require.NoError(t, err)
	assert.Equal(t, tx.until, res.Payment.CreatedAt)
	assert.Equal(t, []string{"pagos"}, f.store.locks, "el pago toma el candado de inserción")

	q1, err := f.closing.Close(ctx, companyID, userID, dto.CreateCloseRequest{Period: "2026-10-Q1"})
	require.NoError(t, err)
	assert.Equal(t, 0, q1.PagosIncluidos)
	assert.Equal(t, []string{"pagos", "cierre"}, f.store.locks, "el cierre espera a los pagos en vuelo")

	f.clock.T = at(2026, time.November, 1, 8)
	q2, err := f.closing.Close(ctx, companyID, userID, dto.CreateCloseRequest{Period: "2026-10-Q2"})
	require.NoError(t, err)
	assert.Equal(t, 1, q2.PagosIncluidos, "el pago entra en la quincena siguiente")
}
