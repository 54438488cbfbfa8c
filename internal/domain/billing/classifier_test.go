package billing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/redcobro-api/internal/domain"
	"github.com/jhoicas/redcobro-api/internal/domain/billing"
	"github.com/jhoicas/redcobro-api/internal/domain/entity"
)

// Corte 15: el 20 de octubre lleva 5 días (en gracia), el 21 lleva 6 (tardío).
var (
	graceDay = day(2026, time.October, 20)
	lateDay  = day(2026, time.October, 21)
)

func cashAttempt(kind, amount string) billing.PaymentAttempt {
	return billing.PaymentAttempt{Kind: kind, Method: entity.PaymentMethodCash, Amount: dec(amount)}
}

func TestAssess_Sugerencias(t *testing.T) {
	acc := account("300", "50")
	a := billing.Assess(&acc, dec("300"), graceDay)
	assert.Equal(t, entity.PaymentKindSettlement, a.SuggestedKind)
	assertDec(t, "350", a.SuggestedAmount, "sugiere el adeudo total")

	clean := account("0", "0")
	a = billing.Assess(&clean, dec("300"), graceDay)
	assert.Equal(t, entity.PaymentKindPartial, a.SuggestedKind, "sin deuda se sugiere abono")
	assertDec(t, "300", a.SuggestedAmount, "sugiere la mensualidad del plan")
	assert.False(t, a.IsLate)
}

// Frontera exacta de la ventana de gracia: 5 días no es tardío, 6 sí.
func TestClassify_FronteraDeGracia(t *testing.T) {
	acc := account("300", "0")

	c, err := billing.Classify(&acc, cashAttempt(entity.PaymentKindSettlement, "300"), graceDay)
	require.NoError(t, err)
	assert.Equal(t, 5, c.DaysLate)
	assert.False(t, c.IsLate)

	_, err = billing.Classify(&acc, cashAttempt(entity.PaymentKindSettlement, "300"), lateDay)
	assert.ErrorIs(t, err, domain.ErrJustificationRequired, "6 días sin justificación se rechaza")
	assert.Equal(t, domain.CodeValidation, domain.ErrorCode(err))
}

func TestClassify_PenalizacionSoloPorCulpaDelCliente(t *testing.T) {
	acc := account("300", "0")
	cases := map[string]bool{
		entity.LateJustificationClientFault:       true,
		entity.LateJustificationPriorAgreement:    false,
		entity.LateJustificationInternalLogistics: false,
	}
	for justification, penalized := range cases {
		t.Run(justification, func(t *testing.T) {
			in := cashAttempt(entity.PaymentKindSettlement, "300")
			in.LateJustification = justification
			c, err := billing.Classify(&acc, in, lateDay)
			require.NoError(t, err)
			assert.True(t, c.IsLate)
			assert.Equal(t, penalized, c.Penalized)
			assert.Equal(t, justification, c.LateJustification)
		})
	}
}

func TestClassify_PrórrogaVigenteVuelveTardío(t *testing.T) {
	acc := account("100", "50")
	_, err := billing.Classify(&acc, cashAttempt(entity.PaymentKindPartial, "20"), day(2026, time.October, 15))
	assert.ErrorIs(t, err, domain.ErrJustificationRequired, "con prórroga vigente el pago es tardío aunque sea el día de corte")
}

func TestClassify_JustificacionSeDescartaSiNoEsTardío(t *testing.T) {
	acc := account("300", "0")
	in := cashAttempt(entity.PaymentKindSettlement, "300")
	in.LateJustification = entity.LateJustificationClientFault
	c, err := billing.Classify(&acc, in, graceDay)
	require.NoError(t, err)
	assert.Empty(t, c.LateJustification)
	assert.False(t, c.Penalized)
}

func TestClassify_PrórrogaFuerzaMetodoSistema(t *testing.T) {
	acc := account("300", "0")
	in := billing.PaymentAttempt{
		Kind:      entity.PaymentKindDeferral,
		Method:    entity.PaymentMethodTransfer,
		Reference: "ignorada",
		Note:      "cliente pagará con su quincena",
	}
	c, err := billing.Classify(&acc, in, lateDay)
	require.NoError(t, err, "una prórroga tardía no exige justificación")
	assert.Equal(t, entity.PaymentMethodSystem, c.Method)
	assert.Empty(t, c.Reference)
	assertDec(t, "300", c.Amount, "sin monto se prorroga todo el adeudo corriente")
	assert.False(t, c.Penalized)
}

func TestClassify_PrórrogaSinNota(t *testing.T) {
	acc := account("300", "0")
	_, err := billing.Classify(&acc, billing.PaymentAttempt{Kind: entity.PaymentKindDeferral}, graceDay)
	assert.ErrorIs(t, err, domain.ErrDeferralNoteRequired)
}

func TestClassify_Validaciones(t *testing.T) {
	acc := account("300", "0")
	canceled := account("300", "0")
	canceled.Status = entity.AccountStatusCanceled

	cases := []struct {
		name string
		acc  entity.Account
		in   billing.PaymentAttempt
		want error
	}{
		{"monto cero", acc, cashAttempt(entity.PaymentKindPartial, "0"), domain.ErrInvalidAmount},
		{"referencia obligatoria", acc, billing.PaymentAttempt{Kind: entity.PaymentKindPartial, Method: entity.PaymentMethodDeposit, Amount: dec("10")}, domain.ErrReferenceRequired},
		{"cuenta cancelada", canceled, cashAttempt(entity.PaymentKindPartial, "10"), domain.ErrAccountCanceled},
		{"método desconocido", acc, billing.PaymentAttempt{Kind: entity.PaymentKindPartial, Method: "CHEQUE", Amount: dec("10")}, domain.ErrInvalidMethod},
		{"tipo desconocido", acc, cashAttempt("ANTICIPO", "10"), domain.ErrInvalidKind},
		{"periodo inválido", acc, billing.PaymentAttempt{Kind: entity.PaymentKindPartial, Method: entity.PaymentMethodCash, Amount: dec("10"), ServicePeriod: "10/2026"}, domain.ErrInvalidServicePeriod},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := billing.Classify(&tc.acc, tc.in, graceDay)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestClassify_NormalizaEntradas(t *testing.T) {
	acc := account("300", "0")
	in := billing.PaymentAttempt{Method: " transfer ", Reference: " SPEI-123 ", Amount: dec("100")}
	c, err := billing.Classify(&acc, in, graceDay)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentKindSettlement, c.Kind, "sin tipo se usa el sugerido")
	assert.Equal(t, entity.PaymentMethodTransfer, c.Method)
	assert.Equal(t, "SPEI-123", c.Reference)
	assert.Equal(t, "2026-10", c.ServicePeriod, "el periodo por defecto es el mes de hoy")
}
