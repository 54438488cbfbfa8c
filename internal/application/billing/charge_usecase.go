package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/redcobro-api/internal/application/dto"
	"github.com/jhoicas/redcobro-api/internal/domain"
	dombilling "github.com/jhoicas/redcobro-api/internal/domain/billing"
	"github.com/jhoicas/redcobro-api/internal/domain/entity"
	"github.com/jhoicas/redcobro-api/internal/domain/repository"
	"github.com/jhoicas/redcobro-api/pkg/clock"
	"github.com/jhoicas/redcobro-api/pkg/logger"
)

// ChargeUseCase cargo mensual: suma la mensualidad del plan al adeudo corriente
// de cada cuenta activa cuando llega su día de corte. Repetirlo el mismo mes no duplica.
type ChargeUseCase struct {
	accounts repository.AccountRepository
	tx       TxRunner
	clock    clock.Clock
	log      *logger.Logger
}

// NewChargeUseCase construye el caso de uso.
func NewChargeUseCase(accounts repository.AccountRepository, tx TxRunner, clk clock.Clock, log *logger.Logger) *ChargeUseCase {
	return &ChargeUseCase{accounts: accounts, tx: tx, clock: clk, log: log.Component("cargos")}
}

// Run aplica los cargos pendientes de hoy. Cada cuenta va en su propia transacción.
func (uc *ChargeUseCase) Run(ctx context.Context, companyID, userID string) (*dto.ChargeRunResponse, error) {
	today := uc.clock.Now()
	active, err := uc.accounts.List(ctx, companyID, repository.AccountFilter{Status: entity.AccountStatusActive})
	if err != nil {
		return nil, err
	}
	out := &dto.ChargeRunResponse{Date: today.Format("2006-01-02"), TotalCharged: decimal.Zero}
	for i := range active {
		a := &active[i]
		if a.Plan == nil || !dombilling.ChargeDue(&a.Account, today) {
			continue
		}
		months, err := uc.chargeOne(ctx, companyID, userID, a.ID, a.Plan)
		switch {
		case err == nil && months > 0:
			out.Charged++
			out.TotalCharged = out.TotalCharged.Add(a.Plan.MonthlyPrice.Mul(decimal.NewFromInt(int64(months))))
		case err == nil:
			out.Skipped++
		case errors.Is(err, domain.ErrConcurrencyConflict):
			// La cuenta se reintenta en la siguiente ejecución.
			out.Skipped++
			uc.log.Warn().Err(err).Str("account_id", a.ID).Msg("cargo omitido por conflicto")
		default:
			return out, fmt.Errorf("cargo cuenta %s: %w", a.ID, err)
		}
	}
	if out.Charged > 0 {
		uc.log.Info().Str("company_id", companyID).Int("charged", out.Charged).
			Str("total", out.TotalCharged.String()).Msg("cargos mensuales aplicados")
	}
	return out, nil
}

// chargeOne vuelve a evaluar con la fila bloqueada: otra ejecución pudo cargarla ya.
// Devuelve cuántas mensualidades aplicó.
func (uc *ChargeUseCase) chargeOne(ctx context.Context, companyID, userID, accountID string, plan *entity.Plan) (int, error) {
	today := uc.clock.Now()
	months := 0
	err := uc.tx.Run(ctx, func(repos TxRepos) error {
		acc, err := repos.Accounts.GetForUpdate(ctx, companyID, accountID)
		if err != nil || acc == nil {
			return err
		}
		periods := dombilling.PendingChargePeriods(acc, today)
		if len(periods) == 0 || acc.PlanID == nil || *acc.PlanID != plan.ID {
			return nil
		}
		updated := dombilling.ApplyCharge(*acc, plan.MonthlyPrice, today)
		updated.UpdatedAt = today
		if err := repos.Accounts.UpdateBalances(ctx, &updated); err != nil {
			return err
		}
		months = len(periods)
		detail := fmt.Sprintf("mensualidad %s %s", strings.Join(periods, ","), plan.MonthlyPrice.StringFixed(2))
		return repos.Activity.Create(ctx, newActivity(companyID, userID, accountID, entity.ActivityCharge, detail, today))
	})
	return months, err
}
