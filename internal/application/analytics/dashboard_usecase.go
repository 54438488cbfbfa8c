// Package analytics contiene los casos de uso de resumen para el tablero del back-office.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/redcobro-api/internal/application/dto"
	dombilling "github.com/jhoicas/redcobro-api/internal/domain/billing"
	"github.com/jhoicas/redcobro-api/internal/domain/entity"
	"github.com/jhoicas/redcobro-api/internal/domain/repository"
	"github.com/jhoicas/redcobro-api/pkg/clock"
)

// DashboardUseCase resumen de cobranza del día y de la quincena en curso.
// Solo lectura; no abre transacciones.
type DashboardUseCase struct {
	accounts repository.AccountRepository
	payments repository.PaymentRepository
	closes   repository.CloseRepository
	clock    clock.Clock
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	accounts repository.AccountRepository,
	payments repository.PaymentRepository,
	closes repository.CloseRepository,
	clk clock.Clock,
) *DashboardUseCase {
	return &DashboardUseCase{accounts: accounts, payments: payments, closes: closes, clock: clk}
}

// GetSummary construye el DashboardSummaryDTO para la empresa indicada.
//
// Cuatro consultas en paralelo:
//  1. cuentas               → conteos de vencen hoy / gracia / morosos y saldo total
//  2. SumCollected(hoy)     → CollectedToday
//  3. SumCollected(quincena)→ CollectedThisPeriod
//  4. último cierre         → LastClose
func (uc *DashboardUseCase) GetSummary(ctx context.Context, companyID string) (*dto.DashboardSummaryDTO, error) {
	now := uc.clock.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.AddDate(0, 0, 1)
	period := dombilling.PeriodOf(now)

	type accountsResult struct {
		list []entity.AccountWithPlan
		err  error
	}
	type sumResult struct {
		total decimal.Decimal
		err   error
	}
	type closeResult struct {
		close *entity.BiweeklyClose
		err   error
	}

	accCh := make(chan accountsResult, 1)
	todayCh := make(chan sumResult, 1)
	periodCh := make(chan sumResult, 1)
	closeCh := make(chan closeResult, 1)

	go func() {
		list, err := uc.accounts.List(ctx, companyID, repository.AccountFilter{})
		accCh <- accountsResult{list, err}
	}()
	go func() {
		total, err := uc.payments.SumCollected(ctx, companyID, todayStart, todayEnd)
		todayCh <- sumResult{total, err}
	}()
	go func() {
		total, err := uc.payments.SumCollected(ctx, companyID, period.Start(), period.End())
		periodCh <- sumResult{total, err}
	}()
	go func() {
		c, err := uc.closes.Last(ctx, companyID)
		closeCh <- closeResult{c, err}
	}()

	accounts := <-accCh
	today := <-todayCh
	current := <-periodCh
	last := <-closeCh

	if accounts.err != nil {
		return nil, fmt.Errorf("dashboard: cuentas: %w", accounts.err)
	}
	if today.err != nil {
		return nil, fmt.Errorf("dashboard: cobrado hoy: %w", today.err)
	}
	if current.err != nil {
		return nil, fmt.Errorf("dashboard: cobrado en la quincena: %w", current.err)
	}
	if last.err != nil {
		return nil, fmt.Errorf("dashboard: último cierre: %w", last.err)
	}

	view := dombilling.BuildCollections(accounts.list, now)
	return &dto.DashboardSummaryDTO{
		DateLabel:           dateLabel(now),
		CurrentPeriod:       period.Label(),
		DueTodayCount:       len(view.DueToday),
		InGraceCount:        len(view.InGrace),
		ArrearsCount:        len(view.Arrears),
		TotalOutstanding:    view.TotalOutstanding.Round(2),
		CollectedToday:      today.total.Round(2),
		CollectedThisPeriod: current.total.Round(2),
		LastClose:           dto.NewCloseResponse(last.close),
	}, nil
}

// dateLabel devuelve una etiqueta legible de la fecha, ej: "19 de Octubre 2026".
func dateLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%d de %s %d", t.Day(), months[t.Month()-1], t.Year())
}
