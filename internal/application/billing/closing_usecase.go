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

// maxCatchUpPeriods quincenas que una sola vuelta pone al día; la siguiente continúa.
const maxCatchUpPeriods = 24

// ClosingUseCase cierres quincenales: una sola vez por periodo y solo cuando el periodo terminó.
type ClosingUseCase struct {
	accounts repository.AccountRepository
	payments repository.PaymentRepository
	closes   repository.CloseRepository
	tx       TxRunner
	clock    clock.Clock
	log      *logger.Logger
}

// NewClosingUseCase construye el caso de uso.
func NewClosingUseCase(
	accounts repository.AccountRepository,
	payments repository.PaymentRepository,
	closes repository.CloseRepository,
	tx TxRunner,
	clk clock.Clock,
	log *logger.Logger,
) *ClosingUseCase {
	return &ClosingUseCase{
		accounts: accounts,
		payments: payments,
		closes:   closes,
		tx:       tx,
		clock:    clk,
		log:      log.Component("cierres"),
	}
}

// Close cierra la quincena indicada (o la última terminada si Period viene vacío).
// Sin Target la meta es la mensualidad de las cuentas activas con corte en el periodo.
func (uc *ClosingUseCase) Close(ctx context.Context, companyID, userID string, in dto.CreateCloseRequest) (*dto.CloseResponse, error) {
	now := uc.clock.Now()
	period := dombilling.PeriodOf(now).Previous()
	if label := strings.TrimSpace(in.Period); label != "" {
		p, err := dombilling.ParsePeriod(label, now.Location())
		if err != nil {
			return nil, err
		}
		period = p
	}
	if !period.Elapsed(now) {
		return nil, fmt.Errorf("%s: %w", period.Label(), domain.ErrPeriodNotElapsed)
	}

	var target decimal.Decimal
	if in.Target != nil {
		if in.Target.IsNegative() {
			return nil, fmt.Errorf("%w: la meta no puede ser negativa", domain.ErrInvalidInput)
		}
		target = *in.Target
	} else {
		active, err := uc.accounts.List(ctx, companyID, repository.AccountFilter{Status: entity.AccountStatusActive})
		if err != nil {
			return nil, err
		}
		target = dombilling.PeriodTarget(period, active)
	}

	var closed entity.BiweeklyClose
	err := uc.tx.RunSnapshot(ctx, func(repos TxRepos) error {
		// Antes de cualquier lectura: los pagos en vuelo terminan y entran en la foto.
		if err := repos.Payments.LockForClose(ctx); err != nil {
			return err
		}
		existing, err := repos.Closes.GetByPeriod(ctx, companyID, period.Label())
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%s: %w", period.Label(), domain.ErrPeriodAlreadyClosed)
		}
		payments, err := repos.Payments.ListInRange(ctx, companyID, period.Start(), period.End())
		if err != nil {
			return err
		}
		closed = dombilling.ClosePeriod(companyID, period, payments, target, now)
		if err := repos.Closes.Create(ctx, &closed); err != nil {
			return err
		}
		ids := make([]string, 0, len(payments))
		for _, p := range payments {
			ids = append(ids, p.ID)
		}
		if err := repos.Payments.MarkClosed(ctx, closed.ID, ids); err != nil {
			return err
		}
		detail := fmt.Sprintf("%s %s faltante %s", closed.PeriodLabel, closed.Estado, closed.Faltante.StringFixed(2))
		return repos.Activity.Create(ctx, newActivity(companyID, userID, "", entity.ActivityClose, detail, now))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", companyID).Str("period", closed.PeriodLabel).
		Str("meta", closed.MetaEstimada.String()).Str("faltante", closed.Faltante.String()).
		Str("estado", closed.Estado).Int("pagos", closed.PagosIncluidos).Msg("quincena cerrada")
	return dto.NewCloseResponse(&closed), nil
}

// CloseElapsed cierra, de la más antigua a la más reciente, las quincenas terminadas
// que no tienen cierre: desde la siguiente al último cierre o, si la empresa nunca
// cerró, desde la del pago sin cerrar más antiguo. Sin historial cierra solo la
// última quincena terminada. Una quincena que otra ejecución ya cerró se omite.
func (uc *ClosingUseCase) CloseElapsed(ctx context.Context, companyID string) ([]dto.CloseResponse, error) {
	now := uc.clock.Now()
	latest := dombilling.PeriodOf(now).Previous()
	from, err := uc.firstUnclosed(ctx, companyID, latest)
	if err != nil {
		return nil, err
	}
	var out []dto.CloseResponse
	for p, n := from, 0; !latest.Before(p); p, n = p.Next(), n+1 {
		if n == maxCatchUpPeriods {
			uc.log.Warn().Str("company_id", companyID).Str("next", p.Label()).Msg("cierres pendientes para la siguiente vuelta")
			break
		}
		res, err := uc.Close(ctx, companyID, "", dto.CreateCloseRequest{Period: p.Label()})
		if errors.Is(err, domain.ErrPeriodAlreadyClosed) {
			continue
		}
		if err != nil {
			return out, err
		}
		out = append(out, *res)
	}
	return out, nil
}

func (uc *ClosingUseCase) firstUnclosed(ctx context.Context, companyID string, latest dombilling.Period) (dombilling.Period, error) {
	loc := uc.clock.Now().Location()
	last, err := uc.closes.Last(ctx, companyID)
	if err != nil {
		return latest, err
	}
	if last != nil {
		return dombilling.PeriodOf(last.PeriodStart.In(loc)).Next(), nil
	}
	oldest, err := uc.payments.OldestUnclosed(ctx, companyID)
	if err != nil {
		return latest, err
	}
	if oldest != nil {
		if p := dombilling.PeriodOf(oldest.In(loc)); p.Before(latest) {
			return p, nil
		}
	}
	return latest, nil
}

// List historial de cierres, más antiguo primero.
func (uc *ClosingUseCase) List(ctx context.Context, companyID string) ([]dto.CloseResponse, error) {
	list, err := uc.closes.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CloseResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *dto.NewCloseResponse(c))
	}
	return out, nil
}

// Get devuelve un cierre.
func (uc *ClosingUseCase) Get(ctx context.Context, companyID, id string) (*dto.CloseResponse, error) {
	c, err := uc.closes.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewCloseResponse(c), nil
}
