package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/redcobro-api/internal/application/dto"
	"github.com/jhoicas/redcobro-api/internal/domain"
	dombilling "github.com/jhoicas/redcobro-api/internal/domain/billing"
	"github.com/jhoicas/redcobro-api/internal/domain/entity"
	"github.com/jhoicas/redcobro-api/internal/domain/repository"
	"github.com/jhoicas/redcobro-api/pkg/clock"
	"github.com/jhoicas/redcobro-api/pkg/logger"
)

// AccountUseCase alta, consulta y estado de servicio de las cuentas.
type AccountUseCase struct {
	accounts repository.AccountRepository
	plans    repository.PlanRepository
	payments repository.PaymentRepository
	tx       TxRunner
	clock    clock.Clock
	log      *logger.Logger
}

// NewAccountUseCase construye el caso de uso.
func NewAccountUseCase(
	accounts repository.AccountRepository,
	plans repository.PlanRepository,
	payments repository.PaymentRepository,
	tx TxRunner,
	clk clock.Clock,
	log *logger.Logger,
) *AccountUseCase {
	return &AccountUseCase{
		accounts: accounts,
		plans:    plans,
		payments: payments,
		tx:       tx,
		clock:    clk,
		log:      log.Component("cuentas"),
	}
}

// Create da de alta una cuenta ACTIVE. Un saldo inicial se toma como ya cargado
// este mes, así el cargo mensual no lo duplica.
func (uc *AccountUseCase) Create(ctx context.Context, companyID string, in dto.AccountRequest) (*dto.AccountResponse, error) {
	in.PlanID = normalizeID(in.PlanID)
	plan, err := uc.validate(ctx, companyID, in)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	acc := entity.Account{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        strings.TrimSpace(in.Name),
		Phone:       strings.TrimSpace(in.Phone),
		Address:     strings.TrimSpace(in.Address),
		PlanID:      in.PlanID,
		DueDay:      in.DueDay,
		CurrentDue:  decimal.Zero,
		DeferredDue: decimal.Zero,
		Status:      entity.AccountStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.CurrentDue != nil {
		if in.CurrentDue.IsNegative() {
			return nil, fmt.Errorf("%w: el saldo inicial no puede ser negativo", domain.ErrInvalidInput)
		}
		acc.CurrentDue = *in.CurrentDue
		acc.LastChargedPeriod = dombilling.ServicePeriodOf(now)
	}
	if err := uc.accounts.Create(ctx, &acc); err != nil {
		return nil, err
	}
	out := dto.NewAccountResponse(&entity.AccountWithPlan{Account: acc, Plan: plan})
	return &out, nil
}

// Get devuelve la cuenta con su plan.
func (uc *AccountUseCase) Get(ctx context.Context, companyID, id string) (*dto.AccountResponse, error) {
	acc, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewAccountResponse(acc)
	return &out, nil
}

// List lista cuentas filtrando por estado y día de corte (vacío/0 = todos).
func (uc *AccountUseCase) List(ctx context.Context, companyID, status string, dueDay int) ([]dto.AccountResponse, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if status != "" && !validStatus(status) {
		return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, status)
	}
	if dueDay != 0 && !dombilling.ValidDueDay(dueDay) {
		return nil, domain.ErrInvalidDueDay
	}
	list, err := uc.accounts.List(ctx, companyID, repository.AccountFilter{Status: status, DueDay: dueDay})
	if err != nil {
		return nil, err
	}
	out := make([]dto.AccountResponse, 0, len(list))
	for i := range list {
		out = append(out, dto.NewAccountResponse(&list[i]))
	}
	return out, nil
}

// Update cambia contacto, plan y día de corte con la cuenta bloqueada, igual que
// un pago. Los saldos solo cambian con pagos y cargos. Una cuenta CANCELED no se edita.
func (uc *AccountUseCase) Update(ctx context.Context, companyID, id string, in dto.AccountRequest) (*dto.AccountResponse, error) {
	in.PlanID = normalizeID(in.PlanID)
	if err := validateProfile(in); err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	var (
		acc  entity.Account
		plan *entity.Plan
	)
	err := uc.tx.Run(ctx, func(repos TxRepos) error {
		locked, err := repos.Accounts.GetForUpdate(ctx, companyID, id)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if locked.IsCanceled() {
			return domain.ErrAccountCanceled
		}
		if in.PlanID != nil && locked.PlanID != nil && *in.PlanID == *locked.PlanID {
			// Conservar un plan ya desactivado no es un cambio de plan.
			if plan, err = uc.plans.GetByID(ctx, companyID, *in.PlanID); err != nil {
				return err
			}
		} else if plan, err = uc.validate(ctx, companyID, in); err != nil {
			return err
		}
		acc = *locked
		acc.Name = strings.TrimSpace(in.Name)
		acc.Phone = strings.TrimSpace(in.Phone)
		acc.Address = strings.TrimSpace(in.Address)
		acc.PlanID = in.PlanID
		acc.DueDay = in.DueDay
		acc.UpdatedAt = now
		return repos.Accounts.UpdateProfile(ctx, &acc)
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewAccountResponse(&entity.AccountWithPlan{Account: acc, Plan: plan})
	return &out, nil
}

// ChangeStatus aplica una transición de estado manual con la cuenta bloqueada.
func (uc *AccountUseCase) ChangeStatus(ctx context.Context, companyID, userID, id string, in dto.ChangeStatusRequest) (*dto.AccountResponse, error) {
	to := strings.ToUpper(strings.TrimSpace(in.Status))
	if !validStatus(to) {
		return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, in.Status)
	}
	now := uc.clock.Now()
	var from string
	err := uc.tx.Run(ctx, func(repos TxRepos) error {
		acc, err := repos.Accounts.GetForUpdate(ctx, companyID, id)
		if err != nil {
			return err
		}
		if acc == nil {
			return domain.ErrNotFound
		}
		if err := dombilling.TransitionStatus(acc, to); err != nil {
			return err
		}
		from = acc.Status
		acc.Status = to
		acc.UpdatedAt = now
		if err := repos.Accounts.UpdateStatus(ctx, acc); err != nil {
			return err
		}
		if to == entity.AccountStatusActive {
			if react := dombilling.MarkReactivated(*acc, now); react.LastChargedPeriod != acc.LastChargedPeriod {
				if err := repos.Accounts.UpdateBalances(ctx, &react); err != nil {
					return err
				}
			}
		}
		detail := fmt.Sprintf("%s -> %s", from, to)
		if r := strings.TrimSpace(in.Reason); r != "" {
			detail += ": " + r
		}
		return repos.Activity.Create(ctx, newActivity(companyID, userID, id, entity.ActivityStatusChange, detail, now))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", companyID).Str("account_id", id).
		Str("from", from).Str("to", to).Msg("cambio de estado")
	return uc.Get(ctx, companyID, id)
}

// History pagos de la cuenta, más reciente primero.
func (uc *AccountUseCase) History(ctx context.Context, companyID, id string) ([]dto.PaymentResponse, error) {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return nil, err
	}
	list, err := uc.payments.ListByAccount(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.NewPaymentResponse(p))
	}
	return out, nil
}

// PaymentSuggestion prellenado del formulario de pago: adeudo, atraso y tipo/monto sugeridos.
func (uc *AccountUseCase) PaymentSuggestion(ctx context.Context, companyID, id string) (*dto.PaymentSuggestionResponse, error) {
	acc, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	today := uc.clock.Now()
	price := decimal.Zero
	if acc.Plan != nil {
		price = acc.Plan.MonthlyPrice
	}
	a := dombilling.Assess(&acc.Account, price, today)
	return &dto.PaymentSuggestionResponse{
		AccountID:             acc.ID,
		TotalDebt:             a.TotalDebt,
		DaysLate:              a.DaysLate,
		IsLate:                a.IsLate,
		JustificationRequired: a.IsLate,
		SuggestedKind:         a.SuggestedKind,
		SuggestedAmount:       a.SuggestedAmount,
		ServicePeriod:         dombilling.ServicePeriodOf(today),
	}, nil
}

func (uc *AccountUseCase) get(ctx context.Context, companyID, id string) (*entity.AccountWithPlan, error) {
	acc, err := uc.accounts.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, domain.ErrNotFound
	}
	return acc, nil
}

// validate revisa el perfil y que el plan exista y esté activo.
func (uc *AccountUseCase) validate(ctx context.Context, companyID string, in dto.AccountRequest) (*entity.Plan, error) {
	if err := validateProfile(in); err != nil {
		return nil, err
	}
	if in.PlanID == nil {
		return nil, nil
	}
	plan, err := uc.plans.GetByID(ctx, companyID, *in.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, fmt.Errorf("plan %s: %w", *in.PlanID, domain.ErrNotFound)
	}
	if !plan.Active {
		return nil, domain.ErrPlanInactive
	}
	return plan, nil
}

func validateProfile(in dto.AccountRequest) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: el nombre del cliente es obligatorio", domain.ErrInvalidInput)
	}
	if !dombilling.ValidDueDay(in.DueDay) {
		return domain.ErrInvalidDueDay
	}
	return nil
}

func validStatus(s string) bool {
	switch s {
	case entity.AccountStatusActive, entity.AccountStatusSuspended,
		entity.AccountStatusCut, entity.AccountStatusCanceled:
		return true
	}
	return false
}

func normalizeID(id *string) *string {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil
	}
	v := strings.TrimSpace(*id)
	return &v
}
