package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/redcobro-api/internal/application/dto"
	"github.com/jhoicas/redcobro-api/internal/domain"
	dombilling "github.com/jhoicas/redcobro-api/internal/domain/billing"
	"github.com/jhoicas/redcobro-api/internal/domain/entity"
	"github.com/jhoicas/redcobro-api/internal/domain/repository"
	"github.com/jhoicas/redcobro-api/pkg/clock"
	"github.com/jhoicas/redcobro-api/pkg/logger"
)

// maxRequestIDLen largo máximo aceptado para Idempotency-Key / requestId.
const maxRequestIDLen = 128

// PaymentUseCase registro de pagos: clasificación, libro de saldos y bitácora en una sola transacción.
type PaymentUseCase struct {
	accounts repository.AccountRepository
	payments repository.PaymentRepository
	tx       TxRunner
	idem     IdempotencyStore
	idemTTL  time.Duration
	clock    clock.Clock
	log      *logger.Logger
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(
	accounts repository.AccountRepository,
	payments repository.PaymentRepository,
	tx TxRunner,
	idem IdempotencyStore,
	idemTTL time.Duration,
	clk clock.Clock,
	log *logger.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		accounts: accounts,
		payments: payments,
		tx:       tx,
		idem:     idem,
		idemTTL:  idemTTL,
		clock:    clk,
		log:      log.Component("pagos"),
	}
}

// Register registra un pago sobre una cuenta.
//
// requestID (header Idempotency-Key o campo requestId) hace la operación
// idempotente: si ya existe un pago con esa llave se devuelve el original con
// Replayed=true y no se vuelve a aplicar.
//
// Pasos dentro de la transacción:
//  1. Candado de inserción de pagos y bloqueo de la cuenta (SELECT ... FOR UPDATE);
//     la hora del pago se toma después.
//  2. Clasificar el intento (tipo, atraso, justificación, penalización).
//  3. Aplicar al libro de saldos y persistir cuenta + evento + bitácora.
func (uc *PaymentUseCase) Register(ctx context.Context, companyID, userID, requestID string, in dto.CreatePaymentRequest) (*dto.PaymentResultResponse, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		requestID = strings.TrimSpace(in.RequestID)
	}
	if len(requestID) > maxRequestIDLen {
		return nil, fmt.Errorf("%w: la llave de idempotencia excede %d caracteres", domain.ErrInvalidInput, maxRequestIDLen)
	}
	accountID := strings.TrimSpace(in.AccountID)
	if accountID == "" {
		return nil, fmt.Errorf("%w: accountId es obligatorio", domain.ErrInvalidInput)
	}

	if requestID != "" {
		if prior, err := uc.lookup(ctx, companyID, requestID); err != nil {
			return nil, err
		} else if prior != nil {
			return uc.replay(ctx, companyID, prior)
		}
	}

	attempt := dombilling.PaymentAttempt{
		Amount:            in.Amount,
		Kind:              in.Kind,
		Method:            in.Method,
		Reference:         in.Reference,
		ServicePeriod:     in.Period,
		LateJustification: in.LateJustification,
		Note:              in.Note,
	}

	var (
		payment *entity.Payment
		prior   *entity.Payment
		updated entity.Account
	)
	err := uc.tx.Run(ctx, func(repos TxRepos) error {
		if err := repos.Payments.LockForInsert(ctx); err != nil {
			return err
		}
		acc, err := repos.Accounts.GetForUpdate(ctx, companyID, accountID)
		if err != nil {
			return err
		}
		if acc == nil {
			return fmt.Errorf("cuenta %s: %w", accountID, domain.ErrNotFound)
		}
		// La hora se fija ya con los candados: un cierre que empezó antes no
		// puede dejar fuera un pago fechado dentro de su quincena.
		now := uc.clock.Now()
		// Otra petición con la misma llave pudo terminar mientras esperábamos el lock.
		if requestID != "" {
			if prior, err = repos.Payments.GetByRequestID(ctx, companyID, requestID); err != nil || prior != nil {
				return err
			}
		}

		c, err := dombilling.Classify(acc, attempt, now)
		if err != nil {
			return err
		}
		payment = &entity.Payment{
			ID:                uuid.New().String(),
			CompanyID:         companyID,
			AccountID:         acc.ID,
			UserID:            userID,
			RequestID:         requestID,
			Amount:            c.Amount,
			Kind:              c.Kind,
			Method:            c.Method,
			Reference:         c.Reference,
			ServicePeriod:     c.ServicePeriod,
			LateJustification: c.LateJustification,
			Note:              c.Note,
			IsLate:            c.IsLate,
			DaysLate:          c.DaysLate,
			Penalized:         c.Penalized,
			CreatedAt:         now,
		}
		updated, err = dombilling.Apply(*acc, payment)
		if err != nil {
			return err
		}
		payment.AppliedAmount = dombilling.AppliedAmount(acc, &updated)
		updated.UpdatedAt = now

		if err := repos.Accounts.UpdateBalances(ctx, &updated); err != nil {
			return err
		}
		if err := repos.Payments.Create(ctx, payment); err != nil {
			return err
		}
		detail := fmt.Sprintf("%s %s %s (atraso %d días)", payment.Kind, payment.Method, payment.Amount.StringFixed(2), payment.DaysLate)
		return repos.Activity.Create(ctx, newActivity(companyID, userID, acc.ID, entity.ActivityPayment, detail, now))
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("company_id", companyID).Str("account_id", accountID).
			Str("code", domain.ErrorCode(err)).Msg("pago rechazado")
		return nil, err
	}
	if prior != nil {
		return uc.replay(ctx, companyID, accountID, in, prior)
	}

	if requestID != "" {
		if err := uc.idem.Put(ctx, idemKey(companyID, requestID), payment.ID, uc.idemTTL); err != nil {
			uc.log.Warn().Err(err).Str("request_id", requestID).Msg("no se pudo recordar la llave de idempotencia")
		}
	}
	uc.log.Info().Str("company_id", companyID).Str("account_id", accountID).Str("payment_id", payment.ID).
		Str("kind", payment.Kind).Str("amount", payment.Amount.String()).
		Bool("late", payment.IsLate).Bool("penalized", payment.Penalized).Msg("pago registrado")

	withPlan, err := uc.accounts.GetByID(ctx, companyID, accountID)
	if err != nil || withPlan == nil {
		withPlan = &entity.AccountWithPlan{Account: updated}
	}
	return &dto.PaymentResultResponse{
		Payment: dto.NewPaymentResponse(payment),
		Account: dto.NewAccountResponse(withPlan),
	}, nil
}

// Get devuelve un pago.
func (uc *PaymentUseCase) Get(ctx context.Context, companyID, id string) (*dto.PaymentResponse, error) {
	p, err := uc.payments.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewPaymentResponse(p)
	return &out, nil
}

// lookup busca primero en el almacén rápido y después en la base.
func (uc *PaymentUseCase) lookup(ctx context.Context, companyID, requestID string) (*entity.Payment, error) {
	if id, ok, err := uc.idem.Get(ctx, idemKey(companyID, requestID)); err == nil && ok {
		p, err := uc.payments.GetByID(ctx, companyID, id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			return p, nil
		}
	} else if err != nil {
		uc.log.Warn().Err(err).Msg("almacén de idempotencia no disponible, se consulta la base")
	}
	return uc.payments.GetByRequestID(ctx, companyID, requestID)
}

// replay devuelve el pago original de la llave. Si la petición describe otro pago
// (otra cuenta, monto o tipo) la llave se está reutilizando: ErrDuplicate.
func (uc *PaymentUseCase) replay(ctx context.Context, companyID, accountID string, in dto.CreatePaymentRequest, p *entity.Payment) (*dto.PaymentResultResponse, error) {
	if !sameRequest(p, accountID, in) {
		return nil, fmt.Errorf("%w: la llave de idempotencia %q ya se usó para otro pago", domain.ErrDuplicate, p.RequestID)
	}
	acc, err := uc.accounts.GetByID(ctx, companyID, p.AccountID)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, domain.ErrNotFound
	}
	uc.log.Debug().Str("payment_id", p.ID).Str("request_id", p.RequestID).Msg("pago repetido, se devuelve el original")
	return &dto.PaymentResultResponse{
		Payment:  dto.NewPaymentResponse(p),
		Account:  dto.NewAccountResponse(acc),
		Replayed: true,
	}, nil
}

// sameRequest compara lo que el cliente mandó; monto y tipo vacíos los completa el clasificador.
func sameRequest(p *entity.Payment, accountID string, in dto.CreatePaymentRequest) bool {
	if p.AccountID != accountID {
		return false
	}
	if !in.Amount.IsZero() && !in.Amount.Equal(p.Amount) {
		return false
	}
	kind := strings.TrimSpace(in.Kind)
	return kind == "" || strings.EqualFold(kind, p.Kind)
}

func idemKey(companyID, requestID string) string {
	return companyID + ":" + requestID
}
