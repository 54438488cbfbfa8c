package http

import (
	"context"

	"github.com/jhoicas/redcobro-api/internal/application/dto"
)

// Contratos mínimos que consumen los handlers. Los implementan los casos de uso de
// internal/application; los tests de handlers usan stubs.

type AuthService interface {
	RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
	CreateOperator(ctx context.Context, companyID string, in dto.RegisterRequest) (*dto.UserResponse, error)
}

type UserService interface {
	List(ctx context.Context, companyID string) ([]dto.UserResponse, error)
	SetStatus(ctx context.Context, companyID, actorID, id string, in dto.UserStatusRequest) (*dto.UserResponse, error)
}

type CompanyService interface {
	Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error)
}

type PlanService interface {
	Create(ctx context.Context, companyID string, in dto.PlanRequest) (*dto.PlanResponse, error)
	List(ctx context.Context, companyID string, onlyActive bool) ([]dto.PlanResponse, error)
	Update(ctx context.Context, companyID, id string, in dto.PlanRequest) (*dto.PlanResponse, error)
	Deactivate(ctx context.Context, companyID, id string) (*dto.PlanResponse, error)
}

type AccountService interface {
	Create(ctx context.Context, companyID string, in dto.AccountRequest) (*dto.AccountResponse, error)
	Get(ctx context.Context, companyID, id string) (*dto.AccountResponse, error)
	List(ctx context.Context, companyID, status string, dueDay int) ([]dto.AccountResponse, error)
	Update(ctx context.Context, companyID, id string, in dto.AccountRequest) (*dto.AccountResponse, error)
	ChangeStatus(ctx context.Context, companyID, userID, id string, in dto.ChangeStatusRequest) (*dto.AccountResponse, error)
	History(ctx context.Context, companyID, id string) ([]dto.PaymentResponse, error)
	PaymentSuggestion(ctx context.Context, companyID, id string) (*dto.PaymentSuggestionResponse, error)
}

type PaymentService interface {
	Register(ctx context.Context, companyID, userID, requestID string, in dto.CreatePaymentRequest) (*dto.PaymentResultResponse, error)
	Get(ctx context.Context, companyID, id string) (*dto.PaymentResponse, error)
}

type CollectionsService interface {
	View(ctx context.Context, companyID, status string, dueDay int) (*dto.CollectionsViewDTO, error)
}

type DashboardService interface {
	GetSummary(ctx context.Context, companyID string) (*dto.DashboardSummaryDTO, error)
}

type CloseService interface {
	Close(ctx context.Context, companyID, userID string, in dto.CreateCloseRequest) (*dto.CloseResponse, error)
	List(ctx context.Context, companyID string) ([]dto.CloseResponse, error)
	Get(ctx context.Context, companyID, id string) (*dto.CloseResponse, error)
}

type ChargeService interface {
	Run(ctx context.Context, companyID, userID string) (*dto.ChargeRunResponse, error)
}

type DocumentService interface {
	PaymentReceipt(ctx context.Context, companyID, paymentID string) ([]byte, string, error)
	CloseReport(ctx context.Context, companyID, closeID string) ([]byte, string, error)
}
