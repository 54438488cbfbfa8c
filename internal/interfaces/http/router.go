package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/redcobro-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        AuthService
	UserUC        UserService
	CompanyUC     CompanyService
	PlanUC        PlanService
	AccountUC     AccountService
	PaymentUC     PaymentService
	CollectionsUC CollectionsService
	DashboardUC   DashboardService
	ClosingUC     CloseService
	ChargeUC      ChargeService
	DocumentUC    DocumentService
	JWTSecret     string
}

// Router registra las rutas de la API.
//
// Roles:
//   - admin: todo.
//   - cobrador: cuentas y pagos.
//   - tecnico: cambios de estado (corte y reconexión).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (alta pública del ISP; consulta protegida)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	api.Post("/companies", companyHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)
	collectors := RequireRole(entity.RoleAdmin, entity.RoleCobrador)
	field := RequireRole(entity.RoleAdmin, entity.RoleTecnico)

	protected.Get("/companies/:id", companyHandler.GetByID)

	// Operadores (solo admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.AuthUC, deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Post("/:id/status", userHandler.SetStatus)

	// Plans
	plans := protected.Group("/plans")
	planHandler := NewPlanHandler(deps.PlanUC)
	plans.Get("/", planHandler.List)
	plans.Post("/", adminOnly, planHandler.Create)
	plans.Put("/:id", adminOnly, planHandler.Update)
	plans.Post("/:id/deactivate", adminOnly, planHandler.Deactivate)

	// Accounts
	accounts := protected.Group("/accounts")
	accountHandler := NewAccountHandler(deps.AccountUC)
	accounts.Get("/", accountHandler.List)
	accounts.Post("/", collectors, accountHandler.Create)
	accounts.Get("/:id", accountHandler.GetByID)
	accounts.Put("/:id", collectors, accountHandler.Update)
	accounts.Post("/:id/status", field, accountHandler.ChangeStatus)
	accounts.Get("/:id/history", accountHandler.History)
	accounts.Get("/:id/payment-suggestion", accountHandler.PaymentSuggestion)

	// Payments
	payments := protected.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.PaymentUC, deps.DocumentUC)
	payments.Post("/", collectors, paymentHandler.Create)
	payments.Get("/:id", paymentHandler.GetByID)
	payments.Get("/:id/receipt", paymentHandler.Receipt)

	// Collections & dashboard
	protected.Get("/collections", NewCollectionsHandler(deps.CollectionsUC).View)
	protected.Get("/dashboard/summary", NewDashboardHandler(deps.DashboardUC).GetSummary)

	// Closes & monthly charges
	closes := protected.Group("/closes")
	closeHandler := NewCloseHandler(deps.ClosingUC, deps.ChargeUC, deps.DocumentUC)
	closes.Get("/", closeHandler.List)
	closes.Post("/", adminOnly, closeHandler.Create)
	closes.Get("/:id", closeHandler.GetByID)
	closes.Get("/:id/report", closeHandler.Report)
	protected.Post("/billing/charges", adminOnly, closeHandler.RunCharges)
}
