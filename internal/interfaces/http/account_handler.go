package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/redcobro-api/internal/application/dto"
)

// AccountHandler cuentas de clientes, su historial y la sugerencia de cobro.
type AccountHandler struct {
	uc AccountService
}

// NewAccountHandler construye el handler.
func NewAccountHandler(uc AccountService) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cuenta
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AccountRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.AccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/accounts [post]
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var in dto.AccountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar cuentas con su plan
// @Tags         accounts
// @Produce      json
// @Param        status  query  string  false  "ACTIVE | SUSPENDED | CUT | CANCELED"
// @Param        dueDay  query  int     false  "Día de corte"
// @Success      200     {array}   dto.AccountResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/accounts [get]
func (h *AccountHandler) List(c *fiber.Ctx) error {
	dueDay, ok := queryDueDay(c)
	if !ok {
		return validation(c, "dueDay debe ser numérico")
	}
	out, err := h.uc.List(c.Context(), GetCompanyID(c), c.Query("status"), dueDay)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cuenta
// @Tags         accounts
// @Produce      json
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.AccountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accounts/{id} [get]
func (h *AccountHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar contacto, plan y día de corte
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la cuenta"
// @Param        body  body  dto.AccountRequest  true  "Datos del cliente"
// @Success      200   {object}  dto.AccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/accounts/{id} [put]
func (h *AccountHandler) Update(c *fiber.Ctx) error {
	var in dto.AccountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Suspender, cortar, reactivar o cancelar una cuenta
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la cuenta"
// @Param        body  body  dto.ChangeStatusRequest  true  "status, reason"
// @Success      200   {object}  dto.AccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/accounts/{id}/status [post]
func (h *AccountHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ChangeStatus(c.Context(), GetCompanyID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de pagos (más reciente primero)
// @Tags         accounts
// @Produce      json
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {array}   dto.PaymentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accounts/{id}/history [get]
func (h *AccountHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PaymentSuggestion godoc
// @Summary      Prellenado del formulario de cobro
// @Tags         accounts
// @Produce      json
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.PaymentSuggestionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accounts/{id}/payment-suggestion [get]
func (h *AccountHandler) PaymentSuggestion(c *fiber.Ctx) error {
	out, err := h.uc.PaymentSuggestion(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// queryDueDay lee ?dueDay=; ausente = 0 (sin filtro).
func queryDueDay(c *fiber.Ctx) (int, bool) {
	raw := strings.TrimSpace(c.Query("dueDay"))
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
