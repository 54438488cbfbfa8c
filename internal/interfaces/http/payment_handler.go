package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/redcobro-api/internal/application/dto"
)

// HeaderIdempotencyKey llave de idempotencia de POST /payments.
const HeaderIdempotencyKey = "Idempotency-Key"

// PaymentHandler registro de pagos, consulta y comprobantes.
type PaymentHandler struct {
	uc   PaymentService
	docs DocumentService
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc PaymentService, docs DocumentService) *PaymentHandler {
	return &PaymentHandler{uc: uc, docs: docs}
}

// Create godoc
// @Summary      Registrar pago (liquidación, abono o prórroga)
// @Description  Con Idempotency-Key (o requestId) una repetición devuelve el pago original con replayed=true.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                    false  "Llave de idempotencia"
// @Param        body             body    dto.CreatePaymentRequest  true   "Pago"
// @Success      201   {object}  dto.PaymentResultResponse
// @Success      200   {object}  dto.PaymentResultResponse  "repetición idempotente"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payments [post]
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Register(c.Context(), GetCompanyID(c), GetUserID(c), c.Get(HeaderIdempotencyKey), in)
	if err != nil {
		return writeError(c, err)
	}
	if out.Replayed {
		c.Set("Idempotent-Replayed", "true")
		return c.JSON(out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener pago
// @Tags         payments
// @Produce      json
// @Param        id   path  string  true  "ID del pago"
// @Success      200  {object}  dto.PaymentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [get]
func (h *PaymentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF del pago
// @Tags         payments
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del pago"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id}/receipt [get]
func (h *PaymentHandler) Receipt(c *fiber.Ctx) error {
	body, filename, err := h.docs.PaymentReceipt(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendPDF(c, body, filename)
}
