package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/redcobro-api/internal/application/dto"
)

// CloseHandler cierres quincenales y corrida de cargos mensuales.
type CloseHandler struct {
	uc      CloseService
	charges ChargeService
	docs    DocumentService
}

// NewCloseHandler construye el handler.
func NewCloseHandler(uc CloseService, charges ChargeService, docs DocumentService) *CloseHandler {
	return &CloseHandler{uc: uc, charges: charges, docs: docs}
}

// Create godoc
// @Summary      Cerrar una quincena
// @Description  Sin period se cierra la última quincena terminada; sin target se estima con los planes activos.
// @Tags         closes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCloseRequest  false  "period (AAAA-MM-Q1|Q2), target"
// @Success      201   {object}  dto.CloseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/closes [post]
func (h *CloseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCloseRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.Close(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar cierres (más antiguo primero)
// @Tags         closes
// @Produce      json
// @Success      200  {array}  dto.CloseResponse
// @Router       /api/closes [get]
func (h *CloseHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetCompanyID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cierre
// @Tags         closes
// @Produce      json
// @Param        id   path  string  true  "ID del cierre"
// @Success      200  {object}  dto.CloseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/closes/{id} [get]
func (h *CloseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF del cierre
// @Tags         closes
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del cierre"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/closes/{id}/report [get]
func (h *CloseHandler) Report(c *fiber.Ctx) error {
	body, filename, err := h.docs.CloseReport(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendPDF(c, body, filename)
}

// RunCharges godoc
// @Summary      Aplicar cargos mensuales vencidos
// @Tags         billing
// @Produce      json
// @Success      200  {object}  dto.ChargeRunResponse
// @Router       /api/billing/charges [post]
func (h *CloseHandler) RunCharges(c *fiber.Ctx) error {
	out, err := h.charges.Run(c.Context(), GetCompanyID(c), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
