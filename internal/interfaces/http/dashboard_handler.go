package http

import (
	"github.com/gofiber/fiber/v2"
)

// DashboardHandler maneja los endpoints del tablero.
type DashboardHandler struct {
	uc DashboardService
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc DashboardService) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen de cobranza del día y de la quincena en curso.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (conteos por lista, saldo total, cobrado hoy,
// cobrado en la quincena, último cierre). Las fechas se calculan en el servidor.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context(), GetCompanyID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
