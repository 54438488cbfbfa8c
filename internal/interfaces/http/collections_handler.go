package http

import (
	"github.com/gofiber/fiber/v2"
)

// CollectionsHandler listas de trabajo del cobrador.
type CollectionsHandler struct {
	uc CollectionsService
}

func NewCollectionsHandler(uc CollectionsService) *CollectionsHandler {
	return &CollectionsHandler{uc: uc}
}

// View godoc
// @Summary      Vencen hoy, en gracia y morosos
// @Tags         collections
// @Produce      json
// @Param        status  query  string  false  "Estado de la cuenta"
// @Param        dueDay  query  int     false  "Día de corte"
// @Success      200     {object}  dto.CollectionsViewDTO
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/collections [get]
func (h *CollectionsHandler) View(c *fiber.Ctx) error {
	dueDay, ok := queryDueDay(c)
	if !ok {
		return validation(c, "dueDay debe ser numérico")
	}
	out, err := h.uc.View(c.Context(), GetCompanyID(c), c.Query("status"), dueDay)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
