package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/redcobro-api/internal/application/dto"
	"github.com/jhoicas/redcobro-api/internal/domain"
)

var statusByCode = map[string]int{
	domain.CodeValidation:          fiber.StatusBadRequest,
	domain.CodeConcurrencyConflict: fiber.StatusConflict,
	domain.CodeNotFound:            fiber.StatusNotFound,
	domain.CodeClosing:             fiber.StatusConflict,
	domain.CodeDuplicate:           fiber.StatusConflict,
	domain.CodeUnauthorized:        fiber.StatusUnauthorized,
	domain.CodeForbidden:           fiber.StatusForbidden,
}

// writeError responde {code, message} con el status de la familia del error.
// Los errores internos se registran y no exponen su detalle al cliente.
func writeError(c *fiber.Ctx, err error) error {
	code := domain.ErrorCode(err)
	status, ok := statusByCode[code]
	if !ok {
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("company_id", GetCompanyID(c)).
			Msg("error interno en handler")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: domain.CodeInternal, Message: "error interno, intente más tarde"})
	}
	if code == domain.CodeConcurrencyConflict {
		log.Warn().Err(err).Str("path", c.Path()).Msg("conflicto de concurrencia")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: domain.CodeValidation, Message: "cuerpo inválido"})
}

func validation(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: domain.CodeValidation, Message: msg})
}

// sendPDF entrega el documento inline para que el navegador lo muestre.
func sendPDF(c *fiber.Ctx, body []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(body)
}
