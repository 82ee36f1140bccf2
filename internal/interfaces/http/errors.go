package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dawfilms-api/internal/application/dto"
	"github.com/jhoicas/dawfilms-api/internal/domain"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// El orden importa: una venta no válida envuelve también el motivo (cliente, producto...).
var errorMappings = []errorMapping{
	{domain.ErrVentaNoValida, fiber.StatusUnprocessableEntity, "VENTA_NO_VALIDA"},
	{domain.ErrValidation, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrStorage, fiber.StatusBadRequest, "STORAGE"},
	{domain.ErrVentaNoEncontrada, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrClienteNoEncontrado, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrProductoNoEncontrado, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrNotUpdated, fiber.StatusNotFound, "NOT_UPDATED"},
	{domain.ErrNotDeleted, fiber.StatusNotFound, "NOT_DELETED"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

// statusFor traduce un error de dominio a status HTTP y código.
func statusFor(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

func writeError(c *fiber.Ctx, err error) error {
	status, code := statusFor(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
