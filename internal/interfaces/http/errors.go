package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/authz"
)

// fail mapea un error de dominio a su respuesta HTTP. Las denegaciones de
// autorización llevan su Reason como código; el resto se clasifica por
// categoría, sin inspeccionar strings.
func fail(c *fiber.Ctx, err error) error {
	var denied *authz.DeniedError
	if errors.As(err, &denied) {
		status := fiber.StatusForbidden
		if denied.Reason == authz.ReasonCrossTenantAccess {
			// Un tenant ajeno no debe poder sondear existencia de recursos.
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(dto.ErrorResponse{Code: string(denied.Reason), Message: "operación no permitida"})
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrConcurrentModification):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENT_MODIFICATION", Message: "el registro cambió desde su lectura; recargar y reintentar"})
	case errors.Is(err, domain.ErrAllocationExhausted):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALLOCATION_EXHAUSTED", Message: err.Error()})
	}

	switch domain.CategoryOf(err) {
	case domain.CategoryValidation:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case domain.CategoryState:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "ILLEGAL_STATE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}
