package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/application/ledger"
)

// MovementHandler solicitudes de movimiento y su resolución (protegido).
type MovementHandler struct {
	uc *ledger.LedgerUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *ledger.LedgerUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Request godoc
// @Summary      Solicitar un movimiento sobre un activo
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "asset_id, movement_type, ..."
// @Success      201   {object}  dto.MovementResponse
// @Failure      422   {object}  dto.ErrorResponse  "el tipo no es aplicable al estado actual"
// @Router       /api/movements [post]
func (h *MovementHandler) Request(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RequestMovement(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Resolve godoc
// @Summary      Aprobar o rechazar una solicitud pendiente
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la solicitud"
// @Param        body  body  dto.MovementResolveRequest  true  "approve, notes"
// @Success      200   {object}  dto.MovementResponse
// @Failure      422   {object}  dto.ErrorResponse  "la solicitud ya fue resuelta"
// @Router       /api/movements/{id}/resolve [post]
func (h *MovementHandler) Resolve(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.MovementResolveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ResolveMovement(c.UserContext(), GetPrincipal(c), id, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
