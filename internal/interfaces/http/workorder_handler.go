package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/application/ledger"
)

// WorkOrderHandler órdenes de trabajo de mantenimiento (protegido).
type WorkOrderHandler struct {
	uc *ledger.LedgerUseCase
}

// NewWorkOrderHandler construye el handler.
func NewWorkOrderHandler(uc *ledger.LedgerUseCase) *WorkOrderHandler {
	return &WorkOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Abrir orden de trabajo sobre un activo
// @Tags         workorders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WorkOrderCreateRequest  true  "asset_id, title, ..."
// @Success      201   {object}  dto.WorkOrderResponse
// @Router       /api/workorders [post]
func (h *WorkOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.WorkOrderCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateWorkOrder(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStatus godoc
// @Summary      Transicionar el estado de una orden de trabajo
// @Tags         workorders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.WorkOrderStatusRequest  true  "status, version, costos al completar"
// @Success      200   {object}  dto.WorkOrderResponse
// @Failure      409   {object}  dto.ErrorResponse  "la orden cambió desde la lectura"
// @Failure      422   {object}  dto.ErrorResponse  "transición ilegal"
// @Router       /api/workorders/{id}/status [post]
func (h *WorkOrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.WorkOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateWorkOrderStatus(c.UserContext(), GetPrincipal(c), id, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
