package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/application/ledger"
)

// AssetHandler maneja las peticiones HTTP para el registro de activos
// (protegido).
type AssetHandler struct {
	uc *ledger.LedgerUseCase
}

// NewAssetHandler construye el handler.
func NewAssetHandler(uc *ledger.LedgerUseCase) *AssetHandler {
	return &AssetHandler{uc: uc}
}

// Create godoc
// @Summary      Crear activo
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssetCreateRequest  true  "Datos del activo"
// @Success      201   {object}  dto.AssetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/assets [post]
func (h *AssetHandler) Create(c *fiber.Ctx) error {
	var in dto.AssetCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener activo por ID
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del activo"
// @Success      200  {object}  dto.AssetResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/{id} [get]
func (h *AssetHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar activos
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        status     query  string  false  "Filtro por estado"
// @Param        condition  query  string  false  "Filtro por condición"
// @Param        category   query  string  false  "Filtro por categoría"
// @Param        search     query  string  false  "Busca en nombre y número de activo"
// @Param        limit      query  int     false  "Límite"   default(20)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.AssetListResponse
// @Router       /api/assets [get]
func (h *AssetHandler) List(c *fiber.Ctx) error {
	var in dto.AssetQueryRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.Query(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar activo (parcial, con sello optimista)
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del activo"
// @Param        body  body  dto.AssetUpdateRequest  true  "Campos a actualizar más version"
// @Success      200   {object}  dto.AssetResponse
// @Failure      409   {object}  dto.ErrorResponse  "el activo cambió desde la lectura"
// @Router       /api/assets/{id} [put]
func (h *AssetHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.AssetUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), GetPrincipal(c), id, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Transition godoc
// @Summary      Transicionar el estado de ciclo de vida del activo
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del activo"
// @Param        body  body  dto.AssetTransitionRequest  true  "Estado destino y registro habilitante"
// @Success      200   {object}  dto.AssetResponse
// @Failure      422   {object}  dto.ErrorResponse  "transición ilegal"
// @Router       /api/assets/{id}/transition [post]
func (h *AssetHandler) Transition(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.AssetTransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Transition(c.UserContext(), GetPrincipal(c), id, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar activo (lógico si tiene historia financiera)
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del activo"
// @Success      200  {object}  dto.AssetResponse  "baja lógica: activo en disposed"
// @Success      204  "borrado físico"
// @Router       /api/assets/{id} [delete]
func (h *AssetHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.Delete(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(out)
}

// Depreciation godoc
// @Summary      Depreciación acumulada y valor en libros a una fecha
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del activo"
// @Param        as_of  query  string  false  "Fecha RFC3339; por defecto ahora"
// @Success      200  {object}  dto.DepreciationResponse
// @Router       /api/assets/{id}/depreciation [get]
func (h *AssetHandler) Depreciation(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	asOf := time.Now()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "as_of debe ser RFC3339"})
		}
		asOf = parsed
	}
	out, err := h.uc.ComputeAsOf(c.UserContext(), GetPrincipal(c), id, asOf)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// AuditTrail godoc
// @Summary      Rastro de auditoría del activo con verificación de cadena
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del activo"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/assets/{id}/audit [get]
func (h *AssetHandler) AuditTrail(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	rows, broken, err := h.uc.AuditTrail(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"items":        rows,
		"chain_intact": broken < 0,
		"broken_at":    broken,
	})
}
