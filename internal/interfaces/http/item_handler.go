package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-core/internal/application/catalog"
	"github.com/tu-usuario/almacen-core/internal/application/dto"
	"github.com/tu-usuario/almacen-core/internal/application/inventory"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
)

// ItemHandler maneja las peticiones HTTP del catálogo de artículos.
type ItemHandler struct {
	uc      *catalog.ItemUseCase
	queries *inventory.Queries
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *catalog.ItemUseCase, queries *inventory.Queries) *ItemHandler {
	return &ItemHandler{uc: uc, queries: queries}
}

// Create godoc
// @Summary      Crear artículo (nace con saldo 0)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "sku, name, unit, min_stock..."
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.Create(GetRole(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toItemResponse(item))
}

// List godoc
// @Summary      Listar artículos activos
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	items, err := h.uc.ListActive(page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toItemResponses(items))
}

// LowStock godoc
// @Summary      Artículos con saldo en o bajo su umbral mínimo
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/items/low-stock [get]
func (h *ItemHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.queries.ListLowStock(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toItemResponses(items))
}

// GetByID godoc
// @Summary      Obtener un artículo por ID (incluye inactivos)
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Item ID"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.queries.GetItem(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toItemResponse(item))
}

// Update godoc
// @Summary      Editar campos descriptivos de un artículo
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "Item ID"
// @Param        body  body  dto.UpdateItemRequest  true  "campos descriptivos"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.Update(GetRole(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toItemResponse(item))
}

// Deactivate godoc
// @Summary      Desactivar artículo (borrado lógico)
// @Tags         items
// @Security     Bearer
// @Param        id  path  string  true  "Item ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(GetRole(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toItemResponse(item *entity.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:          item.ID,
		SKU:         item.SKU,
		Name:        item.Name,
		Description: item.Description,
		Category:    item.Category,
		Unit:        item.Unit,
		SupplierID:  item.SupplierID,
		CostPrice:   item.CostPrice,
		Balance:     item.Balance,
		MinStock:    item.MinStock,
		MaxStock:    item.MaxStock,
		LowStock:    item.LowStock(),
		Active:      item.Active,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func toItemResponses(items []*entity.Item) []dto.ItemResponse {
	out := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item))
	}
	return out
}
