package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-core/internal/application/catalog"
	"github.com/tu-usuario/almacen-core/internal/application/dto"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
)

// SupplierHandler maneja las peticiones HTTP de proveedores (protegido).
type SupplierHandler struct {
	uc *catalog.SupplierUseCase
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *catalog.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "name, tax_id, contact..."
// @Success      201   {object}  dto.SupplierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	supplier, err := h.uc.Create(GetRole(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSupplierResponse(supplier))
}

// List godoc
// @Summary      Listar proveedores activos
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SupplierResponse
// @Router       /api/suppliers [get]
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	suppliers, err := h.uc.ListActive(page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, toSupplierResponse(s))
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "Supplier ID"
// @Param        body  body  dto.UpdateSupplierRequest  true  "campos editables"
// @Success      200   {object}  dto.SupplierResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [put]
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	supplier, err := h.uc.Update(GetRole(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toSupplierResponse(supplier))
}

// Deactivate godoc
// @Summary      Desactivar proveedor (borrado lógico)
// @Tags         suppliers
// @Security     Bearer
// @Param        id  path  string  true  "Supplier ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [delete]
func (h *SupplierHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(GetRole(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toSupplierResponse(s *entity.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		TaxID:     s.TaxID,
		Contact:   s.Contact,
		Phone:     s.Phone,
		Email:     s.Email,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
