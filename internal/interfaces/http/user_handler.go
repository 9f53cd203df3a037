package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-core/internal/application/auth"
	"github.com/tu-usuario/almacen-core/internal/application/dto"
)

// UserHandler maneja la gestión de usuarios y roles (solo admin).
type UserHandler struct {
	uc *auth.AuthUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *auth.AuthUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Create godoc
// @Summary      Crear usuario con rol explícito
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, name, role"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	user, err := h.uc.RegisterUser(GetRole(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	users, err := h.uc.ListUsers(GetRole(c), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(users)
}

// ChangeRole godoc
// @Summary      Cambiar el rol de un usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "User ID"
// @Param        body  body  dto.ChangeRoleRequest  true  "role"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/role [put]
func (h *UserHandler) ChangeRole(c *fiber.Ctx) error {
	var in dto.ChangeRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	user, err := h.uc.ChangeRole(GetRole(c), c.Params("id"), in.Role)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(user)
}
