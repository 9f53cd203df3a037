package dto

import "time"

// RegisterRequest body para POST /api/auth/register y POST /api/users.
// Role solo se respeta cuando quien crea es admin; el registro público
// siempre queda como viewer.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token JWT + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ChangeRoleRequest body para PUT /api/users/:id/role.
type ChangeRoleRequest struct {
	Role string `json:"role"` // admin | operator | viewer
}

// UserResponse representación HTTP de un usuario (sin hash de password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
