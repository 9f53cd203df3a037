package entity

import "time"

// Roles válidos para User (cada usuario tiene exactamente uno).
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

// Estados de cuenta.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, operator, viewer
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
