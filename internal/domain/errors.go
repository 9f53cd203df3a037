package domain

import "errors"

// Errores de dominio (sin dependencias externas). Se comparan con errors.Is
// en casos de uso, adaptadores y handlers.
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrItemNotFound        = errors.New("artículo no encontrado")
	ErrItemInactive        = errors.New("artículo inactivo")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInvalidQuantity     = errors.New("cantidad inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrPersistenceConflict = errors.New("conflicto de concurrencia en persistencia")
)
