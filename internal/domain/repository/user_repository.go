package repository

import (
	"time"

	"github.com/tu-usuario/almacen-core/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	// UpdateRole cambia el único rol del usuario (evento auditable en logs).
	UpdateRole(id, role string, updatedAt time.Time) error
	List(limit, offset int) ([]*entity.User, error)
}
