package repository

import (
	"time"

	"github.com/tu-usuario/almacen-core/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	ListActive(limit, offset int) ([]*entity.Supplier, error)
	Deactivate(id string, updatedAt time.Time) error
}
