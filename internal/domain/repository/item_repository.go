package repository

import (
	"time"

	"github.com/tu-usuario/almacen-core/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia del catálogo de artículos.
// GetForUpdate bloquea la fila (SELECT FOR UPDATE) y es el mecanismo de
// exclusión por artículo del motor de movimientos: debe usarse dentro de
// una transacción.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetBySKU(sku string) (*entity.Item, error)
	GetForUpdate(id string) (*entity.Item, error)
	// Update edita solo campos descriptivos; nunca toca Balance.
	Update(item *entity.Item) error
	// UpdateBalance es invocado únicamente por el motor de movimientos.
	UpdateBalance(id string, balance int64, updatedAt time.Time) error
	ListActive(limit, offset int) ([]*entity.Item, error)
	// ListLowStock devuelve artículos activos con Balance <= MinStock.
	ListLowStock() ([]*entity.Item, error)
	// Deactivate es borrado lógico: el artículo sigue resoluble por ID.
	Deactivate(id string, updatedAt time.Time) error
}
