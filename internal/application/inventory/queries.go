package inventory

import (
	"context"

	"github.com/tu-usuario/almacen-core/internal/domain"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
	"github.com/tu-usuario/almacen-core/internal/domain/repository"
)

// Queries consultas de solo lectura sobre catálogo y libro de movimientos.
// No mutan estado y leen fuera de la transacción del motor.
type Queries struct {
	itemRepo repository.ItemRepository
	movRepo  repository.MovementRepository
}

// NewQueries construye las consultas.
func NewQueries(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) *Queries {
	return &Queries{itemRepo: itemRepo, movRepo: movRepo}
}

// GetItem resuelve un artículo por ID (también los inactivos, para que los
// movimientos históricos sigan teniendo referencia válida).
func (q *Queries) GetItem(ctx context.Context, id string) (*entity.Item, error) {
	item, err := q.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return item, nil
}

// ListLowStock devuelve los artículos activos con saldo en o por debajo
// de su umbral mínimo.
func (q *Queries) ListLowStock(ctx context.Context) ([]*entity.Item, error) {
	return q.itemRepo.ListLowStock()
}

// ListMovements lista movimientos con filtros opcionales por artículo y
// rango temporal semiabierto [From, To), ordenados por fecha descendente.
func (q *Queries) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return q.movRepo.List(filter)
}
