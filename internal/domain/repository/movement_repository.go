package repository

import (
	"time"

	"github.com/tu-usuario/almacen-core/internal/domain/entity"
)

// MovementFilter filtros opcionales para listar movimientos.
// El rango temporal es semiabierto: From inclusivo, To exclusivo.
type MovementFilter struct {
	ItemID string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// MovementRepository define el puerto del libro de movimientos.
// Es append-only por construcción: no expone update ni delete, de modo
// que ninguna capa puede alterar una entrada pasada.
type MovementRepository interface {
	Append(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// List devuelve movimientos ordenados por fecha de creación descendente.
	List(filter MovementFilter) ([]*entity.Movement, error)
}
