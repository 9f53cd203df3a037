package inventory

import (
	"context"

	"github.com/tu-usuario/almacen-core/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la unidad lógica del motor: la lectura
// del saldo, su actualización y el alta del movimiento se confirman o se
// revierten juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error) error
}
