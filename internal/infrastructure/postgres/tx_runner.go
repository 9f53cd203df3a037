package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/almacen-core/internal/application/inventory"
	"github.com/tu-usuario/almacen-core/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// El bloqueo de fila que toma ItemRepo.GetForUpdate dentro de la tx es lo
// que serializa los Apply concurrentes sobre un mismo artículo.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Los fallos de serialización salen como
// ErrPersistenceConflict.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewItemRepository(tx), NewMovementRepository(tx)); err != nil {
		return mapConflict(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapConflict(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}
