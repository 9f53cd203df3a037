package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
	"github.com/tu-usuario/almacen-core/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, item_id, kind, quantity, balance_before, balance_after, actor_id, note, created_at`

// MovementRepo implementación de MovementRepository sobre PostgreSQL
// (usable con pool o tx). Solo inserta y lee: el libro es append-only.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append persiste un movimiento. Cada alta es un INSERT único y atómico.
func (r *MovementRepo) Append(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, item_id, kind, quantity, balance_before, balance_after, actor_id, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ItemID, movement.Kind, movement.Quantity,
		movement.BalanceBefore, movement.BalanceAfter, movement.ActorID,
		movement.Note, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	var m entity.Movement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.ItemID, &m.Kind, &m.Quantity, &m.BalanceBefore,
		&m.BalanceAfter, &m.ActorID, &m.Note, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// List lista movimientos con filtros opcionales por artículo y rango
// temporal semiabierto [From, To), ordenados por fecha descendente.
func (r *MovementRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ItemID != "" {
		query += fmt.Sprintf(" AND item_id = $%d", pos)
		args = append(args, filter.ItemID)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND created_at < $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(
			&m.ID, &m.ItemID, &m.Kind, &m.Quantity, &m.BalanceBefore,
			&m.BalanceAfter, &m.ActorID, &m.Note, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
