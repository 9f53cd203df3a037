package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-core/internal/domain"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
	"github.com/tu-usuario/almacen-core/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, sku, name, description, category, unit, supplier_id, cost_price, balance, min_stock, max_stock, active, created_at, updated_at`

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con
// pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un artículo nuevo.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, sku, name, description, category, unit, supplier_id, cost_price, balance, min_stock, max_stock, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SKU, item.Name, item.Description, item.Category, item.Unit,
		nullIfEmpty(item.SupplierID), item.CostPrice, item.Balance, item.MinStock,
		item.MaxStock, item.Active, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID (activo o no).
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get item")
}

// GetBySKU obtiene un artículo por su código único.
func (r *ItemRepo) GetBySKU(sku string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE sku = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, sku), "get item by sku")
}

// GetForUpdate obtiene el artículo y bloquea la fila (SELECT FOR UPDATE).
// Llamar solo dentro de una transacción: el lock se libera en commit o
// rollback y serializa los movimientos concurrentes del artículo.
func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get item for update")
}

// Update edita los campos descriptivos. El saldo se actualiza solo por
// UpdateBalance.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items
		SET name = $2, description = $3, category = $4, unit = $5, supplier_id = $6,
		    cost_price = $7, min_stock = $8, max_stock = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Description, item.Category, item.Unit,
		nullIfEmpty(item.SupplierID), item.CostPrice, item.MinStock, item.MaxStock,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// UpdateBalance fija el saldo calculado por el motor de movimientos.
func (r *ItemRepo) UpdateBalance(id string, balance int64, updatedAt time.Time) error {
	query := `UPDATE items SET balance = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, balance, updatedAt)
	if err != nil {
		return fmt.Errorf("update item balance: %w", err)
	}
	return nil
}

// ListActive lista artículos activos paginados.
func (r *ItemRepo) ListActive(limit, offset int) ([]*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items WHERE active
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list active items: %w", err)
	}
	return r.scanMany(rows)
}

// ListLowStock lista artículos activos con saldo en o bajo el mínimo.
func (r *ItemRepo) ListLowStock() ([]*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items WHERE active AND balance <= min_stock
		ORDER BY balance - min_stock, name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	return r.scanMany(rows)
}

// Deactivate borrado lógico: la fila permanece para el historial.
func (r *ItemRepo) Deactivate(id string, updatedAt time.Time) error {
	query := `UPDATE items SET active = false, updated_at = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, updatedAt)
	if err != nil {
		return fmt.Errorf("deactivate item: %w", err)
	}
	return nil
}

func (r *ItemRepo) scanOne(row pgx.Row, op string) (*entity.Item, error) {
	var it entity.Item
	var supplierID *string
	err := row.Scan(
		&it.ID, &it.SKU, &it.Name, &it.Description, &it.Category, &it.Unit,
		&supplierID, &it.CostPrice, &it.Balance, &it.MinStock, &it.MaxStock,
		&it.Active, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if supplierID != nil {
		it.SupplierID = *supplierID
	}
	return &it, nil
}

func (r *ItemRepo) scanMany(rows pgx.Rows) ([]*entity.Item, error) {
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		var supplierID *string
		if err := rows.Scan(
			&it.ID, &it.SKU, &it.Name, &it.Description, &it.Category, &it.Unit,
			&supplierID, &it.CostPrice, &it.Balance, &it.MinStock, &it.MaxStock,
			&it.Active, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		if supplierID != nil {
			it.SupplierID = *supplierID
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// nullIfEmpty convierte "" en NULL para columnas uuid opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
