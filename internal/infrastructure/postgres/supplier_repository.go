package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
	"github.com/tu-usuario/almacen-core/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierColumns = `id, name, tax_id, contact, phone, email, active, created_at, updated_at`

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de persistencia para proveedores.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un proveedor nuevo.
func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, name, tax_id, contact, phone, email, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		supplier.ID, supplier.Name, supplier.TaxID, supplier.Contact,
		supplier.Phone, supplier.Email, supplier.Active,
		supplier.CreatedAt, supplier.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID (activo o no).
func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1`
	var s entity.Supplier
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Name, &s.TaxID, &s.Contact, &s.Phone, &s.Email, &s.Active,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// Update persiste los campos editables de un proveedor.
func (r *SupplierRepo) Update(supplier *entity.Supplier) error {
	query := `
		UPDATE suppliers SET name = $2, tax_id = $3, contact = $4, phone = $5, email = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		supplier.ID, supplier.Name, supplier.TaxID, supplier.Contact,
		supplier.Phone, supplier.Email, supplier.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

// ListActive lista proveedores activos ordenados por nombre.
func (r *SupplierRepo) ListActive(limit, offset int) ([]*entity.Supplier, error) {
	query := `
		SELECT ` + supplierColumns + ` FROM suppliers WHERE active
		ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(
			&s.ID, &s.Name, &s.TaxID, &s.Contact, &s.Phone, &s.Email, &s.Active,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Deactivate borrado lógico del proveedor.
func (r *SupplierRepo) Deactivate(id string, updatedAt time.Time) error {
	query := `UPDATE suppliers SET active = false, updated_at = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, updatedAt)
	if err != nil {
		return fmt.Errorf("deactivate supplier: %w", err)
	}
	return nil
}
