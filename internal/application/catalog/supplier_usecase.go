package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-core/internal/application/dto"
	"github.com/tu-usuario/almacen-core/internal/domain"
	"github.com/tu-usuario/almacen-core/internal/domain/authz"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
	"github.com/tu-usuario/almacen-core/internal/domain/repository"
)

// SupplierUseCase gestiona proveedores (dato de referencia del catálogo).
type SupplierUseCase struct {
	supplierRepo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(supplierRepo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{supplierRepo: supplierRepo}
}

// Create da de alta un proveedor activo.
func (uc *SupplierUseCase) Create(actorRole string, in dto.CreateSupplierRequest) (*entity.Supplier, error) {
	if !authz.CanPerform(actorRole, authz.OpManageSuppliers) {
		return nil, domain.ErrUnauthorized
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		Contact:   in.Contact,
		Phone:     in.Phone,
		Email:     in.Email,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// Update edita un proveedor existente.
func (uc *SupplierUseCase) Update(actorRole, id string, in dto.UpdateSupplierRequest) (*entity.Supplier, error) {
	if !authz.CanPerform(actorRole, authz.OpManageSuppliers) {
		return nil, domain.ErrUnauthorized
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	supplier.Name = in.Name
	supplier.TaxID = in.TaxID
	supplier.Contact = in.Contact
	supplier.Phone = in.Phone
	supplier.Email = in.Email
	supplier.UpdatedAt = time.Now()
	if err := uc.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// Deactivate borra lógicamente un proveedor.
func (uc *SupplierUseCase) Deactivate(actorRole, id string) error {
	if !authz.CanPerform(actorRole, authz.OpManageSuppliers) {
		return domain.ErrUnauthorized
	}
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrNotFound
	}
	return uc.supplierRepo.Deactivate(id, time.Now())
}

// ListActive lista proveedores activos paginados.
func (uc *SupplierUseCase) ListActive(limit, offset int) ([]*entity.Supplier, error) {
	return uc.supplierRepo.ListActive(limit, offset)
}
