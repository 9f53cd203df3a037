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

// ItemUseCase gestiona el catálogo de artículos: campos descriptivos y
// bandera de activo. El saldo no se toca por aquí; eso es del motor de
// movimientos.
type ItemUseCase struct {
	itemRepo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(itemRepo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo}
}

// Create da de alta un artículo con saldo 0 y activo.
func (uc *ItemUseCase) Create(actorRole string, in dto.CreateItemRequest) (*entity.Item, error) {
	if !authz.CanPerform(actorRole, authz.OpManageItems) {
		return nil, domain.ErrUnauthorized
	}
	if in.SKU == "" || in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.MinStock < 0 || (in.MaxStock != nil && *in.MaxStock < in.MinStock) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.itemRepo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	item := &entity.Item{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Unit:        in.Unit,
		SupplierID:  in.SupplierID,
		CostPrice:   in.CostPrice,
		Balance:     0,
		MinStock:    in.MinStock,
		MaxStock:    in.MaxStock,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update edita los campos descriptivos de un artículo existente.
func (uc *ItemUseCase) Update(actorRole, id string, in dto.UpdateItemRequest) (*entity.Item, error) {
	if !authz.CanPerform(actorRole, authz.OpManageItems) {
		return nil, domain.ErrUnauthorized
	}
	if in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.MinStock < 0 || (in.MaxStock != nil && *in.MaxStock < in.MinStock) {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	item.Name = in.Name
	item.Description = in.Description
	item.Category = in.Category
	item.Unit = in.Unit
	item.SupplierID = in.SupplierID
	item.CostPrice = in.CostPrice
	item.MinStock = in.MinStock
	item.MaxStock = in.MaxStock
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Deactivate borra lógicamente un artículo: deja de aparecer en listados
// activos y el motor lo rechaza, pero sigue resoluble por ID para que el
// historial de movimientos no quede huérfano.
func (uc *ItemUseCase) Deactivate(actorRole, id string) error {
	if !authz.CanPerform(actorRole, authz.OpManageItems) {
		return domain.ErrUnauthorized
	}
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrItemNotFound
	}
	return uc.itemRepo.Deactivate(id, time.Now())
}

// ListActive lista artículos activos paginados.
func (uc *ItemUseCase) ListActive(limit, offset int) ([]*entity.Item, error) {
	return uc.itemRepo.ListActive(limit, offset)
}
