package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-core/internal/domain"
	"github.com/tu-usuario/almacen-core/internal/domain/authz"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
	"github.com/tu-usuario/almacen-core/internal/domain/repository"
)

// conflictAttempts intentos totales ante ErrPersistenceConflict; en cada
// reintento se relee el saldo dentro de una transacción nueva.
const conflictAttempts = 3

// MovementEngine aplica movimientos de stock de forma transaccional.
// Es el único escritor de saldos: cada transición de Balance queda
// explicada por exactamente un Movement con BalanceBefore/BalanceAfter
// capturados bajo el bloqueo de fila del artículo.
type MovementEngine struct {
	txRunner TxRunner
	userRepo repository.UserRepository
}

// NewMovementEngine construye el motor.
func NewMovementEngine(txRunner TxRunner, userRepo repository.UserRepository) *MovementEngine {
	return &MovementEngine{txRunner: txRunner, userRepo: userRepo}
}

// ApplyInput entrada para Apply. Para Kind=correction, Quantity es el
// nuevo saldo absoluto.
type ApplyInput struct {
	ItemID   string
	Kind     string
	Quantity int64
	ActorID  string
	Note     string
}

// Apply valida la cantidad, autoriza al actor y aplica el movimiento.
// Devuelve el Movement creado con el saldo nuevo, así el caller no
// necesita releer para observar un estado consistente.
//
// La puerta de autorización se evalúa antes de cualquier lectura de saldo:
// una denegación no produce ningún efecto. Dos Apply concurrentes sobre el
// mismo artículo se serializan por el bloqueo de fila (SELECT FOR UPDATE)
// que toma la transacción; artículos distintos avanzan en paralelo.
func (e *MovementEngine) Apply(ctx context.Context, in ApplyInput) (*entity.Movement, error) {
	if err := validateQuantity(in.Kind, in.Quantity); err != nil {
		return nil, err
	}

	actor, err := e.userRepo.GetByID(in.ActorID)
	if err != nil {
		return nil, err
	}
	if actor == nil || actor.Status != entity.UserStatusActive {
		return nil, domain.ErrUnauthorized
	}
	if !authz.CanPerform(actor.Role, authz.OpApplyMovement) {
		return nil, domain.ErrUnauthorized
	}

	var mov *entity.Movement
	var lastErr error
	for attempt := 0; attempt < conflictAttempts; attempt++ {
		mov, lastErr = e.applyOnce(ctx, in)
		if !errors.Is(lastErr, domain.ErrPersistenceConflict) {
			break
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return mov, nil
}

// applyOnce ejecuta una transacción completa: bloquear fila del artículo,
// calcular el saldo nuevo, persistirlo y anotar el movimiento.
func (e *MovementEngine) applyOnce(ctx context.Context, in ApplyInput) (*entity.Movement, error) {
	var mov *entity.Movement
	err := e.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error {
		item, err := itemRepo.GetForUpdate(in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrItemNotFound
		}
		if !item.Active {
			return domain.ErrItemInactive
		}

		before := item.Balance
		after, err := balanceAfter(in.Kind, before, in.Quantity)
		if err != nil {
			return err
		}

		now := time.Now()
		if err := itemRepo.UpdateBalance(item.ID, after, now); err != nil {
			return err
		}
		m := &entity.Movement{
			ID:            uuid.New().String(),
			ItemID:        item.ID,
			Kind:          in.Kind,
			Quantity:      in.Quantity,
			BalanceBefore: before,
			BalanceAfter:  after,
			ActorID:       in.ActorID,
			Note:          in.Note,
			CreatedAt:     now,
		}
		if err := movRepo.Append(m); err != nil {
			return err
		}
		mov = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// validateQuantity: receipt y withdrawal exigen cantidad positiva;
// correction admite cero (dejar el stock en 0) pero no negativos.
func validateQuantity(kind string, qty int64) error {
	switch kind {
	case entity.MovementKindReceipt, entity.MovementKindWithdrawal:
		if qty <= 0 {
			return domain.ErrInvalidQuantity
		}
	case entity.MovementKindCorrection:
		if qty < 0 {
			return domain.ErrInvalidQuantity
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// balanceAfter aplica la regla de transición de la clase de movimiento.
func balanceAfter(kind string, before, qty int64) (int64, error) {
	switch kind {
	case entity.MovementKindReceipt:
		return before + qty, nil
	case entity.MovementKindWithdrawal:
		if before-qty < 0 {
			return 0, domain.ErrInsufficientStock
		}
		return before - qty, nil
	case entity.MovementKindCorrection:
		return qty, nil
	}
	return 0, domain.ErrInvalidInput
}
