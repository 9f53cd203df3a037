package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-core/internal/application/inventory"
	"github.com/tu-usuario/almacen-core/internal/domain"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
	"github.com/tu-usuario/almacen-core/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memTxRunner serializa las transacciones con un mutex y restaura un
// snapshot si fn falla: mismo contrato que la transacción PostgreSQL con
// bloqueo de fila (exclusión + rollback), sin DB.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu    sync.Mutex
	items map[string]*entity.Item
	movs  []*entity.Movement
	runs  int // transacciones iniciadas
}

func newMemStore() *memStore {
	return &memStore{items: map[string]*entity.Item{}}
}

func (s *memStore) addItem(item *entity.Item) {
	s.items[item.ID] = item
}

type memTxRunner struct{ store *memStore }

func (r *memTxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
) error) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs++

	snapshot := make(map[string]entity.Item, len(s.items))
	for id, it := range s.items {
		snapshot[id] = *it
	}
	movLen := len(s.movs)

	if err := fn(&memItemRepo{s: s}, &memMovRepo{s: s}); err != nil {
		for id := range s.items {
			restored := snapshot[id]
			s.items[id] = &restored
		}
		s.movs = s.movs[:movLen]
		return err
	}
	return nil
}

type memItemRepo struct{ s *memStore }

func (r *memItemRepo) Create(item *entity.Item) error { r.s.items[item.ID] = item; return nil }
func (r *memItemRepo) GetByID(id string) (*entity.Item, error) {
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}
func (r *memItemRepo) GetBySKU(sku string) (*entity.Item, error) {
	for _, it := range r.s.items {
		if it.SKU == sku {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *memItemRepo) GetForUpdate(id string) (*entity.Item, error) { return r.GetByID(id) }
func (r *memItemRepo) Update(item *entity.Item) error {
	r.s.items[item.ID] = item
	return nil
}
func (r *memItemRepo) UpdateBalance(id string, balance int64, updatedAt time.Time) error {
	it, ok := r.s.items[id]
	if !ok {
		return domain.ErrItemNotFound
	}
	it.Balance = balance
	it.UpdatedAt = updatedAt
	return nil
}
func (r *memItemRepo) ListActive(limit, offset int) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range r.s.items {
		if it.Active {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r *memItemRepo) ListLowStock() ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range r.s.items {
		if it.Active && it.LowStock() {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r *memItemRepo) Deactivate(id string, updatedAt time.Time) error {
	it, ok := r.s.items[id]
	if !ok {
		return domain.ErrItemNotFound
	}
	it.Active = false
	it.UpdatedAt = updatedAt
	return nil
}

type memMovRepo struct{ s *memStore }

func (r *memMovRepo) Append(m *entity.Movement) error {
	cp := *m
	r.s.movs = append(r.s.movs, &cp)
	return nil
}
func (r *memMovRepo) GetByID(id string) (*entity.Movement, error) {
	for _, m := range r.s.movs {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *memMovRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for i := len(r.s.movs) - 1; i >= 0; i-- {
		m := r.s.movs[i]
		if filter.ItemID != "" && m.ItemID != filter.ItemID {
			continue
		}
		if filter.From != nil && m.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !m.CreatedAt.Before(*filter.To) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

// memUserRepo es de solo lectura durante los tests: seguro bajo concurrencia.
type memUserRepo struct{ users map[string]*entity.User }

func (r *memUserRepo) Create(user *entity.User) error { r.users[user.ID] = user; return nil }
func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}
func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *memUserRepo) Update(user *entity.User) error { r.users[user.ID] = user; return nil }
func (r *memUserRepo) UpdateRole(id, role string, updatedAt time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	u.UpdatedAt = updatedAt
	return nil
}
func (r *memUserRepo) List(limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	adminID    = "00000000-0000-0000-0000-00000000000a"
	operatorID = "00000000-0000-0000-0000-00000000000b"
	viewerID   = "00000000-0000-0000-0000-00000000000c"
	widgetID   = "10000000-0000-0000-0000-000000000001"
)

func buildEngine(t *testing.T, balance int64) (*inventory.MovementEngine, *memStore) {
	t.Helper()
	store := newMemStore()
	now := time.Now()
	store.addItem(&entity.Item{
		ID: widgetID, SKU: "WID-001", Name: "Widget", Unit: "un",
		Balance: balance, MinStock: 5, Active: true,
		CreatedAt: now, UpdatedAt: now,
	})
	users := &memUserRepo{users: map[string]*entity.User{
		adminID:    {ID: adminID, Role: entity.RoleAdmin, Status: entity.UserStatusActive},
		operatorID: {ID: operatorID, Role: entity.RoleOperator, Status: entity.UserStatusActive},
		viewerID:   {ID: viewerID, Role: entity.RoleViewer, Status: entity.UserStatusActive},
	}}
	return inventory.NewMovementEngine(&memTxRunner{store: store}, users), store
}

func apply(t *testing.T, e *inventory.MovementEngine, kind string, qty int64, actorID string) (*entity.Movement, error) {
	t.Helper()
	return e.Apply(context.Background(), inventory.ApplyInput{
		ItemID: widgetID, Kind: kind, Quantity: qty, ActorID: actorID,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Reglas de transición por clase
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_ReceiptSumaSaldo(t *testing.T) {
	engine, store := buildEngine(t, 10)

	mov, err := apply(t, engine, entity.MovementKindReceipt, 5, operatorID)
	require.NoError(t, err)

	assert.Equal(t, int64(10), mov.BalanceBefore)
	assert.Equal(t, int64(15), mov.BalanceAfter)
	assert.Equal(t, entity.MovementKindReceipt, mov.Kind)
	assert.Equal(t, operatorID, mov.ActorID)
	assert.Equal(t, int64(15), store.items[widgetID].Balance,
		"el saldo del artículo debe quedar en 15")
	assert.Len(t, store.movs, 1)
}

func TestApply_WithdrawalInsuficiente_NoMutaEstado(t *testing.T) {
	engine, store := buildEngine(t, 15)

	_, err := apply(t, engine, entity.MovementKindWithdrawal, 20, operatorID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(15), store.items[widgetID].Balance,
		"el saldo no debe cambiar en una salida rechazada")
	assert.Empty(t, store.movs, "no debe registrarse movimiento")

	// Fallo idempotente: repetir la misma llamada tampoco muta nada.
	_, err = apply(t, engine, entity.MovementKindWithdrawal, 20, operatorID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(15), store.items[widgetID].Balance)
	assert.Empty(t, store.movs)
}

func TestApply_WithdrawalExacto_DejaSaldoCero(t *testing.T) {
	engine, store := buildEngine(t, 15)

	mov, err := apply(t, engine, entity.MovementKindWithdrawal, 15, operatorID)
	require.NoError(t, err)
	assert.Equal(t, int64(15), mov.BalanceBefore)
	assert.Equal(t, int64(0), mov.BalanceAfter)

	// Con mínimo 5 y saldo 0 el artículo entra en low-stock.
	low, err := (&memItemRepo{s: store}).ListLowStock()
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, widgetID, low[0].ID)
}

func TestApply_CorrectionFijaSaldoAbsoluto(t *testing.T) {
	engine, store := buildEngine(t, 0)

	// Desde 0, una corrección a 8 no es una entrada de 8: la clase queda correction.
	mov, err := apply(t, engine, entity.MovementKindCorrection, 8, adminID)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementKindCorrection, mov.Kind)
	assert.Equal(t, int64(0), mov.BalanceBefore)
	assert.Equal(t, int64(8), mov.BalanceAfter)
	assert.Equal(t, int64(8), store.items[widgetID].Balance)

	// Corrección a 0 permitida (vaciar stock).
	mov, err = apply(t, engine, entity.MovementKindCorrection, 0, adminID)
	require.NoError(t, err)
	assert.Equal(t, int64(8), mov.BalanceBefore)
	assert.Equal(t, int64(0), mov.BalanceAfter)
}

func TestApply_CantidadesInvalidas(t *testing.T) {
	engine, _ := buildEngine(t, 10)

	cases := []struct {
		name string
		kind string
		qty  int64
		want error
	}{
		{"receipt cero", entity.MovementKindReceipt, 0, domain.ErrInvalidQuantity},
		{"receipt negativo", entity.MovementKindReceipt, -1, domain.ErrInvalidQuantity},
		{"withdrawal cero", entity.MovementKindWithdrawal, 0, domain.ErrInvalidQuantity},
		{"withdrawal negativo", entity.MovementKindWithdrawal, -3, domain.ErrInvalidQuantity},
		{"correction negativo", entity.MovementKindCorrection, -1, domain.ErrInvalidQuantity},
		{"clase desconocida", "transfer", 1, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := apply(t, engine, tc.kind, tc.qty, operatorID)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Puerta de autorización y precondiciones del artículo
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_ViewerDenegado_SinLecturaDeSaldo(t *testing.T) {
	engine, store := buildEngine(t, 10)

	_, err := apply(t, engine, entity.MovementKindReceipt, 1, viewerID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, int64(10), store.items[widgetID].Balance)
	assert.Empty(t, store.movs)
	assert.Zero(t, store.runs,
		"la denegación debe ocurrir antes de abrir transacción alguna")
}

func TestApply_ActorDesconocido_Denegado(t *testing.T) {
	engine, store := buildEngine(t, 10)

	_, err := apply(t, engine, entity.MovementKindReceipt, 1, "no-existe")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Zero(t, store.runs)
}

func TestApply_ItemInexistente(t *testing.T) {
	engine, _ := buildEngine(t, 10)

	_, err := engine.Apply(context.Background(), inventory.ApplyInput{
		ItemID: "20000000-0000-0000-0000-000000000099", Kind: entity.MovementKindReceipt,
		Quantity: 1, ActorID: operatorID,
	})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestApply_ItemInactivo(t *testing.T) {
	engine, store := buildEngine(t, 10)
	store.items[widgetID].Active = false

	_, err := apply(t, engine, entity.MovementKindReceipt, 1, operatorID)
	assert.ErrorIs(t, err, domain.ErrItemInactive)
	assert.Empty(t, store.movs)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: exclusión por artículo y cadena before/after
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_SalidasConcurrentes_SoloUnaGana(t *testing.T) {
	engine, store := buildEngine(t, 10)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = apply(t, engine, entity.MovementKindWithdrawal, 6, operatorID)
		}(i)
	}
	wg.Wait()

	// Con saldo 10 y dos salidas de 6, exactamente una debe aplicar.
	var okCount, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, okCount, "exactamente una salida debe aplicar")
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, int64(4), store.items[widgetID].Balance)
	require.Len(t, store.movs, 1)
	assert.Equal(t, int64(10), store.movs[0].BalanceBefore,
		"la salida ganadora debe partir del saldo real, no de uno obsoleto")
}

func TestApply_CadenaConsistenteBajoConcurrencia(t *testing.T) {
	engine, store := buildEngine(t, 0)

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := apply(t, engine, entity.MovementKindReceipt, 1, operatorID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Len(t, store.movs, workers)
	assert.Equal(t, int64(workers), store.items[widgetID].Balance)

	// Cada movimiento debe encadenar con el anterior en orden de commit:
	// ni updates perdidos ni lecturas obsoletas.
	prev := int64(0)
	for i, m := range store.movs {
		assert.Equal(t, prev, m.BalanceBefore, "movimiento %d rompe la cadena", i)
		assert.Equal(t, m.BalanceBefore+1, m.BalanceAfter)
		assert.GreaterOrEqual(t, m.BalanceAfter, int64(0),
			"el saldo nunca puede observarse negativo")
		prev = m.BalanceAfter
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Reintento acotado ante conflicto de persistencia
// ──────────────────────────────────────────────────────────────────────────────

// conflictRunner falla con ErrPersistenceConflict las primeras n veces y
// después delega, simulando una transacción que pierde la carrera.
type conflictRunner struct {
	mu    sync.Mutex
	fails int
	inner inventory.TxRunner
}

func (r *conflictRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
) error) error {
	r.mu.Lock()
	if r.fails > 0 {
		r.fails--
		r.mu.Unlock()
		return domain.ErrPersistenceConflict
	}
	r.mu.Unlock()
	return r.inner.Run(ctx, fn)
}

func TestApply_ReintentaConflictosYLuegoAplica(t *testing.T) {
	_, store := buildEngine(t, 10)
	users := &memUserRepo{users: map[string]*entity.User{
		operatorID: {ID: operatorID, Role: entity.RoleOperator, Status: entity.UserStatusActive},
	}}
	runner := &conflictRunner{fails: 2, inner: &memTxRunner{store: store}}
	engine := inventory.NewMovementEngine(runner, users)

	mov, err := apply(t, engine, entity.MovementKindReceipt, 5, operatorID)
	require.NoError(t, err, "dos conflictos caben en el presupuesto de reintentos")
	assert.Equal(t, int64(15), mov.BalanceAfter)
}

func TestApply_ConflictoPersistente_SaleTipado(t *testing.T) {
	_, store := buildEngine(t, 10)
	users := &memUserRepo{users: map[string]*entity.User{
		operatorID: {ID: operatorID, Role: entity.RoleOperator, Status: entity.UserStatusActive},
	}}
	runner := &conflictRunner{fails: 10, inner: &memTxRunner{store: store}}
	engine := inventory.NewMovementEngine(runner, users)

	_, err := apply(t, engine, entity.MovementKindReceipt, 5, operatorID)
	assert.ErrorIs(t, err, domain.ErrPersistenceConflict)
	assert.Equal(t, int64(10), store.items[widgetID].Balance)
}

// ──────────────────────────────────────────────────────────────────────────────
// Secuencias mixtas: el saldo final es el pliegue de los movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_SecuenciaMixta_PliegueExacto(t *testing.T) {
	engine, store := buildEngine(t, 10)

	steps := []struct {
		kind string
		qty  int64
	}{
		{entity.MovementKindReceipt, 5},     // 15
		{entity.MovementKindWithdrawal, 15}, // 0
		{entity.MovementKindCorrection, 8},  // 8
		{entity.MovementKindReceipt, 2},     // 10
		{entity.MovementKindWithdrawal, 3},  // 7
	}
	for _, s := range steps {
		_, err := apply(t, engine, s.kind, s.qty, adminID)
		require.NoError(t, err)
	}

	assert.Equal(t, int64(7), store.items[widgetID].Balance)
	// La cadena before/after cubre toda la historia en orden de commit.
	prev := int64(10)
	for i, m := range store.movs {
		assert.Equal(t, prev, m.BalanceBefore, "movimiento %d", i)
		prev = m.BalanceAfter
	}
}
