package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-core/internal/application/inventory"
	"github.com/tu-usuario/almacen-core/internal/domain"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
	"github.com/tu-usuario/almacen-core/internal/domain/repository"
)

func buildQueries(store *memStore) *inventory.Queries {
	return inventory.NewQueries(&memItemRepo{s: store}, &memMovRepo{s: store})
}

func TestGetItem_InactivoSigueResoluble(t *testing.T) {
	store := newMemStore()
	now := time.Now()
	store.addItem(&entity.Item{
		ID: widgetID, SKU: "WID-001", Name: "Widget", Unit: "un",
		Active: false, CreatedAt: now, UpdatedAt: now,
	})
	q := buildQueries(store)

	item, err := q.GetItem(context.Background(), widgetID)
	require.NoError(t, err, "los inactivos se resuelven por ID para el historial")
	assert.False(t, item.Active)

	_, err = q.GetItem(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestListMovements_RangoSemiabierto(t *testing.T) {
	store := newMemStore()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		store.movs = append(store.movs, &entity.Movement{
			ID:        string(rune('a' + i)),
			ItemID:    widgetID,
			Kind:      entity.MovementKindReceipt,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	q := buildQueries(store)

	from := base.Add(1 * time.Hour)
	to := base.Add(3 * time.Hour)
	movs, err := q.ListMovements(context.Background(), repository.MovementFilter{
		ItemID: widgetID,
		From:   &from,
		To:     &to,
	})
	require.NoError(t, err)

	// [From, To): entra el movimiento en From, queda fuera el de To.
	require.Len(t, movs, 2)
	ids := []string{movs[0].ID, movs[1].ID}
	assert.ElementsMatch(t, []string{"b", "c"}, ids)
	// Orden descendente por fecha.
	assert.True(t, movs[0].CreatedAt.After(movs[1].CreatedAt))
}

func TestListMovements_FiltroPorArticulo(t *testing.T) {
	store := newMemStore()
	now := time.Now()
	store.movs = append(store.movs,
		&entity.Movement{ID: "m1", ItemID: widgetID, CreatedAt: now},
		&entity.Movement{ID: "m2", ItemID: "otro-item", CreatedAt: now},
	)
	q := buildQueries(store)

	movs, err := q.ListMovements(context.Background(), repository.MovementFilter{ItemID: widgetID})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "m1", movs[0].ID)
}

func TestListMovements_LimiteSaneado(t *testing.T) {
	q := buildQueries(newMemStore())

	// Límite fuera de rango cae al valor por defecto sin error.
	_, err := q.ListMovements(context.Background(), repository.MovementFilter{Limit: -5})
	assert.NoError(t, err)
	_, err = q.ListMovements(context.Background(), repository.MovementFilter{Limit: 10000, Offset: -1})
	assert.NoError(t, err)
}

func TestListLowStock_UmbralInclusivo(t *testing.T) {
	store := newMemStore()
	now := time.Now()
	add := func(id string, balance, min int64, active bool) {
		store.addItem(&entity.Item{
			ID: id, SKU: id, Name: id, Unit: "un",
			Balance: balance, MinStock: min, Active: active,
			CreatedAt: now, UpdatedAt: now,
		})
	}
	add("en-umbral", 5, 5, true)    // balance == min: bajo stock
	add("bajo-umbral", 2, 5, true)  // balance < min: bajo stock
	add("sobre-umbral", 6, 5, true) // balance > min: ok
	add("inactivo", 0, 5, false)    // inactivo: nunca alerta

	q := buildQueries(store)
	low, err := q.ListLowStock(context.Background())
	require.NoError(t, err)

	var ids []string
	for _, it := range low {
		ids = append(ids, it.ID)
	}
	assert.ElementsMatch(t, []string{"en-umbral", "bajo-umbral"}, ids)
}
