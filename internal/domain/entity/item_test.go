package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/almacen-core/internal/domain/entity"
)

func TestItemLowStock_UmbralInclusivo(t *testing.T) {
	cases := []struct {
		name     string
		balance  int64
		minStock int64
		want     bool
	}{
		{"por debajo", 2, 5, true},
		{"en el umbral", 5, 5, true},
		{"por encima", 6, 5, false},
		{"cero con minimo cero", 0, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := &entity.Item{Balance: tc.balance, MinStock: tc.minStock}
			assert.Equal(t, tc.want, item.LowStock())
		})
	}
}

func TestValidMovementKind(t *testing.T) {
	assert.True(t, entity.ValidMovementKind(entity.MovementKindReceipt))
	assert.True(t, entity.ValidMovementKind(entity.MovementKindWithdrawal))
	assert.True(t, entity.ValidMovementKind(entity.MovementKindCorrection))
	assert.False(t, entity.ValidMovementKind("transfer"))
	assert.False(t, entity.ValidMovementKind(""))
	assert.False(t, entity.ValidMovementKind("Receipt"), "las clases distinguen mayúsculas")
}
