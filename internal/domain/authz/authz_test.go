package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/almacen-core/internal/domain/authz"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
)

// Tabla completa de decisión rol × operación.
func TestCanPerform_TablaCompleta(t *testing.T) {
	ops := []authz.Operation{
		authz.OpApplyMovement,
		authz.OpManageItems,
		authz.OpManageSuppliers,
		authz.OpManageUsers,
		authz.OpReadData,
	}

	expected := map[string]map[authz.Operation]bool{
		entity.RoleAdmin: {
			authz.OpApplyMovement:   true,
			authz.OpManageItems:     true,
			authz.OpManageSuppliers: true,
			authz.OpManageUsers:     true,
			authz.OpReadData:        true,
		},
		entity.RoleOperator: {
			authz.OpApplyMovement:   true,
			authz.OpManageItems:     true,
			authz.OpManageSuppliers: true,
			authz.OpManageUsers:     false,
			authz.OpReadData:        true,
		},
		entity.RoleViewer: {
			authz.OpApplyMovement:   false,
			authz.OpManageItems:     false,
			authz.OpManageSuppliers: false,
			authz.OpManageUsers:     false,
			authz.OpReadData:        true,
		},
	}

	for role, perms := range expected {
		for _, op := range ops {
			got := authz.CanPerform(role, op)
			assert.Equal(t, perms[op], got, "rol=%s op=%s", role, op)
		}
	}
}

// La puerta es total y cierra por defecto: entradas desconocidas o vacías
// deniegan sin pánico.
func TestCanPerform_FailClosed(t *testing.T) {
	assert.False(t, authz.CanPerform("", authz.OpReadData))
	assert.False(t, authz.CanPerform("superuser", authz.OpReadData))
	assert.False(t, authz.CanPerform("Admin", authz.OpReadData),
		"los roles distinguen mayúsculas: 'Admin' no es 'admin'")
	assert.False(t, authz.CanPerform(entity.RoleAdmin, authz.Operation("unknown.op")))
	assert.False(t, authz.CanPerform("", authz.Operation("")))
}

func TestValidRole(t *testing.T) {
	assert.True(t, authz.ValidRole(entity.RoleAdmin))
	assert.True(t, authz.ValidRole(entity.RoleOperator))
	assert.True(t, authz.ValidRole(entity.RoleViewer))
	assert.False(t, authz.ValidRole(""))
	assert.False(t, authz.ValidRole("root"))
}
