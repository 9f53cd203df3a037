// Package authz implementa la puerta de autorización: una función pura
// sobre (rol, operación) sin efectos secundarios ni I/O.
package authz

import "github.com/tu-usuario/almacen-core/internal/domain/entity"

// Operation identifica una operación autorizable del sistema.
type Operation string

const (
	OpApplyMovement   Operation = "inventory.apply_movement"
	OpManageItems     Operation = "catalog.manage_items"
	OpManageSuppliers Operation = "catalog.manage_suppliers"
	OpManageUsers     Operation = "users.manage_roles"
	OpReadData        Operation = "data.read"
)

// Tabla estática de decisión. La ausencia de una entrada significa denegar:
// roles u operaciones desconocidos caen en false sin consultar nada más.
var permissions = map[string]map[Operation]bool{
	entity.RoleAdmin: {
		OpApplyMovement:   true,
		OpManageItems:     true,
		OpManageSuppliers: true,
		OpManageUsers:     true,
		OpReadData:        true,
	},
	entity.RoleOperator: {
		OpApplyMovement:   true,
		OpManageItems:     true,
		OpManageSuppliers: true,
		OpReadData:        true,
	},
	entity.RoleViewer: {
		OpReadData: true,
	},
}

// CanPerform decide si un rol puede ejecutar una operación. Es total:
// devuelve una decisión para cualquier par sin lanzar pánico, y cierra
// por defecto (fail-closed).
func CanPerform(role string, op Operation) bool {
	ops, ok := permissions[role]
	if !ok {
		return false
	}
	return ops[op]
}

// ValidRole verifica que el rol pertenezca al conjunto cerrado.
func ValidRole(role string) bool {
	_, ok := permissions[role]
	return ok
}
