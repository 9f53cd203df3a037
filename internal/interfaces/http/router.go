package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-core/internal/application/auth"
	"github.com/tu-usuario/almacen-core/internal/application/catalog"
	"github.com/tu-usuario/almacen-core/internal/application/inventory"
	"github.com/tu-usuario/almacen-core/internal/domain/authz"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Engine     *inventory.MovementEngine
	Queries    *inventory.Queries
	ItemUC     *catalog.ItemUseCase
	SupplierUC *catalog.SupplierUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API. Las rutas protegidas pasan por
// AuthMiddleware (JWT) y RequirePermission (puerta de autorización); los
// casos de uso vuelven a validar la puerta con el rol explícito.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Items (lectura para todos los roles; mutación admin/operator)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC, deps.Queries)
	items.Get("/", RequirePermission(authz.OpReadData), itemHandler.List)
	items.Get("/low-stock", RequirePermission(authz.OpReadData), itemHandler.LowStock)
	items.Get("/:id", RequirePermission(authz.OpReadData), itemHandler.GetByID)
	items.Post("/", RequirePermission(authz.OpManageItems), itemHandler.Create)
	items.Put("/:id", RequirePermission(authz.OpManageItems), itemHandler.Update)
	items.Delete("/:id", RequirePermission(authz.OpManageItems), itemHandler.Deactivate)

	// Movements (motor + libro)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.Engine, deps.Queries)
	movements.Post("/", RequirePermission(authz.OpApplyMovement), movementHandler.Register)
	movements.Get("/", RequirePermission(authz.OpReadData), movementHandler.List)

	// Suppliers (dato de referencia)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", RequirePermission(authz.OpReadData), supplierHandler.List)
	suppliers.Post("/", RequirePermission(authz.OpManageSuppliers), supplierHandler.Create)
	suppliers.Put("/:id", RequirePermission(authz.OpManageSuppliers), supplierHandler.Update)
	suppliers.Delete("/:id", RequirePermission(authz.OpManageSuppliers), supplierHandler.Deactivate)

	// Users (solo admin)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.AuthUC)
	users.Get("/", RequirePermission(authz.OpManageUsers), userHandler.List)
	users.Post("/", RequirePermission(authz.OpManageUsers), userHandler.Create)
	users.Put("/:id/role", RequirePermission(authz.OpManageUsers), userHandler.ChangeRole)
}
