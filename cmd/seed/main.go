// Seed de desarrollo: crea un usuario admin, un proveedor y artículos demo
// con su stock inicial cargado vía movimientos (para que el saldo sea
// siempre la suma del libro). Pensado para entornos locales.
package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-core/internal/application/catalog"
	"github.com/tu-usuario/almacen-core/internal/application/dto"
	"github.com/tu-usuario/almacen-core/internal/application/inventory"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
	"github.com/tu-usuario/almacen-core/internal/infrastructure/postgres"
	"github.com/tu-usuario/almacen-core/pkg/config"
	"github.com/tu-usuario/almacen-core/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)

	// Admin inicial
	adminEmail := getenv("SEED_ADMIN_EMAIL", "admin@almacen.local")
	adminPassword := getenv("SEED_ADMIN_PASSWORD", "admin1234")
	admin, err := userRepo.GetByEmail(adminEmail)
	if err != nil {
		log.Fatal().Err(err).Msg("buscar admin")
	}
	if admin == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash password")
		}
		now := time.Now()
		admin = &entity.User{
			ID:           uuid.New().String(),
			Email:        adminEmail,
			PasswordHash: string(hash),
			Name:         "Administrador",
			Role:         entity.RoleAdmin,
			Status:       entity.UserStatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(admin); err != nil {
			log.Fatal().Err(err).Msg("crear admin")
		}
		log.Info().Str("email", adminEmail).Msg("admin creado")
	}

	supplierUC := catalog.NewSupplierUseCase(supplierRepo)
	supplier, err := supplierUC.Create(entity.RoleAdmin, dto.CreateSupplierRequest{
		Name:  "Proveedor Demo",
		Email: "ventas@proveedor.demo",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear proveedor demo")
	}

	itemUC := catalog.NewItemUseCase(itemRepo)
	engine := inventory.NewMovementEngine(postgres.NewTxRunner(pool), userRepo)

	demo := []struct {
		sku, name, unit string
		cost            string
		minStock        int64
		initial         int64
	}{
		{"WID-001", "Widget", "un", "12.50", 5, 10},
		{"TOR-010", "Tornillo 10mm", "caja", "3.90", 20, 100},
		{"CAB-UTP", "Cable UTP", "m", "0.75", 50, 300},
	}
	for _, d := range demo {
		item, err := itemUC.Create(entity.RoleAdmin, dto.CreateItemRequest{
			SKU:        d.sku,
			Name:       d.name,
			Unit:       d.unit,
			SupplierID: supplier.ID,
			CostPrice:  decimal.RequireFromString(d.cost),
			MinStock:   d.minStock,
		})
		if err != nil {
			log.Warn().Err(err).Str("sku", d.sku).Msg("artículo demo omitido")
			continue
		}
		// Stock inicial como receipt, atribuido al admin
		if _, err := engine.Apply(ctx, inventory.ApplyInput{
			ItemID:   item.ID,
			Kind:     entity.MovementKindReceipt,
			Quantity: d.initial,
			ActorID:  admin.ID,
			Note:     "carga inicial",
		}); err != nil {
			log.Warn().Err(err).Str("sku", d.sku).Msg("carga inicial fallida")
		}
	}

	log.Info().Msg("seed completado")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
