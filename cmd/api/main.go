package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appauth "github.com/tu-usuario/almacen-core/internal/application/auth"
	"github.com/tu-usuario/almacen-core/internal/application/catalog"
	"github.com/tu-usuario/almacen-core/internal/application/inventory"
	"github.com/tu-usuario/almacen-core/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/almacen-core/internal/interfaces/http"
	"github.com/tu-usuario/almacen-core/pkg/config"
	"github.com/tu-usuario/almacen-core/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	engine := inventory.NewMovementEngine(txRunner, userRepo)
	queries := inventory.NewQueries(itemRepo, movementRepo)
	itemUC := catalog.NewItemUseCase(itemRepo)
	supplierUC := catalog.NewSupplierUseCase(supplierRepo)
	authUC := appauth.NewAuthUseCase(userRepo, appauth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén Core API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Engine:     engine,
		Queries:    queries,
		ItemUC:     itemUC,
		SupplierUC: supplierUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
