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
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-pro/internal/application/inventory"
	"github.com/tu-usuario/pos-pro/internal/application/sales"
	"github.com/tu-usuario/pos-pro/internal/application/shifts"
	"github.com/tu-usuario/pos-pro/internal/application/usecase"
	"github.com/tu-usuario/pos-pro/internal/domain/sale"
	"github.com/tu-usuario/pos-pro/internal/infrastructure/cache"
	"github.com/tu-usuario/pos-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/pos-pro/internal/interfaces/http"
	"github.com/tu-usuario/pos-pro/pkg/config"
	"github.com/tu-usuario/pos-pro/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	storeRepo := postgres.NewStoreRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	rawMaterialRepo := postgres.NewRawMaterialRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	shiftRepo := postgres.NewShiftRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de catálogo: Redis si hay dirección configurada, si no noop.
	var itemCache usecase.ItemCache = cache.NoopItemCache{}
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisItemCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, 5*time.Minute, log)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, catálogo sin caché")
		} else {
			itemCache = redisCache
			defer redisCache.Close()
		}
	}

	storeUC := usecase.NewStoreUseCase(storeRepo)
	itemUC := usecase.NewItemUseCase(itemRepo, rawMaterialRepo, itemCache)
	rawMaterialUC := usecase.NewRawMaterialUseCase(rawMaterialRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, itemRepo, rawMaterialRepo, storeRepo)
	inventoryQueries := inventory.NewQueryUseCase(stockRepo, movementRepo)

	salesCfg := sales.Config{
		TaxRate:       decimal.NewFromFloat(cfg.Sales.TaxRate),
		PointsPerUnit: decimal.NewFromFloat(cfg.Sales.PointsPerUnit),
		Tiers: sale.TierThresholds{
			Silver:   decimal.NewFromFloat(cfg.Sales.TierSilver),
			Gold:     decimal.NewFromFloat(cfg.Sales.TierGold),
			Platinum: decimal.NewFromFloat(cfg.Sales.TierPlatinum),
		},
		ManagerPINHash: cfg.Sales.ManagerPINHash,
	}
	salesUC := sales.New(txRunner, storeRepo, itemRepo, customerRepo, saleRepo, salesCfg, log)
	shiftUC := shifts.New(shiftRepo, saleRepo, storeRepo)

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
		Title:    "POS Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StoreUC:          storeUC,
		ItemUC:           itemUC,
		RawMaterialUC:    rawMaterialUC,
		CustomerUC:       customerUC,
		RegisterMovement: registerMovementUC,
		InventoryQueries: inventoryQueries,
		SalesUC:          salesUC,
		ShiftUC:          shiftUC,
		JWTSecret:        cfg.JWT.Secret,
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
