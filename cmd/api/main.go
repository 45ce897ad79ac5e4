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

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/auth"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/checkout"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/inventory"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/production"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/shipping"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/usecase"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/infrastructure/carrier"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/infrastructure/payments"
	infrapdf "github.com/Joan-abreu/vialflow-pro-sub001/internal/infrastructure/pdf"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/infrastructure/postgres"
	httpRouter "github.com/Joan-abreu/vialflow-pro-sub001/internal/interfaces/http"
	"github.com/Joan-abreu/vialflow-pro-sub001/pkg/config"
	"github.com/Joan-abreu/vialflow-pro-sub001/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
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

	// Repositorios sobre el pool; los TxRunner re-vinculan a la transacción.
	materialRepo := postgres.NewRawMaterialRepository(pool)
	categoryRepo := postgres.NewMaterialCategoryRepository(pool)
	movementRepo := postgres.NewMaterialMovementRepository(pool)
	vialTypeRepo := postgres.NewVialTypeRepository(pool)
	vialTypeBOMRepo := postgres.NewVialTypeMaterialRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	productBOMRepo := postgres.NewProductMaterialRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	shipmentRepo := postgres.NewShipmentRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Libro de materiales e inventario
	ledger := inventory.NewLedgerUseCase(txRunner, materialRepo)
	lowStockUC := inventory.NewLowStockUseCase(materialRepo)
	materialUC := usecase.NewMaterialUseCase(materialRepo, categoryRepo, movementRepo)

	// Catálogo
	productUC := usecase.NewProductUseCase(productRepo, vialTypeRepo, productBOMRepo)
	vialTypeUC := usecase.NewVialTypeUseCase(vialTypeRepo, vialTypeBOMRepo)

	// Producción
	batchUC := production.NewBatchUseCase(batchRepo, vialTypeRepo, productRepo)
	batchWorkflow := production.NewStartProductionUseCase(txRunner, ledger, vialTypeBOMRepo)

	// Envíos: cotización del carrier + packing slip PDF
	rateQuoter := carrier.NewClient(cfg.Carrier)
	slipGenerator := infrapdf.NewMarotoSlipGenerator(cfg.App.Name)
	shipmentUC := shipping.NewShipmentUseCase(
		txRunner, shipmentRepo, batchRepo, vialTypeBOMRepo,
		ledger, rateQuoter, slipGenerator,
	)

	// Checkout con Stripe
	gateway := payments.NewStripeGateway(cfg.Stripe.SecretKey)
	checkoutUC := checkout.NewCheckoutUseCase(orderRepo, productRepo, gateway, cfg.Stripe.Currency)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
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
		Title:    "VialFlow Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		MaterialUC:      materialUC,
		Ledger:          ledger,
		LowStock:        lowStockUC,
		ProductUC:       productUC,
		VialTypeUC:      vialTypeUC,
		BatchUC:         batchUC,
		BatchWorkflow:   batchWorkflow,
		ShipmentUC:      shipmentUC,
		CheckoutUC:      checkoutUC,
		AuthUC:          authUC,
		JWTSecret:       cfg.JWT.Secret,
		StripeWHSecret:  cfg.Stripe.WebhookSecret,
		CarrierWHSecret: cfg.Carrier.WebhookSecret,
		Log:             log,
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
