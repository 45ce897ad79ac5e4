package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/auth"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/checkout"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/inventory"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/production"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/shipping"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/usecase"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"
	"github.com/Joan-abreu/vialflow-pro-sub001/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MaterialUC      *usecase.MaterialUseCase
	Ledger          *inventory.LedgerUseCase
	LowStock        *inventory.LowStockUseCase
	ProductUC       *usecase.ProductUseCase
	VialTypeUC      *usecase.VialTypeUseCase
	BatchUC         *production.BatchUseCase
	BatchWorkflow   *production.StartProductionUseCase
	ShipmentUC      *shipping.ShipmentUseCase
	CheckoutUC      *checkout.CheckoutUseCase
	AuthUC          *auth.AuthUseCase
	JWTSecret       string
	StripeWHSecret  string
	CarrierWHSecret string
	Log             *logger.Logger
}

// Router registra las rutas de la API.
// Público: auth, catálogo, checkout y webhooks (firmados). El resto exige
// Bearer token; las mutaciones piden rol operario o admin, la gestión de
// catálogo y categorías solo admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Catálogo y checkout (público, storefront)
	productHandler := NewProductHandler(deps.ProductUC)
	orderHandler := NewOrderHandler(deps.CheckoutUC)
	api.Get("/catalog", productHandler.Catalog)
	checkoutGroup := api.Group("/checkout")
	checkoutGroup.Post("/orders", orderHandler.Create)
	checkoutGroup.Get("/orders/:id", orderHandler.GetByID)

	// Webhooks (público; autenticidad por firma)
	webhookHandler := NewWebhookHandler(deps.CheckoutUC, deps.ShipmentUC, deps.StripeWHSecret, deps.CarrierWHSecret, deps.Log)
	webhooks := api.Group("/webhooks")
	webhooks.Post("/stripe", webhookHandler.Stripe)
	webhooks.Post("/carrier", webhookHandler.Carrier)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	anyRole := RequireRole(entity.RoleAdmin, entity.RoleOperario, entity.RoleViewer)
	operario := RequireRole(entity.RoleAdmin, entity.RoleOperario)
	admin := RequireRole(entity.RoleAdmin)

	// Materias primas y libro de materiales
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC, deps.Ledger, deps.LowStock)
	materials.Get("/", anyRole, materialHandler.List)
	materials.Get("/low-stock", anyRole, materialHandler.LowStock)
	materials.Post("/", admin, materialHandler.Create)
	materials.Get("/:id", anyRole, materialHandler.GetByID)
	materials.Put("/:id", admin, materialHandler.Update)
	materials.Post("/:id/adjust", operario, materialHandler.AdjustStock)
	materials.Get("/:id/movements", anyRole, materialHandler.Movements)

	categories := protected.Group("/material-categories")
	categories.Post("/", admin, materialHandler.CreateCategory)
	categories.Get("/", anyRole, materialHandler.ListCategories)
	categories.Delete("/:id", admin, materialHandler.DisableCategory)

	// Productos y su receta de llenado
	products := protected.Group("/products")
	products.Post("/", admin, productHandler.Create)
	products.Get("/", anyRole, productHandler.List)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Put("/:id", admin, productHandler.Update)
	products.Put("/:id/materials", admin, productHandler.ReplaceBOM)
	products.Get("/:id/materials", anyRole, productHandler.ListBOM)

	// Formatos de envase y BOM de empaque
	vialTypes := protected.Group("/vial-types")
	vialTypeHandler := NewVialTypeHandler(deps.VialTypeUC)
	vialTypes.Post("/", admin, vialTypeHandler.Create)
	vialTypes.Get("/", anyRole, vialTypeHandler.List)
	vialTypes.Get("/:id", anyRole, vialTypeHandler.GetByID)
	vialTypes.Put("/:id/materials", admin, vialTypeHandler.ReplaceBOM)
	vialTypes.Get("/:id/materials", anyRole, vialTypeHandler.ListBOM)

	// Lotes de producción
	batches := protected.Group("/batches")
	batchHandler := NewBatchHandler(deps.BatchUC, deps.BatchWorkflow)
	batches.Post("/", operario, batchHandler.Create)
	batches.Get("/", anyRole, batchHandler.List)
	batches.Get("/:id", anyRole, batchHandler.GetByID)
	batches.Put("/:id", operario, batchHandler.Update)
	batches.Post("/:id/start", operario, batchHandler.Start)
	batches.Post("/:id/cancel", operario, batchHandler.Cancel)
	batches.Post("/:id/restore-materials", operario, batchHandler.RestoreMaterials)

	// Envíos
	shipments := protected.Group("/shipments")
	shipmentHandler := NewShipmentHandler(deps.ShipmentUC)
	shipments.Post("/", operario, shipmentHandler.Create)
	shipments.Get("/", anyRole, shipmentHandler.ListByBatch)
	shipments.Get("/rates", anyRole, shipmentHandler.Rates)
	shipments.Get("/:id", anyRole, shipmentHandler.GetByID)
	shipments.Put("/:id", operario, shipmentHandler.Update)
	shipments.Post("/:id/boxes", operario, shipmentHandler.AddBox)
	shipments.Post("/:id/restore-box-materials", operario, shipmentHandler.RestoreBoxMaterials)
	shipments.Get("/:id/packing-slip", anyRole, shipmentHandler.PackingSlip)

	// Órdenes (back-office)
	orders := protected.Group("/orders")
	orders.Get("/", anyRole, orderHandler.List)
	orders.Post("/:id/fulfill", operario, orderHandler.Fulfill)
	orders.Post("/:id/cancel", operario, orderHandler.Cancel)
}
