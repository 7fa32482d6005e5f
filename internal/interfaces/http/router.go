package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-pro/internal/application/inventory"
	"github.com/tu-usuario/pos-pro/internal/application/sales"
	"github.com/tu-usuario/pos-pro/internal/application/shifts"
	"github.com/tu-usuario/pos-pro/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StoreUC          *usecase.StoreUseCase
	ItemUC           *usecase.ItemUseCase
	RawMaterialUC    *usecase.RawMaterialUseCase
	CustomerUC       *usecase.CustomerUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	InventoryQueries *inventory.QueryUseCase
	SalesUC          *sales.UseCase
	ShiftUC          *shifts.UseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Stores (público por ahora; alta de tiendas la hace el onboarding)
	stores := api.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Post("/", storeHandler.Create)
	stores.Get("/", storeHandler.List)
	stores.Get("/:id", storeHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Items (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id/recipe", itemHandler.UpdateRecipe)

	// Raw materials (protegido)
	rawMaterials := protected.Group("/raw-materials")
	rawMaterialHandler := NewRawMaterialHandler(deps.RawMaterialUC)
	rawMaterials.Post("/", rawMaterialHandler.Create)
	rawMaterials.Get("/", rawMaterialHandler.List)
	rawMaterials.Get("/:id", rawMaterialHandler.GetByID)

	// Customers (protegido, fidelidad)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)

	// Inventory (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.InventoryQueries)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/stock", inventoryHandler.ListStock)

	// Sales (protegido)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SalesUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/refund", saleHandler.Refund)
	salesGroup.Post("/:id/cancel", saleHandler.Cancel)
	salesGroup.Patch("/:id/status", saleHandler.UpdateStatus)

	// Shifts (protegido)
	shiftsGroup := protected.Group("/shifts")
	shiftHandler := NewShiftHandler(deps.ShiftUC)
	shiftsGroup.Post("/", shiftHandler.Open)
	shiftsGroup.Get("/", shiftHandler.List)
	shiftsGroup.Get("/:id", shiftHandler.GetByID)
	shiftsGroup.Post("/:id/close", shiftHandler.Close)
}
