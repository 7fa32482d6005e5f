package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/pos-pro/internal/application/dto"
	"github.com/tu-usuario/pos-pro/internal/application/sales"
	"github.com/tu-usuario/pos-pro/internal/domain"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	domsale "github.com/tu-usuario/pos-pro/internal/domain/sale"
	"github.com/tu-usuario/pos-pro/internal/infrastructure/memory"
	"github.com/tu-usuario/pos-pro/pkg/logger"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

const (
	testStoreID    = "store-1"
	testUserID     = "cashier-1"
	testCustomerID = "customer-1"
	testManagerPIN = "4321"
)

// fixture levanta el orquestador completo sobre el almacén en memoria, con una
// tienda sembrada: harina 50kg, carne 20kg, una hamburguesa compuesta
// (0.2 harina + 0.15 carne, precio 12.50), una soda simple (precio 2.50,
// stock 100) y un cliente sin historial.
type fixture struct {
	store *memory.Store
	uc    *sales.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ms := memory.NewStore()
	now := time.Now()

	storeRepo := memory.NewStoreRepository(ms)
	require.NoError(t, storeRepo.Create(&entity.Store{ID: testStoreID, Name: "Sucursal Centro", CreatedAt: now, UpdatedAt: now}))

	rawRepo := memory.NewRawMaterialRepository(ms)
	require.NoError(t, rawRepo.Create(&entity.RawMaterial{ID: "harina", StoreID: testStoreID, Name: "Harina", Unit: "kg", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, rawRepo.Create(&entity.RawMaterial{ID: "carne", StoreID: testStoreID, Name: "Carne molida", Unit: "kg", CreatedAt: now, UpdatedAt: now}))

	itemRepo := memory.NewItemRepository(ms)
	require.NoError(t, itemRepo.Create(&entity.Item{
		ID: "burger", StoreID: testStoreID, SKU: "BURGER-01", Name: "Hamburguesa",
		Price: d("12.50"), IsComposite: true, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, itemRepo.ReplaceRecipe("burger", []entity.RecipeLine{
		{ItemID: "burger", RawMaterialID: "harina", Quantity: d("0.2"), Position: 0},
		{ItemID: "burger", RawMaterialID: "carne", Quantity: d("0.15"), Position: 1},
	}))
	require.NoError(t, itemRepo.Create(&entity.Item{
		ID: "soda", StoreID: testStoreID, SKU: "SODA-01", Name: "Soda",
		Price: d("2.50"), IsComposite: false, CreatedAt: now, UpdatedAt: now,
	}))

	stockRepo := memory.NewStockRepository(ms)
	require.NoError(t, stockRepo.Upsert(&entity.Stock{StoreID: testStoreID, EntityKind: entity.StockKindRawMaterial, EntityID: "harina", Quantity: d("50"), UpdatedAt: now}))
	require.NoError(t, stockRepo.Upsert(&entity.Stock{StoreID: testStoreID, EntityKind: entity.StockKindRawMaterial, EntityID: "carne", Quantity: d("20"), UpdatedAt: now}))
	require.NoError(t, stockRepo.Upsert(&entity.Stock{StoreID: testStoreID, EntityKind: entity.StockKindProduct, EntityID: "soda", Quantity: d("100"), UpdatedAt: now}))

	customerRepo := memory.NewCustomerRepository(ms)
	require.NoError(t, customerRepo.Create(&entity.Customer{
		ID: testCustomerID, StoreID: testStoreID, Name: "Ana Rojas",
		TotalSpent: decimal.Zero, Tier: entity.TierStandard, CreatedAt: now, UpdatedAt: now,
	}))

	pinHash, err := bcrypt.GenerateFromPassword([]byte(testManagerPIN), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := sales.Config{
		TaxRate:       d("0.075"),
		PointsPerUnit: decimal.NewFromInt(1),
		Tiers: domsale.TierThresholds{
			Silver:   decimal.NewFromInt(1000),
			Gold:     decimal.NewFromInt(5000),
			Platinum: decimal.NewFromInt(20000),
		},
		ManagerPINHash: string(pinHash),
	}
	uc := sales.New(ms, storeRepo, itemRepo, customerRepo, memory.NewSaleRepository(ms), cfg, logger.Nop())
	return &fixture{store: ms, uc: uc}
}

func (f *fixture) stockOf(t *testing.T, kind, id string) decimal.Decimal {
	t.Helper()
	s, err := memory.NewStockRepository(f.store).Get(testStoreID, kind, id)
	require.NoError(t, err)
	return s.Quantity
}

// Vender 10 hamburguesas descuenta las materias primas de la receta y nunca el
// stock propio del compuesto: harina 50→48, carne 20→18.5.
func TestCreateSale_CompuestoDescuentaMateriasPrimas(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.CreateSale(context.Background(), testStoreID, testUserID, dto.CreateSaleRequest{
		Lines:    []dto.SaleLineRequest{{ItemID: "burger", Quantity: d("10")}},
		Payments: []dto.PaymentRequest{{Type: entity.PaymentTypeCash, Amount: d("140")}},
	})
	require.NoError(t, err)

	// subtotal 125, impuesto 7.5% = 9.375, total redondeado 134.38
	assert.True(t, resp.Subtotal.Equal(d("125")), "subtotal: %s", resp.Subtotal)
	assert.True(t, resp.GrandTotal.Equal(d("134.38")), "total: %s", resp.GrandTotal)
	assert.True(t, resp.Change.Equal(d("5.62")), "cambio: %s", resp.Change)
	assert.Equal(t, string(entity.SaleStatusCompleted), resp.Status)

	assert.True(t, f.stockOf(t, entity.StockKindRawMaterial, "harina").Equal(d("48")))
	assert.True(t, f.stockOf(t, entity.StockKindRawMaterial, "carne").Equal(d("18.5")))
	assert.True(t, f.stockOf(t, entity.StockKindProduct, "burger").IsZero(), "el compuesto no tiene stock propio")

	// Bitácora: cada deducción queda registrada bajo el ID de la venta.
	movements, err := memory.NewMovementRepository(f.store).ListByTransaction(resp.ID)
	require.NoError(t, err)
	assert.Len(t, movements, 2)
	for _, m := range movements {
		assert.Equal(t, entity.MovementTypeOUT, m.Type)
		assert.Equal(t, testUserID, m.CreatedBy)
	}

	// El pago persistido queda con tipo, monto y fecha.
	persisted, err := memory.NewSaleRepository(f.store).GetByID(resp.ID)
	require.NoError(t, err)
	require.Len(t, persisted.Payments, 1)
	assert.Equal(t, entity.PaymentTypeCash, persisted.Payments[0].Type)
	assert.True(t, persisted.Payments[0].Amount.Equal(d("140")))
	assert.False(t, persisted.Payments[0].CreatedAt.IsZero())
}

// Stock insuficiente: nada cambia. Ni saldo, ni movimientos, ni venta.
func TestCreateSale_StockInsuficienteNoDejaEfectoParcial(t *testing.T) {
	f := newFixture(t)

	// 200 hamburguesas piden 30kg de carne y solo hay 20.
	_, err := f.uc.CreateSale(context.Background(), testStoreID, testUserID, dto.CreateSaleRequest{
		Lines:    []dto.SaleLineRequest{{ItemID: "burger", Quantity: d("200")}},
		Payments: []dto.PaymentRequest{{Type: entity.PaymentTypeCash, Amount: d("5000")}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, f.stockOf(t, entity.StockKindRawMaterial, "harina").Equal(d("50")))
	assert.True(t, f.stockOf(t, entity.StockKindRawMaterial, "carne").Equal(d("20")))

	salesList, err := memory.NewSaleRepository(f.store).ListByStore(testStoreID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, salesList)
	movements, err := memory.NewMovementRepository(f.store).ListByStore(testStoreID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, movements)
}

// Una línea válida junto a una inviable: la transacción revierte las dos.
func TestCreateSale_CarritoMixtoEsAtomico(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateSale(context.Background(), testStoreID, testUserID, dto.CreateSaleRequest{
		Lines: []dto.SaleLineRequest{
			{ItemID: "burger", Quantity: d("5")},
			{ItemID: "soda", Quantity: d("500")}, // solo hay 100
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, f.stockOf(t, entity.StockKindRawMaterial, "harina").Equal(d("50")),
		"la línea viable también debe revertirse")
	assert.True(t, f.stockOf(t, entity.StockKindProduct, "soda").Equal(d("100")))
}

// Dos líneas que comparten materia prima se deducen como una sola cantidad total.
func TestCreateSale_AgregaDeduccionesCompartidas(t *testing.T) {
	f := newFixture(t)
	now := time.Now()

	itemRepo := memory.NewItemRepository(f.store)
	require.NoError(t, itemRepo.Create(&entity.Item{
		ID: "pizza", StoreID: testStoreID, SKU: "PIZZA-01", Name: "Pizza",
		Price: d("20"), IsComposite: true, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, itemRepo.ReplaceRecipe("pizza", []entity.RecipeLine{
		{ItemID: "pizza", RawMaterialID: "harina", Quantity: d("0.5"), Position: 0},
	}))

	resp, err := f.uc.CreateSale(context.Background(), testStoreID, testUserID, dto.CreateSaleRequest{
		Lines: []dto.SaleLineRequest{
			{ItemID: "burger", Quantity: d("4")}, // 0.8 harina
			{ItemID: "pizza", Quantity: d("2")},  // 1.0 harina
		},
	})
	require.NoError(t, err)

	assert.True(t, f.stockOf(t, entity.StockKindRawMaterial, "harina").Equal(d("48.2")))

	// Un único movimiento de harina con la cantidad fusionada.
	movements, err := memory.NewMovementRepository(f.store).ListByTransaction(resp.ID)
	require.NoError(t, err)
	var harinaMovs int
	for _, m := range movements {
		if m.EntityID == "harina" {
			harinaMovs++
			assert.True(t, m.Quantity.Equal(d("-1.8")), "delta de harina: %s", m.Quantity)
		}
	}
	assert.Equal(t, 1, harinaMovs)
}

// Sin pagos la venta queda PENDING, sin pagos adjuntos y sin fidelidad, pero
// el inventario sí se compromete de inmediato.
func TestCreateSale_SinPagosQuedaPendiente(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.CreateSale(context.Background(), testStoreID, testUserID, dto.CreateSaleRequest{
		CustomerID: testCustomerID,
		Lines:      []dto.SaleLineRequest{{ItemID: "burger", Quantity: d("2")}},
	})
	require.NoError(t, err)

	assert.Equal(t, string(entity.SaleStatusPending), resp.Status)
	assert.Empty(t, resp.Payments)
	assert.Zero(t, resp.PointsAccrued)
	assert.True(t, f.stockOf(t, entity.StockKindRawMaterial, "harina").Equal(d("49.6")))

	customer, err := memory.NewCustomerRepository(f.store).GetByID(testCustomerID)
	require.NoError(t, err)
	assert.Zero(t, customer.LoyaltyPoints, "una venta no cobrada no acumula puntos")
}

// Pagos insuficientes equivalen a no pagar: PENDING y pagos descartados.
func TestCreateSale_PagoInsuficienteQuedaPendiente(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.CreateSale(context.Background(), testStoreID, testUserID, dto.CreateSaleRequest{
		Lines:    []dto.SaleLineRequest{{ItemID: "soda", Quantity: d("4")}},
		Payments: []dto.PaymentRequest{{Type: entity.PaymentTypeCard, Amount: d("5")}},
	})
	require.NoError(t, err)

	assert.Equal(t, string(entity.SaleStatusPending), resp.Status)
	assert.Empty(t, resp.Payments)
}

// Venta COMPLETED con cliente: acumula floor(total) puntos, suma el gasto y
// asciende de nivel al cruzar el corte.
func TestCreateSale_AcumulaFidelidad(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.CreateSale(context.Background(), testStoreID, testUserID, dto.CreateSaleRequest{
		CustomerID: testCustomerID,
		Lines:      []dto.SaleLineRequest{{ItemID: "burger", Quantity: d("80")}},
		Payments:   []dto.PaymentRequest{{Type: entity.PaymentTypeCard, Amount: d("1075")}},
	})
	require.NoError(t, err)

	// subtotal 1000, impuesto 75, total 1075 → 1075 puntos
	assert.True(t, resp.GrandTotal.Equal(d("1075")))
	assert.Equal(t, int64(1075), resp.PointsAccrued)

	customer, err := memory.NewCustomerRepository(f.store).GetByID(testCustomerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1075), customer.LoyaltyPoints)
	assert.True(t, customer.TotalSpent.Equal(d("1075")))
	assert.Equal(t, entity.TierSilver, customer.Tier)

	sale, err := memory.NewSaleRepository(f.store).GetByID(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1075), sale.PointsAccrued)
}

// Un cliente inexistente no bloquea la venta: continúa sin fidelidad.
func TestCreateSale_ClienteInexistenteNoBloquea(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.CreateSale(context.Background(), testStoreID, testUserID, dto.CreateSaleRequest{
		CustomerID: "no-existe",
		Lines:      []dto.SaleLineRequest{{ItemID: "soda", Quantity: d("1")}},
		Payments:   []dto.PaymentRequest{{Type: entity.PaymentTypeCash, Amount: d("10")}},
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.SaleStatusCompleted), resp.Status)
	assert.Empty(t, resp.CustomerID)
	assert.Zero(t, resp.PointsAccrued)
}

// Validaciones de entrada del carrito.
func TestCreateSale_EntradasInvalidas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateSale(ctx, testStoreID, testUserID, dto.CreateSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "carrito vacío")

	_, err = f.uc.CreateSale(ctx, testStoreID, testUserID, dto.CreateSaleRequest{
		Lines: []dto.SaleLineRequest{{ItemID: "soda", Quantity: d("0")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = f.uc.CreateSale(ctx, testStoreID, testUserID, dto.CreateSaleRequest{
		Lines: []dto.SaleLineRequest{{ItemID: "no-existe", Quantity: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "ítem inexistente")

	_, err = f.uc.CreateSale(ctx, testStoreID, testUserID, dto.CreateSaleRequest{
		Lines:    []dto.SaleLineRequest{{ItemID: "soda", Quantity: d("1")}},
		Payments: []dto.PaymentRequest{{Type: "cheque", Amount: d("10")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo de pago desconocido")

	_, err = f.uc.CreateSale(ctx, testStoreID, testUserID, dto.CreateSaleRequest{
		Lines:    []dto.SaleLineRequest{{ItemID: "soda", Quantity: d("1")}},
		Discount: &dto.DiscountRequest{Type: "BOGO", Value: d("1")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo de descuento desconocido")
}

// Un compuesto cuya receta fue vaciada es un defecto de configuración.
func TestCreateSale_CompuestoSinReceta(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, memory.NewItemRepository(f.store).ReplaceRecipe("burger", nil))

	_, err := f.uc.CreateSale(context.Background(), testStoreID, testUserID, dto.CreateSaleRequest{
		Lines: []dto.SaleLineRequest{{ItemID: "burger", Quantity: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

// El ítem de otra tienda no es visible ni vendible desde esta.
func TestCreateSale_ItemDeOtraTienda(t *testing.T) {
	f := newFixture(t)
	now := time.Now()
	storeRepo := memory.NewStoreRepository(f.store)
	require.NoError(t, storeRepo.Create(&entity.Store{ID: "store-2", Name: "Otra", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, memory.NewItemRepository(f.store).Create(&entity.Item{
		ID: "ajeno", StoreID: "store-2", SKU: "X-01", Name: "Ajeno", Price: d("1"), CreatedAt: now, UpdatedAt: now,
	}))

	_, err := f.uc.CreateSale(context.Background(), testStoreID, testUserID, dto.CreateSaleRequest{
		Lines: []dto.SaleLineRequest{{ItemID: "ajeno", Quantity: d("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
