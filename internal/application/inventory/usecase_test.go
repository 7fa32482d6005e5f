package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-pro/internal/application/inventory"
	"github.com/tu-usuario/pos-pro/internal/domain"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

const (
	testStoreID = "store-1"
	testUserID  = "user-1"
)

func newMovementFixture(t *testing.T) (*memory.Store, *inventory.RegisterMovementUseCase) {
	t.Helper()
	ms := memory.NewStore()
	now := time.Now()

	storeRepo := memory.NewStoreRepository(ms)
	require.NoError(t, storeRepo.Create(&entity.Store{ID: testStoreID, Name: "Sucursal Centro", CreatedAt: now, UpdatedAt: now}))

	rawRepo := memory.NewRawMaterialRepository(ms)
	require.NoError(t, rawRepo.Create(&entity.RawMaterial{ID: "harina", StoreID: testStoreID, Name: "Harina", Unit: "kg", CreatedAt: now, UpdatedAt: now}))

	itemRepo := memory.NewItemRepository(ms)
	require.NoError(t, itemRepo.Create(&entity.Item{ID: "soda", StoreID: testStoreID, SKU: "SODA-01", Name: "Soda", Price: d("2.50"), CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, itemRepo.Create(&entity.Item{ID: "burger", StoreID: testStoreID, SKU: "BURGER-01", Name: "Hamburguesa", Price: d("12.50"), IsComposite: true, CreatedAt: now, UpdatedAt: now}))

	uc := inventory.NewRegisterMovementUseCase(ms, itemRepo, rawRepo, storeRepo)
	return ms, uc
}

// Una entrada (IN) sobre una entidad sin fila previa crea el saldo desde cero.
func TestRegisterMovement_EntradaCreaSaldo(t *testing.T) {
	ms, uc := newMovementFixture(t)

	newQty, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		StoreID: testStoreID, UserID: testUserID,
		EntityKind: entity.StockKindRawMaterial, EntityID: "harina",
		Type: entity.MovementTypeIN, Quantity: d("50"),
	})
	require.NoError(t, err)
	assert.True(t, newQty.Equal(d("50")))

	movements, err := memory.NewMovementRepository(ms).ListByStore(testStoreID, 10, 0)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, entity.MovementTypeIN, movements[0].Type)
	assert.True(t, movements[0].Quantity.Equal(d("50")))
	assert.NotEmpty(t, movements[0].TransactionID)
}

// Una salida (OUT) que cruzaría cero falla sin mutar nada.
func TestRegisterMovement_SalidaNoCruzaCero(t *testing.T) {
	ms, uc := newMovementFixture(t)
	ctx := context.Background()

	_, err := uc.RegisterMovement(ctx, inventory.MovementInput{
		StoreID: testStoreID, UserID: testUserID,
		EntityKind: entity.StockKindRawMaterial, EntityID: "harina",
		Type: entity.MovementTypeIN, Quantity: d("10"),
	})
	require.NoError(t, err)

	_, err = uc.RegisterMovement(ctx, inventory.MovementInput{
		StoreID: testStoreID, UserID: testUserID,
		EntityKind: entity.StockKindRawMaterial, EntityID: "harina",
		Type: entity.MovementTypeOUT, Quantity: d("10.5"),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	stock, err := memory.NewStockRepository(ms).Get(testStoreID, entity.StockKindRawMaterial, "harina")
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(d("10")), "el saldo no debe cambiar tras la falla")

	movements, err := memory.NewMovementRepository(ms).ListByStore(testStoreID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, movements, 1, "la salida fallida no deja movimiento")
}

// Un ítem compuesto no tiene stock propio: los movimientos se rechazan.
func TestRegisterMovement_CompuestoRechazado(t *testing.T) {
	_, uc := newMovementFixture(t)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		StoreID: testStoreID, UserID: testUserID,
		EntityKind: entity.StockKindProduct, EntityID: "burger",
		Type: entity.MovementTypeIN, Quantity: d("5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Validaciones de entrada.
func TestRegisterMovement_EntradasInvalidas(t *testing.T) {
	_, uc := newMovementFixture(t)
	ctx := context.Background()

	_, err := uc.RegisterMovement(ctx, inventory.MovementInput{
		StoreID: testStoreID, UserID: testUserID,
		EntityKind: entity.StockKindRawMaterial, EntityID: "harina",
		Type: "TRANSFER", Quantity: d("5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido")

	_, err = uc.RegisterMovement(ctx, inventory.MovementInput{
		StoreID: testStoreID, UserID: testUserID,
		EntityKind: entity.StockKindRawMaterial, EntityID: "harina",
		Type: entity.MovementTypeIN, Quantity: d("-3"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad no positiva")

	_, err = uc.RegisterMovement(ctx, inventory.MovementInput{
		StoreID: testStoreID, UserID: testUserID,
		EntityKind: entity.StockKindRawMaterial, EntityID: "no-existe",
		Type: entity.MovementTypeIN, Quantity: d("3"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "entidad inexistente")
}
