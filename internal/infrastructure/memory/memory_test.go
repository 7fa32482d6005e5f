package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/domain/repository"
	"github.com/tu-usuario/pos-pro/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleSale() *entity.Sale {
	return &entity.Sale{
		ID:         "sale-1",
		StoreID:    "store-1",
		Subtotal:   d("25"),
		GrandTotal: d("26.88"),
		Status:     entity.SaleStatusCompleted,
		Items: []entity.SaleItem{{
			ID:        "li-1",
			SaleID:    "sale-1",
			ItemID:    "burger",
			Quantity:  d("2"),
			UnitPrice: d("12.50"),
			Components: []entity.SaleItemComponent{{
				SaleItemID: "li-1",
				EntityKind: entity.StockKindRawMaterial,
				EntityID:   "harina",
				Quantity:   d("0.4"),
			}},
		}},
		Payments: []entity.Payment{{
			ID:        "pay-1",
			SaleID:    "sale-1",
			Type:      entity.PaymentTypeCash,
			Amount:    d("26.88"),
			CreatedAt: time.Now(),
		}},
		CreatedAt: time.Now(),
	}
}

// Lo que devuelve el repositorio es una copia: mutarla no toca el agregado
// almacenado, ni sus renglones, componentes o pagos.
func TestSaleRepo_GetByID_DevuelveCopiaIndependiente(t *testing.T) {
	ms := memory.NewStore()
	repo := memory.NewSaleRepository(ms)
	require.NoError(t, repo.Create(sampleSale()))

	got, err := repo.GetByID("sale-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	got.Status = entity.SaleStatusRefunded
	got.Items[0].Components[0].Quantity = d("999")
	got.Payments[0].Amount = d("0")

	again, err := repo.GetByID("sale-1")
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCompleted, again.Status)
	assert.True(t, again.Items[0].Components[0].Quantity.Equal(d("0.4")))
	assert.True(t, again.Payments[0].Amount.Equal(d("26.88")))
}

// Una transacción que falla descarta todos sus cambios: ni stock, ni
// movimientos, ni venta llegan al estado del padre.
func TestStore_RunSale_ErrorDescartaCambios(t *testing.T) {
	ms := memory.NewStore()
	require.NoError(t, memory.NewStockRepository(ms).Upsert(&entity.Stock{
		StoreID:    "store-1",
		EntityKind: entity.StockKindRawMaterial,
		EntityID:   "harina",
		Quantity:   d("50"),
	}))

	fallo := errors.New("fallo simulado")
	err := ms.RunSale(context.Background(), func(
		stockRepo repository.StockRepository,
		movRepo repository.MovementRepository,
		saleRepo repository.SaleRepository,
		customerRepo repository.CustomerRepository,
	) error {
		if err := stockRepo.Upsert(&entity.Stock{
			StoreID:    "store-1",
			EntityKind: entity.StockKindRawMaterial,
			EntityID:   "harina",
			Quantity:   d("10"),
		}); err != nil {
			return err
		}
		if err := saleRepo.Create(sampleSale()); err != nil {
			return err
		}
		return fallo
	})
	require.ErrorIs(t, err, fallo)

	stock, err := memory.NewStockRepository(ms).Get("store-1", entity.StockKindRawMaterial, "harina")
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(d("50")), "el stock no debe cambiar: %s", stock.Quantity)

	sale, err := memory.NewSaleRepository(ms).GetByID("sale-1")
	require.NoError(t, err)
	assert.Nil(t, sale)
}

// La misma transacción, sin error, confirma todos los cambios juntos.
func TestStore_RunSale_CommitPersisteTodo(t *testing.T) {
	ms := memory.NewStore()

	err := ms.RunSale(context.Background(), func(
		stockRepo repository.StockRepository,
		movRepo repository.MovementRepository,
		saleRepo repository.SaleRepository,
		customerRepo repository.CustomerRepository,
	) error {
		if err := stockRepo.Upsert(&entity.Stock{
			StoreID:    "store-1",
			EntityKind: entity.StockKindRawMaterial,
			EntityID:   "harina",
			Quantity:   d("49.6"),
		}); err != nil {
			return err
		}
		return saleRepo.Create(sampleSale())
	})
	require.NoError(t, err)

	stock, err := memory.NewStockRepository(ms).Get("store-1", entity.StockKindRawMaterial, "harina")
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(d("49.6")))

	sale, err := memory.NewSaleRepository(ms).GetByID("sale-1")
	require.NoError(t, err)
	require.NotNil(t, sale)
	assert.Len(t, sale.Items, 1)
	assert.Len(t, sale.Payments, 1)
}
