package sales_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-pro/internal/application/dto"
	"github.com/tu-usuario/pos-pro/internal/domain"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/infrastructure/memory"
)

// Flujo de cocina: PENDING → PREPARING → READY → COMPLETED con cobro al final.
func TestUpdateStatus_FlujoDeCocina(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pending, err := f.uc.CreateSale(ctx, testStoreID, testUserID, dto.CreateSaleRequest{
		CustomerID: testCustomerID,
		Lines:      []dto.SaleLineRequest{{ItemID: "burger", Quantity: d("2")}},
	})
	require.NoError(t, err)

	resp, err := f.uc.UpdateStatus(ctx, testStoreID, testUserID, pending.ID, dto.UpdateSaleStatusRequest{Status: "PREPARING"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.SaleStatusPreparing), resp.Status)

	resp, err = f.uc.UpdateStatus(ctx, testStoreID, testUserID, pending.ID, dto.UpdateSaleStatusRequest{Status: "READY"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.SaleStatusReady), resp.Status)

	// Cobro: total 2×12.50×1.075 = 26.88
	resp, err = f.uc.UpdateStatus(ctx, testStoreID, testUserID, pending.ID, dto.UpdateSaleStatusRequest{
		Status:   "COMPLETED",
		Payments: []dto.PaymentRequest{{Type: entity.PaymentTypeCash, Amount: d("30")}},
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.SaleStatusCompleted), resp.Status)
	assert.True(t, resp.Change.Equal(d("3.12")), "cambio: %s", resp.Change)

	// El cobro tardío también acumula fidelidad.
	customer, err := memory.NewCustomerRepository(f.store).GetByID(testCustomerID)
	require.NoError(t, err)
	assert.Equal(t, int64(26), customer.LoyaltyPoints)
}

// Completar sin pagos suficientes se rechaza.
func TestUpdateStatus_CompletarExigePagoTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pending, err := f.uc.CreateSale(ctx, testStoreID, testUserID, dto.CreateSaleRequest{
		Lines: []dto.SaleLineRequest{{ItemID: "burger", Quantity: d("2")}},
	})
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(ctx, testStoreID, testUserID, pending.ID, dto.UpdateSaleStatusRequest{
		Status:   "COMPLETED",
		Payments: []dto.PaymentRequest{{Type: entity.PaymentTypeCash, Amount: d("10")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	sale, err := memory.NewSaleRepository(f.store).GetByID(pending.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusPending, sale.Status)
	assert.Empty(t, sale.Payments, "los pagos rechazados no deben quedar adjuntos")
}

// Transiciones fuera de la tabla se rechazan.
func TestUpdateStatus_TransicionInvalida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sale := completedBurgerSale(t, f)

	_, err := f.uc.UpdateStatus(ctx, testStoreID, testUserID, sale.ID, dto.UpdateSaleStatusRequest{Status: "PREPARING"})
	assert.ErrorIs(t, err, domain.ErrInvalidState, "COMPLETED no regresa a PREPARING")

	_, err = f.uc.UpdateStatus(ctx, testStoreID, testUserID, sale.ID, dto.UpdateSaleStatusRequest{Status: "REFUNDED"})
	assert.ErrorIs(t, err, domain.ErrInvalidState, "REFUNDED solo vía devolución")

	_, err = f.uc.UpdateStatus(ctx, testStoreID, testUserID, sale.ID, dto.UpdateSaleStatusRequest{Status: "INVENTADO"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Pasar a CANCELLED por cambio de estado delega en la cancelación y restaura stock.
func TestUpdateStatus_CancelledRestauraInventario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pending, err := f.uc.CreateSale(ctx, testStoreID, testUserID, dto.CreateSaleRequest{
		Lines: []dto.SaleLineRequest{{ItemID: "burger", Quantity: d("5")}},
	})
	require.NoError(t, err)

	resp, err := f.uc.UpdateStatus(ctx, testStoreID, testUserID, pending.ID, dto.UpdateSaleStatusRequest{Status: "CANCELLED"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.SaleStatusCancelled), resp.Status)
	assert.True(t, f.stockOf(t, entity.StockKindRawMaterial, "harina").Equal(d("50")))
}

// GetSale y ListSales respetan la pertenencia a la tienda.
func TestGetSale_PertenenciaDeTienda(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sale := completedBurgerSale(t, f)

	_, err := f.uc.GetSale(ctx, "store-2", sale.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := f.uc.GetSale(ctx, testStoreID, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.ID, got.ID)
	require.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].UnitPrice.Equal(d("12.50")), "el precio queda congelado")

	list, err := f.uc.ListSales(ctx, testStoreID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
