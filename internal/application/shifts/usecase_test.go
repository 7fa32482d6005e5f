package shifts_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-pro/internal/application/dto"
	"github.com/tu-usuario/pos-pro/internal/application/shifts"
	"github.com/tu-usuario/pos-pro/internal/domain"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

const (
	testStoreID   = "store-1"
	testCashierID = "cashier-1"
)

func newShiftFixture(t *testing.T) (*memory.Store, *shifts.UseCase) {
	t.Helper()
	ms := memory.NewStore()
	storeRepo := memory.NewStoreRepository(ms)
	now := time.Now()
	require.NoError(t, storeRepo.Create(&entity.Store{ID: testStoreID, Name: "Sucursal Centro", CreatedAt: now, UpdatedAt: now}))
	uc := shifts.New(memory.NewShiftRepository(ms), memory.NewSaleRepository(ms), storeRepo)
	return ms, uc
}

// seedSale inserta una venta directa con los pagos dados.
func seedSale(t *testing.T, ms *memory.Store, id string, status entity.SaleStatus, createdAt time.Time, payments ...entity.Payment) {
	t.Helper()
	require.NoError(t, memory.NewSaleRepository(ms).Create(&entity.Sale{
		ID:        id,
		StoreID:   testStoreID,
		Status:    status,
		Payments:  payments,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}))
}

// El cierre concilia: esperado = base + efectivo de ventas COMPLETED del turno.
// Tarjeta, ventas de antes del turno y ventas devueltas quedan fuera.
func TestClose_ConciliaEfectivoEsperado(t *testing.T) {
	ms, uc := newShiftFixture(t)
	ctx := context.Background()

	// Venta anterior a la apertura: su efectivo no pertenece a este turno.
	seedSale(t, ms, "sale-old", entity.SaleStatusCompleted, time.Now().Add(-time.Hour),
		entity.Payment{ID: "p0", SaleID: "sale-old", Type: entity.PaymentTypeCash, Amount: d("99")})

	shift, err := uc.Open(ctx, testStoreID, testCashierID, dto.OpenShiftRequest{OpeningFloat: d("100")})
	require.NoError(t, err)

	now := time.Now()
	seedSale(t, ms, "sale-1", entity.SaleStatusCompleted, now,
		entity.Payment{ID: "p1", SaleID: "sale-1", Type: entity.PaymentTypeCash, Amount: d("30")},
		entity.Payment{ID: "p2", SaleID: "sale-1", Type: entity.PaymentTypeCard, Amount: d("50")})
	seedSale(t, ms, "sale-2", entity.SaleStatusCompleted, now,
		entity.Payment{ID: "p3", SaleID: "sale-2", Type: entity.PaymentTypeCash, Amount: d("20")})
	// Devuelta durante el turno: su efectivo ya salió de la caja.
	seedSale(t, ms, "sale-3", entity.SaleStatusRefunded, now,
		entity.Payment{ID: "p4", SaleID: "sale-3", Type: entity.PaymentTypeCash, Amount: d("40")})

	closed, err := uc.Close(ctx, testStoreID, shift.ID, dto.CloseShiftRequest{CountedCash: d("148.50")})
	require.NoError(t, err)

	assert.True(t, closed.ExpectedCash.Equal(d("150")), "esperado: %s", closed.ExpectedCash)
	assert.True(t, closed.Variance.Equal(d("-1.50")), "desvío: %s", closed.Variance)
	assert.Equal(t, entity.ShiftStatusClosed, closed.Status)
	assert.NotEmpty(t, closed.ClosedAt)
}

// Solo un turno abierto por cajero y tienda.
func TestOpen_UnTurnoAbiertoPorCajero(t *testing.T) {
	_, uc := newShiftFixture(t)
	ctx := context.Background()

	_, err := uc.Open(ctx, testStoreID, testCashierID, dto.OpenShiftRequest{OpeningFloat: d("100")})
	require.NoError(t, err)

	_, err = uc.Open(ctx, testStoreID, testCashierID, dto.OpenShiftRequest{OpeningFloat: d("50")})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Otro cajero sí puede abrir el suyo.
	_, err = uc.Open(ctx, testStoreID, "cashier-2", dto.OpenShiftRequest{OpeningFloat: d("50")})
	assert.NoError(t, err)
}

// La base inicial no puede ser negativa.
func TestOpen_BaseNegativa(t *testing.T) {
	_, uc := newShiftFixture(t)
	_, err := uc.Open(context.Background(), testStoreID, testCashierID, dto.OpenShiftRequest{OpeningFloat: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un turno cerrado no se cierra dos veces.
func TestClose_TurnoYaCerrado(t *testing.T) {
	_, uc := newShiftFixture(t)
	ctx := context.Background()

	shift, err := uc.Open(ctx, testStoreID, testCashierID, dto.OpenShiftRequest{OpeningFloat: d("100")})
	require.NoError(t, err)

	_, err = uc.Close(ctx, testStoreID, shift.ID, dto.CloseShiftRequest{CountedCash: d("100")})
	require.NoError(t, err)

	_, err = uc.Close(ctx, testStoreID, shift.ID, dto.CloseShiftRequest{CountedCash: d("100")})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// Cerrar el turno de otra tienda está prohibido.
func TestClose_TiendaAjena(t *testing.T) {
	_, uc := newShiftFixture(t)
	ctx := context.Background()

	shift, err := uc.Open(ctx, testStoreID, testCashierID, dto.OpenShiftRequest{OpeningFloat: d("100")})
	require.NoError(t, err)

	_, err = uc.Close(ctx, "store-2", shift.ID, dto.CloseShiftRequest{CountedCash: d("100")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
