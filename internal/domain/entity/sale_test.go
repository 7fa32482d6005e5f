package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
)

// La tabla de transiciones es explícita: todo lo no listado está prohibido.
func TestSaleStatus_Transiciones(t *testing.T) {
	cases := []struct {
		from    entity.SaleStatus
		to      entity.SaleStatus
		allowed bool
	}{
		{entity.SaleStatusPending, entity.SaleStatusPreparing, true},
		{entity.SaleStatusPending, entity.SaleStatusReady, true},
		{entity.SaleStatusPending, entity.SaleStatusCompleted, true},
		{entity.SaleStatusPending, entity.SaleStatusCancelled, true},
		{entity.SaleStatusPending, entity.SaleStatusRefunded, false},
		{entity.SaleStatusPreparing, entity.SaleStatusReady, true},
		{entity.SaleStatusPreparing, entity.SaleStatusPending, false},
		{entity.SaleStatusReady, entity.SaleStatusCompleted, true},
		{entity.SaleStatusReady, entity.SaleStatusPreparing, false},
		{entity.SaleStatusCompleted, entity.SaleStatusRefunded, true},
		{entity.SaleStatusCompleted, entity.SaleStatusCancelled, false},
		{entity.SaleStatusCancelled, entity.SaleStatusPending, false},
		{entity.SaleStatusRefunded, entity.SaleStatusCompleted, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.allowed, c.from.CanTransitionTo(c.to), "%s → %s", c.from, c.to)
	}
}

func TestSaleStatus_Terminales(t *testing.T) {
	assert.True(t, entity.SaleStatusCancelled.IsTerminal())
	assert.True(t, entity.SaleStatusRefunded.IsTerminal())
	assert.False(t, entity.SaleStatusPending.IsTerminal())
	assert.False(t, entity.SaleStatusCompleted.IsTerminal())
}

func TestSaleStatus_Valid(t *testing.T) {
	assert.True(t, entity.SaleStatusPending.Valid())
	assert.False(t, entity.SaleStatus("PAUSED").Valid())
	assert.False(t, entity.SaleStatus("").IsTerminal(), "un estado desconocido no es terminal")
}

// CashPaymentsTotal solo suma pagos en efectivo.
func TestSale_CashPaymentsTotal(t *testing.T) {
	sale := &entity.Sale{
		Payments: []entity.Payment{
			{Type: entity.PaymentTypeCash, Amount: decimal.NewFromInt(30)},
			{Type: entity.PaymentTypeCard, Amount: decimal.NewFromInt(50)},
			{Type: entity.PaymentTypeCash, Amount: decimal.NewFromInt(20)},
		},
	}
	assert.True(t, sale.CashPaymentsTotal().Equal(decimal.NewFromInt(50)))
	assert.True(t, sale.PaymentsTotal().Equal(decimal.NewFromInt(100)))
}
