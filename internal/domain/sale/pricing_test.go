package sale_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/domain/sale"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Carrito de 1000 con 10% de descuento y 7.5% de impuesto:
// descuento 100, impuesto sobre 900 = 67.5, total 967.5.
func TestComputeTotals_DescuentoPorcentajeConImpuesto(t *testing.T) {
	lines := []sale.PriceLine{
		{UnitPrice: d("250"), Quantity: d("4")},
	}
	discount := &entity.Discount{Type: entity.DiscountTypePercentage, Value: d("10")}

	totals := sale.ComputeTotals(lines, discount, d("0.075"))

	assert.True(t, totals.Subtotal.Equal(d("1000")), "subtotal: %s", totals.Subtotal)
	assert.True(t, totals.DiscountAmount.Equal(d("100")), "descuento: %s", totals.DiscountAmount)
	assert.True(t, totals.Tax.Equal(d("67.5")), "impuesto: %s", totals.Tax)
	assert.True(t, totals.GrandTotal.Equal(d("967.5")), "total: %s", totals.GrandTotal)
}

// Sin descuento ni impuesto el total es el subtotal.
func TestComputeTotals_SinDescuentoNiImpuesto(t *testing.T) {
	lines := []sale.PriceLine{
		{UnitPrice: d("12.50"), Quantity: d("2")},
		{UnitPrice: d("3.75"), Quantity: d("1")},
	}
	totals := sale.ComputeTotals(lines, nil, decimal.Zero)

	assert.True(t, totals.Subtotal.Equal(d("28.75")))
	assert.True(t, totals.DiscountAmount.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.GrandTotal.Equal(d("28.75")))
}

// Un descuento FIXED mayor que el subtotal se acota al subtotal: el impuesto y
// el total quedan en cero, nunca negativos.
func TestComputeTotals_DescuentoFijoMayorQueSubtotal(t *testing.T) {
	lines := []sale.PriceLine{{UnitPrice: d("50"), Quantity: d("1")}}
	discount := &entity.Discount{Type: entity.DiscountTypeFixed, Value: d("80")}

	totals := sale.ComputeTotals(lines, discount, d("0.075"))

	assert.True(t, totals.DiscountAmount.Equal(d("50")))
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.GrandTotal.IsZero())
}

// Descuento del 100%: total cero.
func TestComputeTotals_DescuentoCienPorciento(t *testing.T) {
	lines := []sale.PriceLine{{UnitPrice: d("200"), Quantity: d("3")}}
	discount := &entity.Discount{Type: entity.DiscountTypePercentage, Value: d("100")}

	totals := sale.ComputeTotals(lines, discount, d("0.075"))

	assert.True(t, totals.DiscountAmount.Equal(d("600")))
	assert.True(t, totals.GrandTotal.IsZero())
}

// El total se redondea a 2 decimales (half-up).
func TestComputeTotals_RedondeoDelTotal(t *testing.T) {
	lines := []sale.PriceLine{{UnitPrice: d("9.99"), Quantity: d("3")}}

	totals := sale.ComputeTotals(lines, nil, d("0.075"))

	// 29.97 × 1.075 = 32.217750 → 32.22
	assert.True(t, totals.GrandTotal.Equal(d("32.22")), "total: %s", totals.GrandTotal)
}
