package sale

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
)

// PriceLine entrada del calculador: precio unitario vigente y cantidad.
type PriceLine struct {
	UnitPrice decimal.Decimal
	Quantity  decimal.Decimal
}

// Totals resultado del cálculo de totales de una venta.
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Tax            decimal.Decimal
	GrandTotal     decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// ComputeTotals calcula subtotal, descuento, impuesto y total de un carrito
// (servicio de dominio, puro).
//
//	subtotal   = Σ(precio unitario × cantidad)
//	descuento  = FIXED: min(valor, subtotal); PERCENTAGE: subtotal × valor/100,
//	             acotado a [0, subtotal]; nunca produce total negativo
//	impuesto   = (subtotal − descuento) × taxRate
//	total      = subtotal − descuento + impuesto, redondeado a 2 decimales (half-up)
func ComputeTotals(lines []PriceLine, discount *entity.Discount, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.UnitPrice.Mul(l.Quantity))
	}

	discountAmount := decimal.Zero
	if discount != nil {
		switch discount.Type {
		case entity.DiscountTypeFixed:
			discountAmount = discount.Value
		case entity.DiscountTypePercentage:
			discountAmount = subtotal.Mul(discount.Value).Div(hundred)
		}
		if discountAmount.LessThan(decimal.Zero) {
			discountAmount = decimal.Zero
		}
		if discountAmount.GreaterThan(subtotal) {
			discountAmount = subtotal
		}
	}

	taxedBase := subtotal.Sub(discountAmount)
	tax := taxedBase.Mul(taxRate)
	grandTotal := taxedBase.Add(tax).Round(2)

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		Tax:            tax,
		GrandTotal:     grandTotal,
	}
}
