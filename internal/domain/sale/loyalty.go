package sale

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
)

// TierThresholds cortes de gasto acumulado para cada nivel de fidelidad.
type TierThresholds struct {
	Silver   decimal.Decimal
	Gold     decimal.Decimal
	Platinum decimal.Decimal
}

// TierFor devuelve el nivel que corresponde a un gasto acumulado.
// El nivel se deriva siempre del gasto, nunca se almacena de forma
// independiente: tras cualquier secuencia de acumulaciones y reversas
// el nivel queda autocorregido.
func TierFor(totalSpent decimal.Decimal, t TierThresholds) string {
	switch {
	case totalSpent.GreaterThanOrEqual(t.Platinum):
		return entity.TierPlatinum
	case totalSpent.GreaterThanOrEqual(t.Gold):
		return entity.TierGold
	case totalSpent.GreaterThanOrEqual(t.Silver):
		return entity.TierSilver
	default:
		return entity.TierStandard
	}
}

// AccruePoints puntos otorgados por una venta: floor(monto × puntos por unidad monetaria).
func AccruePoints(amount, pointsPerUnit decimal.Decimal) int64 {
	return amount.Mul(pointsPerUnit).Floor().IntPart()
}

// Accrue aplica una venta confirmada al estado de fidelidad del cliente
// (mutación in situ): suma puntos y gasto, y recalcula el nivel.
func Accrue(c *entity.Customer, amount, pointsPerUnit decimal.Decimal, t TierThresholds) int64 {
	points := AccruePoints(amount, pointsPerUnit)
	c.LoyaltyPoints += points
	c.TotalSpent = c.TotalSpent.Add(amount)
	c.Tier = TierFor(c.TotalSpent, t)
	return points
}

// Reverse revierte una acumulación previa: resta los puntos otorgados (con piso
// en cero, los puntos no pueden quedar negativos), resta el monto del gasto
// acumulado (también con piso en cero) y recalcula el nivel.
func Reverse(c *entity.Customer, amount decimal.Decimal, points int64, t TierThresholds) {
	c.LoyaltyPoints -= points
	if c.LoyaltyPoints < 0 {
		c.LoyaltyPoints = 0
	}
	c.TotalSpent = c.TotalSpent.Sub(amount)
	if c.TotalSpent.LessThan(decimal.Zero) {
		c.TotalSpent = decimal.Zero
	}
	c.Tier = TierFor(c.TotalSpent, t)
}
