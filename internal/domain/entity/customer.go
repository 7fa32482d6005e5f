package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Niveles de fidelidad, ordenados por gasto acumulado.
const (
	TierStandard = "STANDARD"
	TierSilver   = "SILVER"
	TierGold     = "GOLD"
	TierPlatinum = "PLATINUM"
)

// Customer representa un cliente de la tienda con su estado de fidelidad.
// El nivel (Tier) es función pura del gasto acumulado: se recalcula en cada
// mutación, nunca se incrementa directamente.
type Customer struct {
	ID            string
	StoreID       string
	Name          string
	Email         string
	Phone         string
	LoyaltyPoints int64
	TotalSpent    decimal.Decimal
	Tier          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
