package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un turno de caja.
const (
	ShiftStatusOpen   = "OPEN"
	ShiftStatusClosed = "CLOSED"
)

// Shift sesión de caja de un cajero. Referencia ventas pero no las posee:
// el efectivo esperado al cierre es la suma de pagos en efectivo de las ventas
// COMPLETED dentro de la ventana [OpenedAt, cierre).
type Shift struct {
	ID            string
	StoreID       string
	CashierID     string
	OpeningFloat  decimal.Decimal // base inicial de caja
	ExpectedCash  decimal.Decimal // calculado al cierre
	CountedCash   decimal.Decimal // declarado por el cajero al cierre
	Variance      decimal.Decimal // CountedCash - ExpectedCash
	Status        string
	OpenedAt      time.Time
	ClosedAt      *time.Time
}
