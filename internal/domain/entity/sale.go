package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus estado del ciclo de vida de una venta.
type SaleStatus string

// Estados de una venta. PENDING es el inicial para pedidos sin pago inmediato;
// REFUNDED y CANCELLED son terminales.
const (
	SaleStatusPending   SaleStatus = "PENDING"
	SaleStatusPreparing SaleStatus = "PREPARING"
	SaleStatusReady     SaleStatus = "READY"
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
	SaleStatusRefunded  SaleStatus = "REFUNDED"
)

// saleTransitions tabla explícita de transiciones permitidas (estado origen → destinos).
// REFUNDED solo es alcanzable desde COMPLETED; CANCELLED desde cualquier estado
// no terminal previo al cobro.
var saleTransitions = map[SaleStatus][]SaleStatus{
	SaleStatusPending:   {SaleStatusPreparing, SaleStatusReady, SaleStatusCompleted, SaleStatusCancelled},
	SaleStatusPreparing: {SaleStatusReady, SaleStatusCompleted, SaleStatusCancelled},
	SaleStatusReady:     {SaleStatusCompleted, SaleStatusCancelled},
	SaleStatusCompleted: {SaleStatusRefunded},
	SaleStatusCancelled: {},
	SaleStatusRefunded:  {},
}

// Valid indica si el estado es uno de los definidos.
func (s SaleStatus) Valid() bool {
	_, ok := saleTransitions[s]
	return ok
}

// IsTerminal indica si desde el estado no existe ninguna transición.
func (s SaleStatus) IsTerminal() bool {
	return len(saleTransitions[s]) == 0 && s.Valid()
}

// CanTransitionTo consulta la tabla de transiciones.
func (s SaleStatus) CanTransitionTo(target SaleStatus) bool {
	for _, t := range saleTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Tipos de descuento aplicables a una venta.
const (
	DiscountTypeFixed      = "FIXED"
	DiscountTypePercentage = "PERCENTAGE"
)

// Discount descriptor del descuento aplicado a la venta completa.
type Discount struct {
	Type  string // FIXED | PERCENTAGE
	Value decimal.Decimal
}

// Tipos de pago soportados.
const (
	PaymentTypeCash     = "cash"
	PaymentTypeCard     = "card"
	PaymentTypeTransfer = "transfer"
)

// Payment un pago registrado sobre una venta.
type Payment struct {
	ID        string
	SaleID    string
	Type      string
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// SaleItemComponent consumo de inventario de una línea, resuelto y congelado al
// momento de la venta. La devolución restaura exactamente estas cantidades
// aunque la receta haya cambiado después.
type SaleItemComponent struct {
	SaleItemID string
	EntityKind string
	EntityID   string
	Quantity   decimal.Decimal // total consumido (por la cantidad completa de la línea)
}

// SaleItem una línea comprometida de la venta, con precio congelado.
type SaleItem struct {
	ID         string
	SaleID     string
	ItemID     string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal // precio al momento de la venta, no se recalcula
	Components []SaleItemComponent
}

// Sale agregado de venta. Inmutable una vez confirmada: después del commit solo
// cambian el estado y los metadatos de devolución.
type Sale struct {
	ID             string
	StoreID        string
	CustomerID     string // vacío = venta sin cliente
	Subtotal       decimal.Decimal
	DiscountType   string
	DiscountValue  decimal.Decimal
	DiscountAmount decimal.Decimal
	Tax            decimal.Decimal
	GrandTotal     decimal.Decimal
	Status         SaleStatus
	PointsAccrued  int64 // puntos de fidelidad otorgados (0 si no hubo acumulación)
	RefundReason   string
	RefundedBy     string
	ApprovedBy     string
	Items          []SaleItem
	Payments       []Payment
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PaymentsTotal suma de los pagos registrados.
func (s *Sale) PaymentsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// CashPaymentsTotal suma de los pagos en efectivo (para el arqueo de caja).
func (s *Sale) CashPaymentsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.Payments {
		if p.Type == PaymentTypeCash {
			total = total.Add(p.Amount)
		}
	}
	return total
}
