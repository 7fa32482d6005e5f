package dto

import "github.com/shopspring/decimal"

// SaleLineRequest una línea del carrito.
type SaleLineRequest struct {
	ItemID   string          `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// PaymentRequest un pago (cash, card, transfer).
type PaymentRequest struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// DiscountRequest descuento sobre la venta completa.
type DiscountRequest struct {
	Type  string          `json:"type"` // FIXED | PERCENTAGE
	Value decimal.Decimal `json:"value"`
}

// CreateSaleRequest crea una venta. Con pagos que cubren el total queda
// COMPLETED; sin pagos (o con pagos insuficientes) queda PENDING.
type CreateSaleRequest struct {
	CustomerID string            `json:"customer_id,omitempty"`
	Lines      []SaleLineRequest `json:"lines"`
	Payments   []PaymentRequest  `json:"payments,omitempty"`
	Discount   *DiscountRequest  `json:"discount,omitempty"`
}

// RefundSaleRequest devuelve una venta COMPLETED.
type RefundSaleRequest struct {
	Reason     string `json:"reason"`
	ApprovedBy string `json:"approved_by,omitempty"`
	ManagerPIN string `json:"manager_pin,omitempty"`
}

// UpdateSaleStatusRequest avanza el estado de una venta. Payments solo aplica
// al transicionar a COMPLETED (cobro de una venta PENDING).
type UpdateSaleStatusRequest struct {
	Status   string           `json:"status"`
	Payments []PaymentRequest `json:"payments,omitempty"`
}

// CancelSaleRequest cancela una venta no cobrada.
type CancelSaleRequest struct {
	Reason string `json:"reason"`
}

// SaleItemResponse línea comprometida con precio congelado.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// PaymentResponse pago registrado.
type PaymentResponse struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// SaleResponse representación completa de una venta.
type SaleResponse struct {
	ID             string             `json:"id"`
	StoreID        string             `json:"store_id"`
	CustomerID     string             `json:"customer_id,omitempty"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	DiscountType   string             `json:"discount_type,omitempty"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	Tax            decimal.Decimal    `json:"tax"`
	GrandTotal     decimal.Decimal    `json:"grand_total"`
	Change         decimal.Decimal    `json:"change"` // sobrante del pago; se reporta, no se persiste
	Status         string             `json:"status"`
	PointsAccrued  int64              `json:"points_accrued,omitempty"`
	RefundReason   string             `json:"refund_reason,omitempty"`
	RefundedBy     string             `json:"refunded_by,omitempty"`
	ApprovedBy     string             `json:"approved_by,omitempty"`
	Items          []SaleItemResponse `json:"items"`
	Payments       []PaymentResponse  `json:"payments,omitempty"`
	CreatedAt      string             `json:"created_at"`
}
