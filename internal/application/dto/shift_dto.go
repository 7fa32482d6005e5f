package dto

import "github.com/shopspring/decimal"

// OpenShiftRequest abre un turno de caja con su base inicial.
type OpenShiftRequest struct {
	OpeningFloat decimal.Decimal `json:"opening_float"`
}

// CloseShiftRequest cierra el turno declarando el efectivo contado.
type CloseShiftRequest struct {
	CountedCash decimal.Decimal `json:"counted_cash"`
}

// ShiftResponse turno con su conciliación (al cierre).
type ShiftResponse struct {
	ID           string          `json:"id"`
	StoreID      string          `json:"store_id"`
	CashierID    string          `json:"cashier_id"`
	OpeningFloat decimal.Decimal `json:"opening_float"`
	ExpectedCash decimal.Decimal `json:"expected_cash,omitempty"`
	CountedCash  decimal.Decimal `json:"counted_cash,omitempty"`
	Variance     decimal.Decimal `json:"variance,omitempty"`
	Status       string          `json:"status"`
	OpenedAt     string          `json:"opened_at"`
	ClosedAt     string          `json:"closed_at,omitempty"`
}
