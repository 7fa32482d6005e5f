package dto

import "github.com/shopspring/decimal"

// RegisterMovementRequest registra un movimiento manual de inventario.
type RegisterMovementRequest struct {
	EntityKind string          `json:"entity_kind"` // raw_material | product
	EntityID   string          `json:"entity_id"`
	Type       string          `json:"type"` // IN, OUT, ADJUSTMENT
	Quantity   decimal.Decimal `json:"quantity"`
}

// StockResponse stock actual de una entidad.
type StockResponse struct {
	EntityKind string          `json:"entity_kind"`
	EntityID   string          `json:"entity_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// MovementResponse un movimiento registrado.
type MovementResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	EntityKind    string          `json:"entity_kind"`
	EntityID      string          `json:"entity_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	CreatedAt     string          `json:"created_at"`
	CreatedBy     string          `json:"created_by"`
}
