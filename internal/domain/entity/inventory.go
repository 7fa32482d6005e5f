package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de entidad almacenable en inventario.
const (
	StockKindRawMaterial = "raw_material"
	StockKindProduct     = "product"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"         // entrada (compra, recepción)
	MovementTypeOUT        = "OUT"        // salida (venta)
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste manual
	MovementTypeRESTORE    = "RESTORE"    // restauración por devolución o cancelación
)

// Stock cantidad disponible de una entidad (materia prima o producto) en una tienda.
// Invariante: Quantity >= 0 siempre; solo se muta aplicando deltas firmados
// dentro de una transacción.
type Stock struct {
	StoreID    string
	EntityKind string // StockKindRawMaterial | StockKindProduct
	EntityID   string
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}

// StockMovement registro inmutable de cada delta aplicado al inventario.
// TransactionID agrupa los movimientos de una misma operación (venta, devolución).
type StockMovement struct {
	ID            string
	TransactionID string
	StoreID       string
	EntityKind    string
	EntityID      string
	Type          string          // IN, OUT, ADJUSTMENT, RESTORE
	Quantity      decimal.Decimal // firmado: negativo para salidas
	CreatedAt     time.Time
	CreatedBy     string // UserID
}
