package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un producto vendible de la tienda.
// Un ítem simple mantiene su propio stock (kind=product); un ítem compuesto
// (IsComposite) no tiene stock propio: su disponibilidad se deriva de las
// materias primas de su receta.
type Item struct {
	ID          string
	StoreID     string
	SKU         string // código único por tienda
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // costo (promedio ponderado para ítems simples)
	IsComposite bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecipeLine una línea de la receta (BOM) de un ítem compuesto:
// cantidad de materia prima requerida por unidad vendida.
type RecipeLine struct {
	ItemID        string
	RawMaterialID string
	Quantity      decimal.Decimal // por unidad del ítem
	Position      int             // orden dentro de la receta
}
