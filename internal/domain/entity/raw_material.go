package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawMaterial representa una materia prima consumida por recetas (harina, carne, etc.).
type RawMaterial struct {
	ID        string
	StoreID   string
	Name      string
	Unit      string          // kg, l, unidad
	Cost      decimal.Decimal // costo por unidad de medida
	CreatedAt time.Time
	UpdatedAt time.Time
}
