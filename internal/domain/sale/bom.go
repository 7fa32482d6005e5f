package sale

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-pro/internal/domain"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
)

// Deduction una deducción concreta de inventario: (tipo de entidad, id, cantidad).
// Las cantidades son siempre positivas; el signo lo decide quien aplica el delta.
type Deduction struct {
	EntityKind string
	EntityID   string
	Quantity   decimal.Decimal
}

// ExpandLine resuelve una línea del carrito en sus deducciones de inventario
// (servicio de dominio, puro y determinista; se puede llamar antes de abrir
// la transacción).
//
// Ítem simple: una deducción directa sobre su propio stock (kind=product).
// Ítem compuesto: cada línea de receta multiplicada por la cantidad vendida;
// el stock propio del compuesto nunca se toca. Un compuesto sin receta es un
// defecto de configuración (ErrRecipeNotFound), no un error de stock.
func ExpandLine(item *entity.Item, recipe []entity.RecipeLine, quantity decimal.Decimal) ([]Deduction, error) {
	if !item.IsComposite {
		return []Deduction{{
			EntityKind: entity.StockKindProduct,
			EntityID:   item.ID,
			Quantity:   quantity,
		}}, nil
	}
	if len(recipe) == 0 {
		return nil, domain.ErrRecipeNotFound
	}
	deductions := make([]Deduction, 0, len(recipe))
	for _, line := range recipe {
		deductions = append(deductions, Deduction{
			EntityKind: entity.StockKindRawMaterial,
			EntityID:   line.RawMaterialID,
			Quantity:   line.Quantity.Mul(quantity),
		})
	}
	return deductions, nil
}

// AggregateDeductions fusiona deducciones repetidas sumando cantidades,
// conservando el orden de primera aparición. Dos líneas del carrito que
// comparten una materia prima deben deducirse como una sola cantidad total:
// aplicarlas por separado puede fallar por stock insuficiente aunque el total
// sí alcance, según el orden de aplicación.
func AggregateDeductions(deductions []Deduction) []Deduction {
	type key struct {
		kind string
		id   string
	}
	index := make(map[key]int, len(deductions))
	merged := make([]Deduction, 0, len(deductions))
	for _, d := range deductions {
		k := key{d.EntityKind, d.EntityID}
		if i, ok := index[k]; ok {
			merged[i].Quantity = merged[i].Quantity.Add(d.Quantity)
			continue
		}
		index[k] = len(merged)
		merged = append(merged, d)
	}
	return merged
}
