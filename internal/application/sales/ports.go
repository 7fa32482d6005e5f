package sales

import (
	"context"

	"github.com/tu-usuario/pos-pro/internal/domain/repository"
)

// TxRunner ejecuta funciones dentro de una transacción de BD con los
// repositorios que el orquestador de ventas necesita atados a esa tx.
type TxRunner interface {
	// RunSale transacción principal: inventario + agregado de venta.
	// La deducción de inventario y la venta se confirman o revierten juntas.
	RunSale(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.MovementRepository,
		saleRepo repository.SaleRepository,
		customerRepo repository.CustomerRepository,
	) error) error
	// RunLoyalty transacción secundaria post-commit para la acumulación de
	// puntos: una falla aquí nunca revierte una venta ya confirmada.
	RunLoyalty(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}
