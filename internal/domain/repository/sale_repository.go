package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para el agregado Sale
// (cabecera, líneas con su snapshot de componentes y pagos).
type SaleRepository interface {
	// Create persiste la venta completa: cabecera, líneas, componentes y pagos.
	Create(sale *entity.Sale) error
	// GetByID devuelve el agregado completo.
	GetByID(id string) (*entity.Sale, error)
	ListByStore(storeID string, limit, offset int) ([]*entity.Sale, error)
	// UpdateStatus actualiza estado y metadatos de devolución/aprobación.
	UpdateStatus(sale *entity.Sale) error
	// AttachPayments agrega pagos a una venta existente (cobro de una venta PENDING).
	AttachPayments(saleID string, payments []entity.Payment) error
	// SetPointsAccrued registra los puntos otorgados (paso post-commit de fidelidad).
	SetPointsAccrued(saleID string, points int64) error
	// SumCashPayments suma los pagos en efectivo de ventas COMPLETED de la
	// tienda cuyo CreatedAt cae en [from, to). Una venta devuelta durante el
	// turno ya no está COMPLETED, y su efectivo salió de la caja con la
	// devolución, así que queda fuera del esperado.
	SumCashPayments(storeID string, from, to time.Time) (decimal.Decimal, error)
}
