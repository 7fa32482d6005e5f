package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-pro/internal/application/dto"
	"github.com/tu-usuario/pos-pro/internal/domain"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/domain/repository"
)

// UpdateStatus avanza el estado de una venta según la tabla de transiciones.
// CANCELLED delega en CancelSale (restaura inventario); REFUNDED solo es
// alcanzable por RefundSale. Transicionar a COMPLETED exige pagos que cubran
// el total: los pagos del request se adjuntan en la misma transacción.
func (uc *UseCase) UpdateStatus(ctx context.Context, storeID, userID string, saleID string, in dto.UpdateSaleStatusRequest) (*dto.SaleResponse, error) {
	target := entity.SaleStatus(in.Status)
	if !target.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if target == entity.SaleStatusRefunded {
		return nil, domain.ErrInvalidState
	}
	if target == entity.SaleStatusCancelled {
		return uc.CancelSale(ctx, storeID, userID, saleID, "cancelación por cambio de estado")
	}

	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.StoreID != storeID {
		return nil, domain.ErrForbidden
	}
	if !sale.Status.CanTransitionTo(target) {
		return nil, domain.ErrInvalidState
	}

	change := decimal.Zero
	var newPayments []entity.Payment
	if target == entity.SaleStatusCompleted {
		newPayments, err = uc.validatePayments(in.Payments, sale.ID)
		if err != nil {
			return nil, err
		}
		paid := sale.PaymentsTotal()
		for _, p := range newPayments {
			paid = paid.Add(p.Amount)
		}
		if paid.LessThan(sale.GrandTotal) {
			return nil, domain.ErrInvalidInput
		}
		change = paid.Sub(sale.GrandTotal)
	}

	now := time.Now()
	err = uc.txRunner.RunSale(ctx, func(
		_ repository.StockRepository,
		_ repository.MovementRepository,
		saleRepo repository.SaleRepository,
		_ repository.CustomerRepository,
	) error {
		if len(newPayments) > 0 {
			if err := saleRepo.AttachPayments(sale.ID, newPayments); err != nil {
				return err
			}
		}
		sale.Status = target
		sale.UpdatedAt = now
		return saleRepo.UpdateStatus(sale)
	})
	if err != nil {
		return nil, err
	}
	sale.Payments = append(sale.Payments, newPayments...)

	if sale.Status == entity.SaleStatusCompleted && sale.CustomerID != "" {
		uc.accrueLoyalty(ctx, sale)
	}
	return uc.toResponse(sale, change), nil
}

// GetSale devuelve el agregado completo de una venta de la tienda.
func (uc *UseCase) GetSale(ctx context.Context, storeID, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.StoreID != storeID {
		return nil, domain.ErrForbidden
	}
	return uc.toResponse(sale, decimal.Zero), nil
}

// ListSales lista ventas de la tienda con paginación.
func (uc *UseCase) ListSales(ctx context.Context, storeID string, limit, offset int) ([]*dto.SaleResponse, error) {
	salesList, err := uc.saleRepo.ListByStore(storeID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(salesList))
	for _, s := range salesList {
		out = append(out, uc.toResponse(s, decimal.Zero))
	}
	return out, nil
}
