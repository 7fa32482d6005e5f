package sales

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-pro/internal/application/dto"
	"github.com/tu-usuario/pos-pro/internal/application/inventory"
	"github.com/tu-usuario/pos-pro/internal/domain"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/domain/repository"
	domsale "github.com/tu-usuario/pos-pro/internal/domain/sale"
)

// Roles con autoridad propia para aprobar devoluciones.
const (
	RoleAdmin   = "admin"
	RoleManager = "gerente"
)

// RefundSale revierte una venta COMPLETED: restaura el inventario desde el
// snapshot de componentes congelado en la venta (nunca desde la receta viva),
// revierte la fidelidad del cliente y marca la venta REFUNDED. Restauración,
// reversa de puntos y cambio de estado se confirman en una sola transacción.
func (uc *UseCase) RefundSale(ctx context.Context, storeID, userID, role, saleID string, in dto.RefundSaleRequest) (*dto.SaleResponse, error) {
	if in.Reason == "" {
		return nil, domain.ErrInvalidInput
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
	if sale.Status != entity.SaleStatusCompleted {
		return nil, domain.ErrInvalidState
	}

	approvedBy, err := uc.authorizeRefund(role, in)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = uc.txRunner.RunSale(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.MovementRepository,
		saleRepo repository.SaleRepository,
		customerRepo repository.CustomerRepository,
	) error {
		// Restaurar exactamente lo consumido, materia por materia.
		for _, item := range sale.Items {
			for _, comp := range item.Components {
				if _, err := inventory.ApplyDeltaInTx(
					stockRepo, movRepo,
					sale.StoreID, comp.EntityKind, comp.EntityID,
					comp.Quantity, entity.MovementTypeRESTORE, sale.ID, userID, now,
				); err != nil {
					return err
				}
			}
		}
		// Reversa de fidelidad en la misma transacción. Cliente desaparecido:
		// se omite con registro, la devolución no se bloquea por eso.
		if sale.CustomerID != "" {
			customer, err := customerRepo.GetForUpdate(sale.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				uc.log.Warn().Str("sale_id", sale.ID).Str("customer_id", sale.CustomerID).
					Msg("cliente no encontrado al devolver, se omite la reversa de fidelidad")
			} else {
				domsale.Reverse(customer, sale.GrandTotal, sale.PointsAccrued, uc.cfg.Tiers)
				customer.UpdatedAt = now
				if err := customerRepo.Update(customer); err != nil {
					return err
				}
			}
		}
		sale.Status = entity.SaleStatusRefunded
		sale.RefundReason = in.Reason
		sale.RefundedBy = userID
		sale.ApprovedBy = approvedBy
		sale.UpdatedAt = now
		return saleRepo.UpdateStatus(sale)
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(sale, decimal.Zero), nil
}

// authorizeRefund decide quién aprueba la devolución. Un admin o gerente se
// aprueba solo; cualquier otro rol necesita el PIN de gerente y el nombre de
// quien aprueba.
func (uc *UseCase) authorizeRefund(role string, in dto.RefundSaleRequest) (string, error) {
	if role == RoleAdmin || role == RoleManager {
		return in.ApprovedBy, nil
	}
	if in.ApprovedBy == "" || in.ManagerPIN == "" || uc.cfg.ManagerPINHash == "" {
		return "", domain.ErrForbidden
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.cfg.ManagerPINHash), []byte(in.ManagerPIN)); err != nil {
		return "", domain.ErrForbidden
	}
	return in.ApprovedBy, nil
}

// CancelSale cancela una venta aún no cobrada (PENDING/PREPARING/READY).
// El inventario ya fue deducido al crearla, así que la cancelación lo restaura
// desde el mismo snapshot; no hay pagos ni fidelidad que revertir.
func (uc *UseCase) CancelSale(ctx context.Context, storeID, userID, saleID, reason string) (*dto.SaleResponse, error) {
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
	if !sale.Status.CanTransitionTo(entity.SaleStatusCancelled) {
		return nil, domain.ErrInvalidState
	}

	now := time.Now()
	err = uc.txRunner.RunSale(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.MovementRepository,
		saleRepo repository.SaleRepository,
		_ repository.CustomerRepository,
	) error {
		for _, item := range sale.Items {
			for _, comp := range item.Components {
				if _, err := inventory.ApplyDeltaInTx(
					stockRepo, movRepo,
					sale.StoreID, comp.EntityKind, comp.EntityID,
					comp.Quantity, entity.MovementTypeRESTORE, sale.ID, userID, now,
				); err != nil {
					return err
				}
			}
		}
		sale.Status = entity.SaleStatusCancelled
		sale.RefundReason = reason
		sale.UpdatedAt = now
		return saleRepo.UpdateStatus(sale)
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(sale, decimal.Zero), nil
}
