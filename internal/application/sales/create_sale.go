package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-pro/internal/application/dto"
	"github.com/tu-usuario/pos-pro/internal/application/inventory"
	"github.com/tu-usuario/pos-pro/internal/domain"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/domain/repository"
	domsale "github.com/tu-usuario/pos-pro/internal/domain/sale"
)

// CreateSale convierte un carrito en una venta comprometida en una sola
// transacción: valida, resuelve cada línea vía BOM, agrega las deducciones,
// las aplica al inventario con todo-o-nada, congela precios y componentes en
// el agregado, y registra pagos. Con pagos que cubren el total la venta queda
// COMPLETED; si no, PENDING sin pagos. La acumulación de fidelidad corre
// después del commit y sus fallas no bloquean la venta.
func (uc *UseCase) CreateSale(ctx context.Context, storeID, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	store, err := uc.storeRepo.GetByID(storeID)
	if err != nil || store == nil {
		return nil, domain.ErrNotFound
	}

	// Validar líneas y resolver deducciones (puro, fuera de la tx).
	now := time.Now()
	saleID := uuid.New().String()
	var (
		priceLines    []domsale.PriceLine
		allDeductions []domsale.Deduction
		saleItems     []entity.SaleItem
	)
	for _, line := range in.Lines {
		if line.ItemID == "" || !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.itemRepo.GetByID(line.ItemID)
		if err != nil || item == nil {
			return nil, domain.ErrNotFound
		}
		if item.StoreID != storeID {
			return nil, domain.ErrForbidden
		}
		var recipe []entity.RecipeLine
		if item.IsComposite {
			recipe, err = uc.itemRepo.GetRecipe(item.ID)
			if err != nil {
				return nil, err
			}
		}
		deductions, err := domsale.ExpandLine(item, recipe, line.Quantity)
		if err != nil {
			return nil, err
		}
		allDeductions = append(allDeductions, deductions...)
		priceLines = append(priceLines, domsale.PriceLine{UnitPrice: item.Price, Quantity: line.Quantity})

		saleItem := entity.SaleItem{
			ID:        uuid.New().String(),
			SaleID:    saleID,
			ItemID:    item.ID,
			Quantity:  line.Quantity,
			UnitPrice: item.Price, // congelado: no se recalcula nunca
		}
		// Snapshot del consumo resuelto: la devolución restaura exactamente
		// esto aunque la receta cambie después de la venta.
		for _, d := range deductions {
			saleItem.Components = append(saleItem.Components, entity.SaleItemComponent{
				SaleItemID: saleItem.ID,
				EntityKind: d.EntityKind,
				EntityID:   d.EntityID,
				Quantity:   d.Quantity,
			})
		}
		saleItems = append(saleItems, saleItem)
	}

	// Dos líneas pueden compartir materia prima: se deduce la suma, no línea
	// por línea, para no fallar por orden de aplicación.
	aggregated := domsale.AggregateDeductions(allDeductions)

	var discount *entity.Discount
	if in.Discount != nil {
		if in.Discount.Type != entity.DiscountTypeFixed && in.Discount.Type != entity.DiscountTypePercentage {
			return nil, domain.ErrInvalidInput
		}
		if in.Discount.Value.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		discount = &entity.Discount{Type: in.Discount.Type, Value: in.Discount.Value}
	}
	totals := domsale.ComputeTotals(priceLines, discount, uc.cfg.TaxRate)

	payments, err := uc.validatePayments(in.Payments, saleID)
	if err != nil {
		return nil, err
	}
	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}

	status := entity.SaleStatusPending
	change := decimal.Zero
	if len(payments) > 0 && paid.GreaterThanOrEqual(totals.GrandTotal) {
		status = entity.SaleStatusCompleted
		change = paid.Sub(totals.GrandTotal)
	} else {
		// Pagos insuficientes: la venta queda PENDING sin pagos adjuntos.
		payments = nil
	}

	// Cliente: su ausencia no bloquea la venta (la fidelidad es secundaria).
	customerID := in.CustomerID
	if customerID != "" {
		c, err := uc.customerRepo.GetByID(customerID)
		if err != nil || c == nil || c.StoreID != storeID {
			uc.log.Warn().Str("sale_id", saleID).Str("customer_id", customerID).
				Msg("cliente no encontrado, la venta continúa sin fidelidad")
			customerID = ""
		}
	}

	sale := &entity.Sale{
		ID:             saleID,
		StoreID:        storeID,
		CustomerID:     customerID,
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		Tax:            totals.Tax,
		GrandTotal:     totals.GrandTotal,
		Status:         status,
		Items:          saleItems,
		Payments:       payments,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if discount != nil {
		sale.DiscountType = discount.Type
		sale.DiscountValue = discount.Value
	}

	// Transacción principal: deducciones agregadas + agregado de venta.
	// Cualquier falla (ej. stock insuficiente) revierte todo sin efecto parcial.
	err = uc.txRunner.RunSale(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.MovementRepository,
		saleRepo repository.SaleRepository,
		_ repository.CustomerRepository,
	) error {
		for _, d := range aggregated {
			if _, err := inventory.ApplyDeltaInTx(
				stockRepo, movRepo,
				storeID, d.EntityKind, d.EntityID,
				d.Quantity.Neg(), entity.MovementTypeOUT, saleID, userID, now,
			); err != nil {
				return err
			}
		}
		return saleRepo.Create(sale)
	})
	if err != nil {
		return nil, err
	}

	// Paso secundario post-commit: una falla de fidelidad jamás revierte la venta.
	if sale.Status == entity.SaleStatusCompleted && sale.CustomerID != "" {
		uc.accrueLoyalty(ctx, sale)
	}

	return uc.toResponse(sale, change), nil
}

// validatePayments valida tipos y montos y construye las entidades de pago.
func (uc *UseCase) validatePayments(in []dto.PaymentRequest, saleID string) ([]entity.Payment, error) {
	payments := make([]entity.Payment, 0, len(in))
	for _, p := range in {
		switch p.Type {
		case entity.PaymentTypeCash, entity.PaymentTypeCard, entity.PaymentTypeTransfer:
		default:
			return nil, domain.ErrInvalidInput
		}
		if !p.Amount.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		payments = append(payments, entity.Payment{
			ID:        uuid.New().String(),
			SaleID:    saleID,
			Type:      p.Type,
			Amount:    p.Amount,
			CreatedAt: time.Now(),
		})
	}
	return payments, nil
}

// accrueLoyalty acumula puntos y gasto del cliente en su propia transacción.
// Los errores se registran y se tragan: la venta ya está confirmada.
func (uc *UseCase) accrueLoyalty(ctx context.Context, sale *entity.Sale) {
	err := uc.txRunner.RunLoyalty(ctx, func(
		saleRepo repository.SaleRepository,
		customerRepo repository.CustomerRepository,
	) error {
		customer, err := customerRepo.GetForUpdate(sale.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrNotFound
		}
		points := domsale.Accrue(customer, sale.GrandTotal, uc.cfg.PointsPerUnit, uc.cfg.Tiers)
		customer.UpdatedAt = time.Now()
		if err := customerRepo.Update(customer); err != nil {
			return err
		}
		if err := saleRepo.SetPointsAccrued(sale.ID, points); err != nil {
			return err
		}
		sale.PointsAccrued = points
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("sale_id", sale.ID).Str("customer_id", sale.CustomerID).
			Msg("acumulación de fidelidad falló, la venta queda confirmada sin puntos")
	}
}
