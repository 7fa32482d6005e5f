package sales

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-pro/internal/application/dto"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/domain/repository"
	domsale "github.com/tu-usuario/pos-pro/internal/domain/sale"
	"github.com/tu-usuario/pos-pro/pkg/logger"
)

// Config parámetros comerciales del orquestador de ventas.
type Config struct {
	TaxRate        decimal.Decimal // tasa de impuesto sobre la base descontada (0.075 = 7.5%)
	PointsPerUnit  decimal.Decimal // puntos de fidelidad por unidad monetaria
	Tiers          domsale.TierThresholds
	ManagerPINHash string // hash bcrypt del PIN de gerente para aprobar devoluciones
}

// UseCase orquesta la creación, cobro, cancelación y devolución de ventas.
// Es el único escritor de inventario y de estado de fidelidad: ambos se mutan
// solo dentro de sus transacciones.
type UseCase struct {
	txRunner     TxRunner
	storeRepo    repository.StoreRepository
	itemRepo     repository.ItemRepository
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	cfg          Config
	log          *logger.Logger
}

// New construye el orquestador. Los repositorios aquí inyectados se usan solo
// para lecturas fuera de transacción; las escrituras pasan por el TxRunner.
func New(
	txRunner TxRunner,
	storeRepo repository.StoreRepository,
	itemRepo repository.ItemRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	cfg Config,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		storeRepo:    storeRepo,
		itemRepo:     itemRepo,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		cfg:          cfg,
		log:          log,
	}
}

func (uc *UseCase) toResponse(sale *entity.Sale, change decimal.Decimal) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:             sale.ID,
		StoreID:        sale.StoreID,
		CustomerID:     sale.CustomerID,
		Subtotal:       sale.Subtotal,
		DiscountType:   sale.DiscountType,
		DiscountAmount: sale.DiscountAmount,
		Tax:            sale.Tax,
		GrandTotal:     sale.GrandTotal,
		Change:         change,
		Status:         string(sale.Status),
		PointsAccrued:  sale.PointsAccrued,
		RefundReason:   sale.RefundReason,
		RefundedBy:     sale.RefundedBy,
		ApprovedBy:     sale.ApprovedBy,
		Items:          make([]dto.SaleItemResponse, 0, len(sale.Items)),
		CreatedAt:      sale.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	for _, it := range sale.Items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:        it.ID,
			ItemID:    it.ItemID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	for _, p := range sale.Payments {
		resp.Payments = append(resp.Payments, dto.PaymentResponse{Type: p.Type, Amount: p.Amount})
	}
	return resp
}
