package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-pro/internal/domain"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de inventario manuales
// (IN, OUT, ADJUSTMENT) de forma transaccional con bloqueo de fila y
// Commit/Rollback. Las salidas por venta no pasan por aquí: las aplica el
// orquestador de ventas dentro de su propia transacción.
type RegisterMovementUseCase struct {
	txRunner  TxRunner
	itemRepo  repository.ItemRepository
	rawRepo   repository.RawMaterialRepository
	storeRepo repository.StoreRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	rawRepo repository.RawMaterialRepository,
	storeRepo repository.StoreRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:  txRunner,
		itemRepo:  itemRepo,
		rawRepo:   rawRepo,
		storeRepo: storeRepo,
	}
}

// MovementInput entrada para registrar un movimiento de inventario.
type MovementInput struct {
	StoreID    string
	UserID     string
	EntityKind string // raw_material | product
	EntityID   string
	Type       string // IN, OUT, ADJUSTMENT
	Quantity   decimal.Decimal // positiva; el tipo define el signo aplicado
}

// RegisterMovement valida la entrada, verifica que la entidad exista y sea de
// la tienda, e inicia una transacción que aplica el delta con bloqueo de fila.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (decimal.Decimal, error) {
	switch input.Type {
	case entity.MovementTypeIN, entity.MovementTypeOUT, entity.MovementTypeADJUSTMENT:
	default:
		return decimal.Zero, domain.ErrInvalidInput
	}
	if input.StoreID == "" || input.EntityID == "" || !input.Quantity.GreaterThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidInput
	}

	if err := uc.validateEntity(input); err != nil {
		return decimal.Zero, err
	}

	delta := input.Quantity
	if input.Type == entity.MovementTypeOUT {
		delta = delta.Neg()
	}

	now := time.Now()
	txID := uuid.New().String()
	var newQty decimal.Decimal
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.MovementRepository,
	) error {
		var err error
		newQty, err = ApplyDeltaInTx(
			stockRepo, movRepo,
			input.StoreID, input.EntityKind, input.EntityID,
			delta, input.Type, txID, input.UserID, now,
		)
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	return newQty, nil
}

// validateEntity comprueba existencia y pertenencia a la tienda.
// Un ítem compuesto no tiene stock propio: rechazado.
func (uc *RegisterMovementUseCase) validateEntity(input MovementInput) error {
	switch input.EntityKind {
	case entity.StockKindRawMaterial:
		rm, err := uc.rawRepo.GetByID(input.EntityID)
		if err != nil || rm == nil {
			return domain.ErrNotFound
		}
		if rm.StoreID != input.StoreID {
			return domain.ErrForbidden
		}
	case entity.StockKindProduct:
		item, err := uc.itemRepo.GetByID(input.EntityID)
		if err != nil || item == nil {
			return domain.ErrNotFound
		}
		if item.StoreID != input.StoreID {
			return domain.ErrForbidden
		}
		if item.IsComposite {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}
