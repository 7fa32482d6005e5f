package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-pro/internal/domain"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/domain/repository"
)

// ApplyDeltaInTx aplica un delta firmado sobre el stock de una entidad usando
// repositorios atados a la transacción del caller. Bloquea la fila
// (SELECT FOR UPDATE), verifica que el resultado no cruce cero, actualiza la
// cantidad y registra el movimiento. El chequeo y la escritura son una sola
// unidad atómica: un delta negativo que dejaría stock < 0 falla con
// ErrInsufficientStock sin mutar nada.
//
// Devuelve la cantidad resultante. Es seguro llamarla varias veces dentro de la
// misma transacción; todas las aplicaciones se confirman o revierten juntas.
func ApplyDeltaInTx(
	stockRepo repository.StockRepository,
	movRepo repository.MovementRepository,
	storeID, entityKind, entityID string,
	delta decimal.Decimal,
	movementType, transactionID, userID string,
	now time.Time,
) (decimal.Decimal, error) {
	stock, err := stockRepo.GetForUpdate(storeID, entityKind, entityID)
	if err != nil {
		return decimal.Zero, err
	}
	newQty := stock.Quantity.Add(delta)
	if newQty.LessThan(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%s %s: %w", entityKind, entityID, domain.ErrInsufficientStock)
	}
	stock.Quantity = newQty
	stock.UpdatedAt = now
	if err := stockRepo.Upsert(stock); err != nil {
		return decimal.Zero, err
	}
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		TransactionID: transactionID,
		StoreID:       storeID,
		EntityKind:    entityKind,
		EntityID:      entityID,
		Type:          movementType,
		Quantity:      delta,
		CreatedAt:     now,
		CreatedBy:     userID,
	}
	if err := movRepo.Create(mov); err != nil {
		return decimal.Zero, err
	}
	return newQty, nil
}
