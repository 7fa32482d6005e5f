package inventory

import (
	"context"

	"github.com/tu-usuario/pos-pro/internal/application/dto"
	"github.com/tu-usuario/pos-pro/internal/domain/repository"
)

// QueryUseCase lecturas de inventario (stock actual y movimientos) fuera de
// transacción.
type QueryUseCase struct {
	stockRepo repository.StockRepository
	movRepo   repository.MovementRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(stockRepo repository.StockRepository, movRepo repository.MovementRepository) *QueryUseCase {
	return &QueryUseCase{stockRepo: stockRepo, movRepo: movRepo}
}

// ListStock devuelve el stock de todas las entidades de la tienda.
func (uc *QueryUseCase) ListStock(ctx context.Context, storeID string) ([]dto.StockResponse, error) {
	stocks, err := uc.stockRepo.ListByStore(storeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockResponse, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, dto.StockResponse{
			EntityKind: s.EntityKind,
			EntityID:   s.EntityID,
			Quantity:   s.Quantity,
		})
	}
	return out, nil
}

// ListMovements devuelve el historial de movimientos de la tienda, reciente primero.
func (uc *QueryUseCase) ListMovements(ctx context.Context, storeID string, limit, offset int) ([]dto.MovementResponse, error) {
	movs, err := uc.movRepo.ListByStore(storeID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovementResponse{
			ID:            m.ID,
			TransactionID: m.TransactionID,
			EntityKind:    m.EntityKind,
			EntityID:      m.EntityID,
			Type:          m.Type,
			Quantity:      m.Quantity,
			CreatedAt:     m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			CreatedBy:     m.CreatedBy,
		})
	}
	return out, nil
}
