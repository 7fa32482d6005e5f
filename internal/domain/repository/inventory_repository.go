package repository

import "github.com/tu-usuario/pos-pro/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar el stock por
// (tienda, tipo de entidad, entidad). Usado dentro de transacciones para
// garantizar consistencia.
type StockRepository interface {
	Get(storeID, entityKind, entityID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE): el
	// chequeo de stock y la escritura deben ser atómicos bajo concurrencia.
	GetForUpdate(storeID, entityKind, entityID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	ListByStore(storeID string) ([]*entity.Stock, error)
}

// MovementRepository define el puerto de persistencia para StockMovement.
type MovementRepository interface {
	Create(mov *entity.StockMovement) error
	ListByStore(storeID string, limit, offset int) ([]*entity.StockMovement, error)
	ListByTransaction(transactionID string) ([]*entity.StockMovement, error)
}
