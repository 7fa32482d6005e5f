package repository

import "github.com/tu-usuario/pos-pro/internal/domain/entity"

// ShiftRepository define el puerto de persistencia para Shift.
type ShiftRepository interface {
	Create(shift *entity.Shift) error
	GetByID(id string) (*entity.Shift, error)
	// GetOpenByCashier devuelve el turno OPEN del cajero en la tienda, o nil.
	GetOpenByCashier(storeID, cashierID string) (*entity.Shift, error)
	Update(shift *entity.Shift) error
	ListByStore(storeID string, limit, offset int) ([]*entity.Shift, error)
}
