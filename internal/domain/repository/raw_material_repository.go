package repository

import "github.com/tu-usuario/pos-pro/internal/domain/entity"

// RawMaterialRepository define el puerto de persistencia para RawMaterial.
type RawMaterialRepository interface {
	Create(rm *entity.RawMaterial) error
	GetByID(id string) (*entity.RawMaterial, error)
	ListByStore(storeID string, limit, offset int) ([]*entity.RawMaterial, error)
	Update(rm *entity.RawMaterial) error
}
