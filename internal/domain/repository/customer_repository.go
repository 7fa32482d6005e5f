package repository

import "github.com/tu-usuario/pos-pro/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	// GetForUpdate bloquea la fila del cliente: el estado de fidelidad se muta
	// con read-modify-write atómico.
	GetForUpdate(id string) (*entity.Customer, error)
	ListByStore(storeID string, limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
}
