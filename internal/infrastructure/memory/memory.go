// Package memory implementa los puertos de persistencia sobre estructuras en
// memoria. Sirve para desarrollo sin base de datos y para las pruebas de los
// casos de uso. Las transacciones se simulan clonando el estado completo: la
// función transaccional trabaja sobre el clon y solo si termina sin error el
// clon reemplaza al estado vivo. Un error descarta el clon, igual que un
// ROLLBACK.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/tu-usuario/pos-pro/internal/application/inventory"
	"github.com/tu-usuario/pos-pro/internal/application/sales"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/domain/repository"
)

// stockKey identifica un saldo de stock por tienda, tipo de entidad y entidad.
func stockKey(storeID, entityKind, entityID string) string {
	return storeID + "|" + entityKind + "|" + entityID
}

// state contiene todos los datos. Se clona completo al abrir una transacción.
type state struct {
	stores       map[string]entity.Store
	items        map[string]entity.Item
	recipes      map[string][]entity.RecipeLine
	rawMaterials map[string]entity.RawMaterial
	stock        map[string]entity.Stock
	movements    []entity.StockMovement
	sales        map[string]*entity.Sale
	customers    map[string]entity.Customer
	shifts       map[string]entity.Shift
}

func newState() *state {
	return &state{
		stores:       make(map[string]entity.Store),
		items:        make(map[string]entity.Item),
		recipes:      make(map[string][]entity.RecipeLine),
		rawMaterials: make(map[string]entity.RawMaterial),
		stock:        make(map[string]entity.Stock),
		sales:        make(map[string]*entity.Sale),
		customers:    make(map[string]entity.Customer),
		shifts:       make(map[string]entity.Shift),
	}
}

func (st *state) clone() *state {
	c := &state{
		stores:       make(map[string]entity.Store, len(st.stores)),
		items:        make(map[string]entity.Item, len(st.items)),
		recipes:      make(map[string][]entity.RecipeLine, len(st.recipes)),
		rawMaterials: make(map[string]entity.RawMaterial, len(st.rawMaterials)),
		stock:        make(map[string]entity.Stock, len(st.stock)),
		movements:    slices.Clone(st.movements),
		sales:        make(map[string]*entity.Sale, len(st.sales)),
		customers:    make(map[string]entity.Customer, len(st.customers)),
		shifts:       make(map[string]entity.Shift, len(st.shifts)),
	}
	for k, v := range st.stores {
		c.stores[k] = v
	}
	for k, v := range st.items {
		c.items[k] = v
	}
	for k, v := range st.recipes {
		c.recipes[k] = slices.Clone(v)
	}
	for k, v := range st.rawMaterials {
		c.rawMaterials[k] = v
	}
	for k, v := range st.stock {
		c.stock[k] = v
	}
	for k, v := range st.sales {
		c.sales[k] = cloneSale(v)
	}
	for k, v := range st.customers {
		c.customers[k] = v
	}
	for k, v := range st.shifts {
		c.shifts[k] = v
	}
	return c
}

func cloneSale(s *entity.Sale) *entity.Sale {
	c := *s
	c.Items = make([]entity.SaleItem, len(s.Items))
	for i, it := range s.Items {
		c.Items[i] = it
		c.Items[i].Components = slices.Clone(it.Components)
	}
	c.Payments = slices.Clone(s.Payments)
	return &c
}

// Store es el almacén en memoria. Implementa los TxRunner de inventario y ventas.
type Store struct {
	mu sync.Mutex
	st *state
}

var (
	_ inventory.TxRunner = (*Store)(nil)
	_ sales.TxRunner     = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{st: newState()}
}

// begin abre una "transacción": clona el estado bajo el lock del padre y
// devuelve un Store hijo sobre el clon más la función de commit.
func (s *Store) begin() (*Store, func()) {
	child := &Store{st: s.st.clone()}
	commit := func() { s.st = child.st }
	return child, commit
}

// Run ejecuta fn con repositorios de stock y movimientos atados a la transacción.
func (s *Store) Run(_ context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.MovementRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	child, commit := s.begin()
	if err := fn(NewStockRepository(child), NewMovementRepository(child)); err != nil {
		return err
	}
	commit()
	return nil
}

// RunSale ejecuta fn con los repositorios que el orquestador de ventas necesita.
func (s *Store) RunSale(_ context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.MovementRepository,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	child, commit := s.begin()
	err := fn(
		NewStockRepository(child),
		NewMovementRepository(child),
		NewSaleRepository(child),
		NewCustomerRepository(child),
	)
	if err != nil {
		return err
	}
	commit()
	return nil
}

// RunLoyalty ejecuta fn con los repositorios de venta y cliente.
func (s *Store) RunLoyalty(_ context.Context, fn func(
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	child, commit := s.begin()
	if err := fn(NewSaleRepository(child), NewCustomerRepository(child)); err != nil {
		return err
	}
	commit()
	return nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
