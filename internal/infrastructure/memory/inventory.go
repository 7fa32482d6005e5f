package memory

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación en memoria de StockRepository. El bloqueo de fila
// de GetForUpdate lo suple el lock exclusivo que la transacción ya sostiene.
type StockRepo struct {
	s *Store
}

func NewStockRepository(s *Store) *StockRepo {
	return &StockRepo{s: s}
}

func (r *StockRepo) Get(storeID, entityKind, entityID string) (*entity.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if st, ok := r.s.st.stock[stockKey(storeID, entityKind, entityID)]; ok {
		found := st
		return &found, nil
	}
	return &entity.Stock{
		StoreID:    storeID,
		EntityKind: entityKind,
		EntityID:   entityID,
		Quantity:   decimal.Zero,
	}, nil
}

func (r *StockRepo) GetForUpdate(storeID, entityKind, entityID string) (*entity.Stock, error) {
	return r.Get(storeID, entityKind, entityID)
}

func (r *StockRepo) Upsert(stock *entity.Stock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.stock[stockKey(stock.StoreID, stock.EntityKind, stock.EntityID)] = *stock
	return nil
}

func (r *StockRepo) ListByStore(storeID string) ([]*entity.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Stock
	for _, st := range r.s.st.stock {
		if st.StoreID == storeID {
			s := st
			all = append(all, &s)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].EntityKind != all[j].EntityKind {
			return all[i].EntityKind < all[j].EntityKind
		}
		return all[i].EntityID < all[j].EntityID
	})
	return all, nil
}

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación en memoria de MovementRepository.
type MovementRepo struct {
	s *Store
}

func NewMovementRepository(s *Store) *MovementRepo {
	return &MovementRepo{s: s}
}

func (r *MovementRepo) Create(m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.movements = append(r.s.st.movements, *m)
	return nil
}

func (r *MovementRepo) ListByStore(storeID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.StockMovement
	for i := range r.s.st.movements {
		if r.s.st.movements[i].StoreID == storeID {
			m := r.s.st.movements[i]
			all = append(all, &m)
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, limit, offset), nil
}

func (r *MovementRepo) ListByTransaction(transactionID string) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.StockMovement
	for i := range r.s.st.movements {
		if r.s.st.movements[i].TransactionID == transactionID {
			m := r.s.st.movements[i]
			all = append(all, &m)
		}
	}
	return all, nil
}
