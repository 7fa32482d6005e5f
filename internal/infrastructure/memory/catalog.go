package memory

import (
	"sort"

	"github.com/tu-usuario/pos-pro/internal/domain"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación en memoria de StoreRepository.
type StoreRepo struct {
	s *Store
}

func NewStoreRepository(s *Store) *StoreRepo {
	return &StoreRepo{s: s}
}

func (r *StoreRepo) Create(store *entity.Store) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.stores[store.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.st.stores[store.ID] = *store
	return nil
}

func (r *StoreRepo) GetByID(id string) (*entity.Store, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.st.stores[id]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (r *StoreRepo) List(limit, offset int) ([]*entity.Store, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*entity.Store, 0, len(r.s.st.stores))
	for _, st := range r.s.st.stores {
		s := st
		all = append(all, &s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, limit, offset), nil
}

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación en memoria de ItemRepository.
type ItemRepo struct {
	s *Store
}

func NewItemRepository(s *Store) *ItemRepo {
	return &ItemRepo{s: s}
}

func (r *ItemRepo) Create(item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.items[item.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, it := range r.s.st.items {
		if it.StoreID == item.StoreID && it.SKU == item.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.st.items[item.ID] = *item
	return nil
}

func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.st.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r *ItemRepo) GetBySKU(storeID, sku string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.st.items {
		if it.StoreID == storeID && it.SKU == sku {
			found := it
			return &found, nil
		}
	}
	return nil, nil
}

func (r *ItemRepo) ListByStore(storeID string, limit, offset int) ([]*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Item
	for _, it := range r.s.st.items {
		if it.StoreID == storeID {
			item := it
			all = append(all, &item)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

func (r *ItemRepo) Update(item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.items[item.ID] = *item
	return nil
}

func (r *ItemRepo) GetRecipe(itemID string) ([]entity.RecipeLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lines := r.s.st.recipes[itemID]
	out := make([]entity.RecipeLine, len(lines))
	copy(out, lines)
	return out, nil
}

func (r *ItemRepo) ReplaceRecipe(itemID string, lines []entity.RecipeLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	replaced := make([]entity.RecipeLine, len(lines))
	copy(replaced, lines)
	r.s.st.recipes[itemID] = replaced
	return nil
}

var _ repository.RawMaterialRepository = (*RawMaterialRepo)(nil)

// RawMaterialRepo implementación en memoria de RawMaterialRepository.
type RawMaterialRepo struct {
	s *Store
}

func NewRawMaterialRepository(s *Store) *RawMaterialRepo {
	return &RawMaterialRepo{s: s}
}

func (r *RawMaterialRepo) Create(rm *entity.RawMaterial) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.rawMaterials[rm.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.st.rawMaterials[rm.ID] = *rm
	return nil
}

func (r *RawMaterialRepo) GetByID(id string) (*entity.RawMaterial, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rm, ok := r.s.st.rawMaterials[id]
	if !ok {
		return nil, nil
	}
	return &rm, nil
}

func (r *RawMaterialRepo) ListByStore(storeID string, limit, offset int) ([]*entity.RawMaterial, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.RawMaterial
	for _, rm := range r.s.st.rawMaterials {
		if rm.StoreID == storeID {
			m := rm
			all = append(all, &m)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

func (r *RawMaterialRepo) Update(rm *entity.RawMaterial) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.rawMaterials[rm.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.rawMaterials[rm.ID] = *rm
	return nil
}
