package memory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-pro/internal/domain"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación en memoria de SaleRepository.
type SaleRepo struct {
	s *Store
}

func NewSaleRepository(s *Store) *SaleRepo {
	return &SaleRepo{s: s}
}

func (r *SaleRepo) Create(sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.sales[sale.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.st.sales[sale.ID] = cloneSale(sale)
	return nil
}

func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sale, ok := r.s.st.sales[id]
	if !ok {
		return nil, nil
	}
	return cloneSale(sale), nil
}

func (r *SaleRepo) ListByStore(storeID string, limit, offset int) ([]*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Sale
	for _, sale := range r.s.st.sales {
		if sale.StoreID == storeID {
			all = append(all, cloneSale(sale))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, limit, offset), nil
}

func (r *SaleRepo) UpdateStatus(sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.st.sales[sale.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = sale.Status
	stored.RefundReason = sale.RefundReason
	stored.RefundedBy = sale.RefundedBy
	stored.ApprovedBy = sale.ApprovedBy
	stored.UpdatedAt = sale.UpdatedAt
	return nil
}

func (r *SaleRepo) AttachPayments(saleID string, payments []entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.st.sales[saleID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Payments = append(stored.Payments, payments...)
	return nil
}

func (r *SaleRepo) SetPointsAccrued(saleID string, points int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.st.sales[saleID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.PointsAccrued = points
	return nil
}

func (r *SaleRepo) SumCashPayments(storeID string, from, to time.Time) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	for _, sale := range r.s.st.sales {
		if sale.StoreID != storeID || sale.Status != entity.SaleStatusCompleted {
			continue
		}
		if sale.CreatedAt.Before(from) || !sale.CreatedAt.Before(to) {
			continue
		}
		for _, p := range sale.Payments {
			if p.Type == entity.PaymentTypeCash {
				total = total.Add(p.Amount)
			}
		}
	}
	return total, nil
}

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación en memoria de CustomerRepository.
type CustomerRepo struct {
	s *Store
}

func NewCustomerRepository(s *Store) *CustomerRepo {
	return &CustomerRepo{s: s}
}

func (r *CustomerRepo) Create(c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.customers[c.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.st.customers[c.ID] = *c
	return nil
}

func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.st.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CustomerRepo) GetForUpdate(id string) (*entity.Customer, error) {
	return r.GetByID(id)
}

func (r *CustomerRepo) ListByStore(storeID string, limit, offset int) ([]*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Customer
	for _, c := range r.s.st.customers {
		if c.StoreID == storeID {
			customer := c
			all = append(all, &customer)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

func (r *CustomerRepo) Update(c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.customers[c.ID] = *c
	return nil
}

var _ repository.ShiftRepository = (*ShiftRepo)(nil)

// ShiftRepo implementación en memoria de ShiftRepository.
type ShiftRepo struct {
	s *Store
}

func NewShiftRepository(s *Store) *ShiftRepo {
	return &ShiftRepo{s: s}
}

func (r *ShiftRepo) Create(shift *entity.Shift) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.shifts[shift.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.st.shifts[shift.ID] = *shift
	return nil
}

func (r *ShiftRepo) GetByID(id string) (*entity.Shift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sh, ok := r.s.st.shifts[id]
	if !ok {
		return nil, nil
	}
	return &sh, nil
}

func (r *ShiftRepo) GetOpenByCashier(storeID, cashierID string) (*entity.Shift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sh := range r.s.st.shifts {
		if sh.StoreID == storeID && sh.CashierID == cashierID && sh.Status == entity.ShiftStatusOpen {
			found := sh
			return &found, nil
		}
	}
	return nil, nil
}

func (r *ShiftRepo) Update(shift *entity.Shift) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.shifts[shift.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.shifts[shift.ID] = *shift
	return nil
}

func (r *ShiftRepo) ListByStore(storeID string, limit, offset int) ([]*entity.Shift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Shift
	for _, sh := range r.s.st.shifts {
		if sh.StoreID == storeID {
			shift := sh
			all = append(all, &shift)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].OpenedAt.After(all[j].OpenedAt) })
	return paginate(all, limit, offset), nil
}
