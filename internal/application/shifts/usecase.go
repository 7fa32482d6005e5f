package shifts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-pro/internal/application/dto"
	"github.com/tu-usuario/pos-pro/internal/domain"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/domain/repository"
)

// UseCase administra turnos de caja: apertura con base inicial y cierre con
// conciliación de efectivo esperado vs contado. Solo lee las ventas del
// orquestador; no muta inventario ni fidelidad.
type UseCase struct {
	shiftRepo repository.ShiftRepository
	saleRepo  repository.SaleRepository
	storeRepo repository.StoreRepository
}

// New construye el caso de uso.
func New(shiftRepo repository.ShiftRepository, saleRepo repository.SaleRepository, storeRepo repository.StoreRepository) *UseCase {
	return &UseCase{shiftRepo: shiftRepo, saleRepo: saleRepo, storeRepo: storeRepo}
}

// Open abre un turno para el cajero. Solo puede haber un turno OPEN por
// cajero y tienda.
func (uc *UseCase) Open(ctx context.Context, storeID, cashierID string, in dto.OpenShiftRequest) (*dto.ShiftResponse, error) {
	if in.OpeningFloat.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	store, err := uc.storeRepo.GetByID(storeID)
	if err != nil || store == nil {
		return nil, domain.ErrNotFound
	}
	open, err := uc.shiftRepo.GetOpenByCashier(storeID, cashierID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, domain.ErrConflict
	}
	shift := &entity.Shift{
		ID:           uuid.New().String(),
		StoreID:      storeID,
		CashierID:    cashierID,
		OpeningFloat: in.OpeningFloat,
		Status:       entity.ShiftStatusOpen,
		OpenedAt:     time.Now(),
	}
	if err := uc.shiftRepo.Create(shift); err != nil {
		return nil, err
	}
	return toShiftResponse(shift), nil
}

// Close cierra el turno y concilia:
//
//	esperado = base inicial + Σ pagos en efectivo de ventas COMPLETED en [apertura, ahora)
//	desvío   = contado − esperado
func (uc *UseCase) Close(ctx context.Context, storeID, shiftID string, in dto.CloseShiftRequest) (*dto.ShiftResponse, error) {
	if in.CountedCash.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	shift, err := uc.shiftRepo.GetByID(shiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, domain.ErrNotFound
	}
	if shift.StoreID != storeID {
		return nil, domain.ErrForbidden
	}
	if shift.Status != entity.ShiftStatusOpen {
		return nil, domain.ErrInvalidState
	}

	now := time.Now()
	cash, err := uc.saleRepo.SumCashPayments(storeID, shift.OpenedAt, now)
	if err != nil {
		return nil, err
	}
	shift.ExpectedCash = shift.OpeningFloat.Add(cash)
	shift.CountedCash = in.CountedCash
	shift.Variance = in.CountedCash.Sub(shift.ExpectedCash)
	shift.Status = entity.ShiftStatusClosed
	shift.ClosedAt = &now
	if err := uc.shiftRepo.Update(shift); err != nil {
		return nil, err
	}
	return toShiftResponse(shift), nil
}

// Get devuelve un turno de la tienda.
func (uc *UseCase) Get(ctx context.Context, storeID, shiftID string) (*dto.ShiftResponse, error) {
	shift, err := uc.shiftRepo.GetByID(shiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, domain.ErrNotFound
	}
	if shift.StoreID != storeID {
		return nil, domain.ErrForbidden
	}
	return toShiftResponse(shift), nil
}

// List lista los turnos de la tienda.
func (uc *UseCase) List(ctx context.Context, storeID string, limit, offset int) ([]*dto.ShiftResponse, error) {
	shifts, err := uc.shiftRepo.ListByStore(storeID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ShiftResponse, 0, len(shifts))
	for _, s := range shifts {
		out = append(out, toShiftResponse(s))
	}
	return out, nil
}

func toShiftResponse(s *entity.Shift) *dto.ShiftResponse {
	resp := &dto.ShiftResponse{
		ID:           s.ID,
		StoreID:      s.StoreID,
		CashierID:    s.CashierID,
		OpeningFloat: s.OpeningFloat,
		ExpectedCash: s.ExpectedCash,
		CountedCash:  s.CountedCash,
		Variance:     s.Variance,
		Status:       s.Status,
		OpenedAt:     s.OpenedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if s.ClosedAt != nil {
		resp.ClosedAt = s.ClosedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return resp
}
