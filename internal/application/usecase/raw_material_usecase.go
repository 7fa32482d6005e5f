package usecase

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

// RawMaterialUseCase CRUD de materias primas.
type RawMaterialUseCase struct {
	rawRepo repository.RawMaterialRepository
}

// NewRawMaterialUseCase construye el caso de uso.
func NewRawMaterialUseCase(rawRepo repository.RawMaterialRepository) *RawMaterialUseCase {
	return &RawMaterialUseCase{rawRepo: rawRepo}
}

// Create crea una materia prima.
func (uc *RawMaterialUseCase) Create(ctx context.Context, storeID string, in dto.CreateRawMaterialRequest) (*dto.RawMaterialResponse, error) {
	if in.Name == "" || in.Unit == "" || in.Cost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	rm := &entity.RawMaterial{
		ID:        uuid.New().String(),
		StoreID:   storeID,
		Name:      in.Name,
		Unit:      in.Unit,
		Cost:      in.Cost,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.rawRepo.Create(rm); err != nil {
		return nil, err
	}
	return toRawMaterialResponse(rm), nil
}

// GetByID devuelve una materia prima de la tienda.
func (uc *RawMaterialUseCase) GetByID(ctx context.Context, storeID, id string) (*dto.RawMaterialResponse, error) {
	rm, err := uc.rawRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rm == nil {
		return nil, domain.ErrNotFound
	}
	if rm.StoreID != storeID {
		return nil, domain.ErrForbidden
	}
	return toRawMaterialResponse(rm), nil
}

// List lista materias primas de la tienda.
func (uc *RawMaterialUseCase) List(ctx context.Context, storeID string, limit, offset int) ([]*dto.RawMaterialResponse, error) {
	rms, err := uc.rawRepo.ListByStore(storeID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.RawMaterialResponse, 0, len(rms))
	for _, rm := range rms {
		out = append(out, toRawMaterialResponse(rm))
	}
	return out, nil
}

func toRawMaterialResponse(rm *entity.RawMaterial) *dto.RawMaterialResponse {
	return &dto.RawMaterialResponse{
		ID:      rm.ID,
		StoreID: rm.StoreID,
		Name:    rm.Name,
		Unit:    rm.Unit,
		Cost:    rm.Cost,
	}
}
