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

// ItemCache puerto de caché de lectura para ítems y sus recetas. Las
// implementaciones degradan a lectura de BD ante cualquier falla: el caché
// nunca es fuente de verdad.
type ItemCache interface {
	Get(ctx context.Context, itemID string) (*entity.Item, []entity.RecipeLine, bool)
	Set(ctx context.Context, item *entity.Item, recipe []entity.RecipeLine)
	Invalidate(ctx context.Context, itemID string)
}

// ItemUseCase CRUD de ítems vendibles y sus recetas.
type ItemUseCase struct {
	itemRepo repository.ItemRepository
	rawRepo  repository.RawMaterialRepository
	cache    ItemCache
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(itemRepo repository.ItemRepository, rawRepo repository.RawMaterialRepository, cache ItemCache) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo, rawRepo: rawRepo, cache: cache}
}

// Create crea un ítem. Un compuesto exige receta con líneas válidas; las
// materias primas referenciadas deben existir y ser de la tienda.
func (uc *ItemUseCase) Create(ctx context.Context, storeID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.SKU == "" || in.Name == "" || in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.IsComposite && len(in.Recipe) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !in.IsComposite && len(in.Recipe) > 0 {
		return nil, domain.ErrInvalidInput
	}

	recipe := make([]entity.RecipeLine, 0, len(in.Recipe))
	for i, line := range in.Recipe {
		if line.RawMaterialID == "" || !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		rm, err := uc.rawRepo.GetByID(line.RawMaterialID)
		if err != nil || rm == nil {
			return nil, domain.ErrNotFound
		}
		if rm.StoreID != storeID {
			return nil, domain.ErrForbidden
		}
		recipe = append(recipe, entity.RecipeLine{
			RawMaterialID: line.RawMaterialID,
			Quantity:      line.Quantity,
			Position:      i,
		})
	}

	now := time.Now()
	item := &entity.Item{
		ID:          uuid.New().String(),
		StoreID:     storeID,
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Cost:        in.Cost,
		IsComposite: in.IsComposite,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	if len(recipe) > 0 {
		for i := range recipe {
			recipe[i].ItemID = item.ID
		}
		if err := uc.itemRepo.ReplaceRecipe(item.ID, recipe); err != nil {
			return nil, err
		}
	}
	return toItemResponse(item, recipe), nil
}

// GetByID devuelve el ítem con su receta, pasando por el caché de lectura.
func (uc *ItemUseCase) GetByID(ctx context.Context, storeID, id string) (*dto.ItemResponse, error) {
	if item, recipe, ok := uc.cache.Get(ctx, id); ok {
		if item.StoreID != storeID {
			return nil, domain.ErrForbidden
		}
		return toItemResponse(item, recipe), nil
	}
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.StoreID != storeID {
		return nil, domain.ErrForbidden
	}
	var recipe []entity.RecipeLine
	if item.IsComposite {
		recipe, err = uc.itemRepo.GetRecipe(id)
		if err != nil {
			return nil, err
		}
	}
	uc.cache.Set(ctx, item, recipe)
	return toItemResponse(item, recipe), nil
}

// List lista ítems de la tienda.
func (uc *ItemUseCase) List(ctx context.Context, storeID string, limit, offset int) ([]*dto.ItemResponse, error) {
	items, err := uc.itemRepo.ListByStore(storeID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item, nil))
	}
	return out, nil
}

// UpdateRecipe reemplaza la receta de un ítem compuesto e invalida el caché.
// No afecta ventas ya comprometidas: sus consumos quedaron congelados en el
// snapshot de componentes.
func (uc *ItemUseCase) UpdateRecipe(ctx context.Context, storeID, itemID string, lines []dto.RecipeLineRequest) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.StoreID != storeID {
		return nil, domain.ErrForbidden
	}
	if !item.IsComposite || len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	recipe := make([]entity.RecipeLine, 0, len(lines))
	for i, line := range lines {
		if line.RawMaterialID == "" || !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		rm, err := uc.rawRepo.GetByID(line.RawMaterialID)
		if err != nil || rm == nil {
			return nil, domain.ErrNotFound
		}
		if rm.StoreID != storeID {
			return nil, domain.ErrForbidden
		}
		recipe = append(recipe, entity.RecipeLine{
			ItemID:        itemID,
			RawMaterialID: line.RawMaterialID,
			Quantity:      line.Quantity,
			Position:      i,
		})
	}
	if err := uc.itemRepo.ReplaceRecipe(itemID, recipe); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, itemID)
	return toItemResponse(item, recipe), nil
}

func toItemResponse(item *entity.Item, recipe []entity.RecipeLine) *dto.ItemResponse {
	resp := &dto.ItemResponse{
		ID:          item.ID,
		StoreID:     item.StoreID,
		SKU:         item.SKU,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Cost:        item.Cost,
		IsComposite: item.IsComposite,
	}
	for _, line := range recipe {
		resp.Recipe = append(resp.Recipe, dto.RecipeLineRequest{
			RawMaterialID: line.RawMaterialID,
			Quantity:      line.Quantity,
		})
	}
	return resp
}
