package repository

import "github.com/tu-usuario/pos-pro/internal/domain/entity"

// ItemRepository define el puerto de persistencia para Item y su receta (BOM).
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetBySKU(storeID, sku string) (*entity.Item, error)
	ListByStore(storeID string, limit, offset int) ([]*entity.Item, error)
	Update(item *entity.Item) error
	// GetRecipe devuelve las líneas de receta del ítem, en orden.
	GetRecipe(itemID string) ([]entity.RecipeLine, error)
	// ReplaceRecipe reemplaza la receta completa del ítem.
	ReplaceRecipe(itemID string, lines []entity.RecipeLine) error
}
