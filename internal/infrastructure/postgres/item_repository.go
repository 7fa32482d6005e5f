package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/pos-pro/internal/domain"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, store_id, sku, name, description, price, cost, is_composite, created_at, updated_at`

// Create persiste un nuevo ítem.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.StoreID, item.SKU, item.Name, item.Description,
		item.Price, item.Cost, item.IsComposite, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetBySKU obtiene un ítem por tienda y SKU.
func (r *ItemRepo) GetBySKU(storeID, sku string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE store_id = $1 AND sku = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, storeID, sku))
}

func (r *ItemRepo) scanOne(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(
		&it.ID, &it.StoreID, &it.SKU, &it.Name, &it.Description,
		&it.Price, &it.Cost, &it.IsComposite, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// ListByStore lista ítems de la tienda con paginación.
func (r *ItemRepo) ListByStore(storeID string, limit, offset int) ([]*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + ` FROM items
		WHERE store_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(
			&it.ID, &it.StoreID, &it.SKU, &it.Name, &it.Description,
			&it.Price, &it.Cost, &it.IsComposite, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// Update actualiza los campos editables del ítem.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items
		SET name = $2, description = $3, price = $4, cost = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Description, item.Price, item.Cost, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// GetRecipe devuelve las líneas de receta del ítem, en orden.
func (r *ItemRepo) GetRecipe(itemID string) ([]entity.RecipeLine, error) {
	query := `
		SELECT item_id, raw_material_id, quantity, position
		FROM recipe_lines WHERE item_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, itemID)
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	defer rows.Close()

	var lines []entity.RecipeLine
	for rows.Next() {
		var l entity.RecipeLine
		if err := rows.Scan(&l.ItemID, &l.RawMaterialID, &l.Quantity, &l.Position); err != nil {
			return nil, fmt.Errorf("scan recipe line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// ReplaceRecipe reemplaza la receta completa del ítem.
func (r *ItemRepo) ReplaceRecipe(itemID string, lines []entity.RecipeLine) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM recipe_lines WHERE item_id = $1`, itemID); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	for _, l := range lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO recipe_lines (item_id, raw_material_id, quantity, position)
			VALUES ($1, $2, $3, $4)`,
			itemID, l.RawMaterialID, l.Quantity, l.Position,
		)
		if err != nil {
			return fmt.Errorf("insert recipe line: %w", err)
		}
	}
	return nil
}
