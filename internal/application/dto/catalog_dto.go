package dto

import "github.com/shopspring/decimal"

// RecipeLineRequest una línea de receta (BOM) al crear/actualizar un ítem compuesto.
type RecipeLineRequest struct {
	RawMaterialID string          `json:"raw_material_id"`
	Quantity      decimal.Decimal `json:"quantity"` // por unidad del ítem
}

// CreateItemRequest crea un ítem vendible. Recipe es obligatoria si IsComposite.
type CreateItemRequest struct {
	SKU         string              `json:"sku"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Price       decimal.Decimal     `json:"price"`
	Cost        decimal.Decimal     `json:"cost"`
	IsComposite bool                `json:"is_composite"`
	Recipe      []RecipeLineRequest `json:"recipe,omitempty"`
}

// ItemResponse representación de un ítem con su receta.
type ItemResponse struct {
	ID          string              `json:"id"`
	StoreID     string              `json:"store_id"`
	SKU         string              `json:"sku"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Price       decimal.Decimal     `json:"price"`
	Cost        decimal.Decimal     `json:"cost"`
	IsComposite bool                `json:"is_composite"`
	Recipe      []RecipeLineRequest `json:"recipe,omitempty"`
}

// CreateRawMaterialRequest crea una materia prima.
type CreateRawMaterialRequest struct {
	Name string          `json:"name"`
	Unit string          `json:"unit"`
	Cost decimal.Decimal `json:"cost"`
}

// RawMaterialResponse representación de una materia prima.
type RawMaterialResponse struct {
	ID      string          `json:"id"`
	StoreID string          `json:"store_id"`
	Name    string          `json:"name"`
	Unit    string          `json:"unit"`
	Cost    decimal.Decimal `json:"cost"`
}

// CreateCustomerRequest crea un cliente.
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CustomerResponse cliente con su estado de fidelidad.
type CustomerResponse struct {
	ID            string          `json:"id"`
	StoreID       string          `json:"store_id"`
	Name          string          `json:"name"`
	Email         string          `json:"email,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	LoyaltyPoints int64           `json:"loyalty_points"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	Tier          string          `json:"tier"`
}

// CreateStoreRequest crea una tienda.
type CreateStoreRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// StoreResponse representación de una tienda.
type StoreResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}
