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

var _ repository.RawMaterialRepository = (*RawMaterialRepo)(nil)

// RawMaterialRepo implementación de RawMaterialRepository sobre PostgreSQL.
type RawMaterialRepo struct {
	q Querier
}

func NewRawMaterialRepository(q Querier) *RawMaterialRepo {
	return &RawMaterialRepo{q: q}
}

// Create persiste una nueva materia prima.
func (r *RawMaterialRepo) Create(rm *entity.RawMaterial) error {
	query := `
		INSERT INTO raw_materials (id, store_id, name, unit, cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		rm.ID, rm.StoreID, rm.Name, rm.Unit, rm.Cost, rm.CreatedAt, rm.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert raw material: %w", err)
	}
	return nil
}

// GetByID obtiene una materia prima por ID.
func (r *RawMaterialRepo) GetByID(id string) (*entity.RawMaterial, error) {
	query := `
		SELECT id, store_id, name, unit, cost, created_at, updated_at
		FROM raw_materials WHERE id = $1`
	var rm entity.RawMaterial
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rm.ID, &rm.StoreID, &rm.Name, &rm.Unit, &rm.Cost, &rm.CreatedAt, &rm.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get raw material: %w", err)
	}
	return &rm, nil
}

// ListByStore lista materias primas de la tienda.
func (r *RawMaterialRepo) ListByStore(storeID string, limit, offset int) ([]*entity.RawMaterial, error) {
	query := `
		SELECT id, store_id, name, unit, cost, created_at, updated_at
		FROM raw_materials WHERE store_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list raw materials: %w", err)
	}
	defer rows.Close()

	var materials []*entity.RawMaterial
	for rows.Next() {
		var rm entity.RawMaterial
		if err := rows.Scan(
			&rm.ID, &rm.StoreID, &rm.Name, &rm.Unit, &rm.Cost, &rm.CreatedAt, &rm.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan raw material: %w", err)
		}
		materials = append(materials, &rm)
	}
	return materials, rows.Err()
}

// Update actualiza una materia prima existente.
func (r *RawMaterialRepo) Update(rm *entity.RawMaterial) error {
	query := `
		UPDATE raw_materials
		SET name = $2, unit = $3, cost = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		rm.ID, rm.Name, rm.Unit, rm.Cost, rm.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update raw material: %w", err)
	}
	return nil
}
