package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL.
// GetForUpdate solo tiene sentido dentro de una transacción (Querier = tx).
type StockRepo struct {
	q Querier
}

func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el saldo actual. Si no hay fila, devuelve un saldo en cero.
func (r *StockRepo) Get(storeID, entityKind, entityID string) (*entity.Stock, error) {
	return r.get(storeID, entityKind, entityID, false)
}

// GetForUpdate obtiene el saldo bloqueando la fila (SELECT ... FOR UPDATE).
// Una fila inexistente también devuelve saldo cero; el Upsert posterior la crea.
func (r *StockRepo) GetForUpdate(storeID, entityKind, entityID string) (*entity.Stock, error) {
	return r.get(storeID, entityKind, entityID, true)
}

func (r *StockRepo) get(storeID, entityKind, entityID string, forUpdate bool) (*entity.Stock, error) {
	query := `
		SELECT store_id, entity_kind, entity_id, quantity, updated_at
		FROM stock WHERE store_id = $1 AND entity_kind = $2 AND entity_id = $3`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, storeID, entityKind, entityID).Scan(
		&s.StoreID, &s.EntityKind, &s.EntityID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{
				StoreID:    storeID,
				EntityKind: entityKind,
				EntityID:   entityID,
				Quantity:   decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Upsert crea o actualiza el saldo de una entidad.
func (r *StockRepo) Upsert(s *entity.Stock) error {
	query := `
		INSERT INTO stock (store_id, entity_kind, entity_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (store_id, entity_kind, entity_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		s.StoreID, s.EntityKind, s.EntityID, s.Quantity, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByStore lista todos los saldos de la tienda.
func (r *StockRepo) ListByStore(storeID string) ([]*entity.Stock, error) {
	query := `
		SELECT store_id, entity_kind, entity_id, quantity, updated_at
		FROM stock WHERE store_id = $1 ORDER BY entity_kind, entity_id`
	rows, err := r.q.Query(context.Background(), query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var stocks []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.StoreID, &s.EntityKind, &s.EntityID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		stocks = append(stocks, &s)
	}
	return stocks, rows.Err()
}
