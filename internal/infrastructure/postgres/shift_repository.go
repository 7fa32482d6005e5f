package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/domain/repository"
)

var _ repository.ShiftRepository = (*ShiftRepo)(nil)

// ShiftRepo implementación de ShiftRepository sobre PostgreSQL.
type ShiftRepo struct {
	q Querier
}

func NewShiftRepository(q Querier) *ShiftRepo {
	return &ShiftRepo{q: q}
}

const shiftColumns = `id, store_id, cashier_id, opening_float, expected_cash, counted_cash,
	variance, status, opened_at, closed_at`

// Create persiste un nuevo turno de caja.
func (r *ShiftRepo) Create(s *entity.Shift) error {
	query := `
		INSERT INTO shifts (` + shiftColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.StoreID, s.CashierID, s.OpeningFloat, s.ExpectedCash, s.CountedCash,
		s.Variance, s.Status, s.OpenedAt, s.ClosedAt,
	)
	if err != nil {
		return fmt.Errorf("insert shift: %w", err)
	}
	return nil
}

// GetByID obtiene un turno por ID.
func (r *ShiftRepo) GetByID(id string) (*entity.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetOpenByCashier obtiene el turno abierto del cajero en la tienda, si existe.
func (r *ShiftRepo) GetOpenByCashier(storeID, cashierID string) (*entity.Shift, error) {
	query := `
		SELECT ` + shiftColumns + ` FROM shifts
		WHERE store_id = $1 AND cashier_id = $2 AND status = $3`
	return r.scanOne(r.q.QueryRow(context.Background(), query, storeID, cashierID, entity.ShiftStatusOpen))
}

func (r *ShiftRepo) scanOne(row pgx.Row) (*entity.Shift, error) {
	var s entity.Shift
	err := row.Scan(
		&s.ID, &s.StoreID, &s.CashierID, &s.OpeningFloat, &s.ExpectedCash, &s.CountedCash,
		&s.Variance, &s.Status, &s.OpenedAt, &s.ClosedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shift: %w", err)
	}
	return &s, nil
}

// Update actualiza el turno (cierre con arqueo).
func (r *ShiftRepo) Update(s *entity.Shift) error {
	query := `
		UPDATE shifts
		SET expected_cash = $2, counted_cash = $3, variance = $4, status = $5, closed_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.ExpectedCash, s.CountedCash, s.Variance, s.Status, s.ClosedAt,
	)
	if err != nil {
		return fmt.Errorf("update shift: %w", err)
	}
	return nil
}

// ListByStore lista turnos de la tienda, los más recientes primero.
func (r *ShiftRepo) ListByStore(storeID string, limit, offset int) ([]*entity.Shift, error) {
	query := `
		SELECT ` + shiftColumns + ` FROM shifts
		WHERE store_id = $1 ORDER BY opened_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []*entity.Shift
	for rows.Next() {
		var s entity.Shift
		if err := rows.Scan(
			&s.ID, &s.StoreID, &s.CashierID, &s.OpeningFloat, &s.ExpectedCash, &s.CountedCash,
			&s.Variance, &s.Status, &s.OpenedAt, &s.ClosedAt,
		); err != nil {
			return nil, fmt.Errorf("scan shift: %w", err)
		}
		shifts = append(shifts, &s)
	}
	return shifts, rows.Err()
}
