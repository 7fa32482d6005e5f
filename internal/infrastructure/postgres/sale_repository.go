package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-pro/internal/domain/entity"
	"github.com/tu-usuario/pos-pro/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL.
// Persiste la venta como agregado: cabecera, renglones, componentes y pagos.
type SaleRepo struct {
	q Querier
}

func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, store_id, customer_id, subtotal, discount_type, discount_value,
	discount_amount, tax, grand_total, status, points_accrued,
	refund_reason, refunded_by, approved_by, created_at, updated_at`

// Create persiste la venta completa con sus renglones, componentes consumidos y pagos.
// Debe ejecutarse dentro de una transacción.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	ctx := context.Background()
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.StoreID, sale.CustomerID,
		sale.Subtotal, sale.DiscountType, sale.DiscountValue,
		sale.DiscountAmount, sale.Tax, sale.GrandTotal,
		string(sale.Status), sale.PointsAccrued,
		sale.RefundReason, sale.RefundedBy, sale.ApprovedBy,
		sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	for _, item := range sale.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_items (id, sale_id, item_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)`,
			item.ID, sale.ID, item.ItemID, item.Quantity, item.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
		for _, c := range item.Components {
			_, err := r.q.Exec(ctx, `
				INSERT INTO sale_item_components (sale_item_id, entity_kind, entity_id, quantity)
				VALUES ($1, $2, $3, $4)`,
				item.ID, c.EntityKind, c.EntityID, c.Quantity,
			)
			if err != nil {
				return fmt.Errorf("insert sale item component: %w", err)
			}
		}
	}

	if err := r.insertPayments(ctx, sale.ID, sale.Payments); err != nil {
		return err
	}
	return nil
}

func (r *SaleRepo) insertPayments(ctx context.Context, saleID string, payments []entity.Payment) error {
	for _, p := range payments {
		_, err := r.q.Exec(ctx, `
			INSERT INTO payments (id, sale_id, type, amount, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			p.ID, saleID, p.Type, p.Amount, p.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}
	}
	return nil
}

// GetByID carga la venta completa con renglones, componentes y pagos.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	ctx := context.Background()
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`

	var s entity.Sale
	var customerID *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.StoreID, &customerID,
		&s.Subtotal, &s.DiscountType, &s.DiscountValue,
		&s.DiscountAmount, &s.Tax, &s.GrandTotal,
		&s.Status, &s.PointsAccrued,
		&s.RefundReason, &s.RefundedBy, &s.ApprovedBy,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if customerID != nil {
		s.CustomerID = *customerID
	}

	if err := r.loadItems(ctx, &s); err != nil {
		return nil, err
	}
	if err := r.loadPayments(ctx, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SaleRepo) loadItems(ctx context.Context, s *entity.Sale) error {
	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, item_id, quantity, unit_price
		FROM sale_items WHERE sale_id = $1 ORDER BY id`, s.ID)
	if err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ItemID, &it.Quantity, &it.UnitPrice); err != nil {
			return fmt.Errorf("scan sale item: %w", err)
		}
		s.Items = append(s.Items, it)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range s.Items {
		comps, err := r.loadComponents(ctx, s.Items[i].ID)
		if err != nil {
			return err
		}
		s.Items[i].Components = comps
	}
	return nil
}

func (r *SaleRepo) loadComponents(ctx context.Context, saleItemID string) ([]entity.SaleItemComponent, error) {
	rows, err := r.q.Query(ctx, `
		SELECT sale_item_id, entity_kind, entity_id, quantity
		FROM sale_item_components WHERE sale_item_id = $1 ORDER BY entity_id`, saleItemID)
	if err != nil {
		return nil, fmt.Errorf("list sale item components: %w", err)
	}
	defer rows.Close()

	var comps []entity.SaleItemComponent
	for rows.Next() {
		var c entity.SaleItemComponent
		if err := rows.Scan(&c.SaleItemID, &c.EntityKind, &c.EntityID, &c.Quantity); err != nil {
			return nil, fmt.Errorf("scan sale item component: %w", err)
		}
		comps = append(comps, c)
	}
	return comps, rows.Err()
}

func (r *SaleRepo) loadPayments(ctx context.Context, s *entity.Sale) error {
	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, type, amount, created_at
		FROM payments WHERE sale_id = $1 ORDER BY created_at`, s.ID)
	if err != nil {
		return fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.SaleID, &p.Type, &p.Amount, &p.CreatedAt); err != nil {
			return fmt.Errorf("scan payment: %w", err)
		}
		s.Payments = append(s.Payments, p)
	}
	return rows.Err()
}

// ListByStore lista ventas de la tienda (solo cabeceras), las más recientes primero.
func (r *SaleRepo) ListByStore(storeID string, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + ` FROM sales
		WHERE store_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var customerID *string
		if err := rows.Scan(
			&s.ID, &s.StoreID, &customerID,
			&s.Subtotal, &s.DiscountType, &s.DiscountValue,
			&s.DiscountAmount, &s.Tax, &s.GrandTotal,
			&s.Status, &s.PointsAccrued,
			&s.RefundReason, &s.RefundedBy, &s.ApprovedBy,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if customerID != nil {
			s.CustomerID = *customerID
		}
		sales = append(sales, &s)
	}
	return sales, rows.Err()
}

// UpdateStatus actualiza el estado y los metadatos de reembolso de la venta.
func (r *SaleRepo) UpdateStatus(sale *entity.Sale) error {
	query := `
		UPDATE sales
		SET status = $2, refund_reason = $3, refunded_by = $4, approved_by = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, string(sale.Status),
		sale.RefundReason, sale.RefundedBy, sale.ApprovedBy, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	return nil
}

// AttachPayments agrega pagos a una venta existente.
func (r *SaleRepo) AttachPayments(saleID string, payments []entity.Payment) error {
	return r.insertPayments(context.Background(), saleID, payments)
}

// SetPointsAccrued registra los puntos acumulados por la venta.
func (r *SaleRepo) SetPointsAccrued(saleID string, points int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sales SET points_accrued = $2 WHERE id = $1`, saleID, points)
	if err != nil {
		return fmt.Errorf("set points accrued: %w", err)
	}
	return nil
}

// SumCashPayments suma los pagos en efectivo de ventas COMPLETED de la tienda
// en la ventana [from, to). Las ventas reembolsadas no cuentan: ese efectivo
// ya salió de la caja al momento del reembolso.
func (r *SaleRepo) SumCashPayments(storeID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(p.amount), 0)
		FROM payments p
		JOIN sales s ON s.id = p.sale_id
		WHERE s.store_id = $1
		  AND s.status = $2
		  AND p.type = $3
		  AND s.created_at >= $4 AND s.created_at < $5`
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(), query,
		storeID, string(entity.SaleStatusCompleted), entity.PaymentTypeCash, from, to,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum cash payments: %w", err)
	}
	return total, nil
}
