package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khadamat/marketplace-api/internal/core/domain"
)

// OrderRepository persists buyer orders.
type OrderRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewOrderRepository(pool *pgxpool.Pool, timeout time.Duration) *OrderRepository {
	return &OrderRepository{pool: pool, timeout: timeout}
}

const orderColumns = `id, service_id, buyer_id, seller_id, status, amount_sar, payment_proof, created_at, updated_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.ServiceID, &o.BuyerID, &o.SellerID, &o.Status, &o.AmountSAR, &o.PaymentProof, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	const q = `
		INSERT INTO orders (service_id, buyer_id, seller_id, status, amount_sar, payment_proof, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + orderColumns

	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	created, err := scanOrder(r.pool.QueryRow(ctx, q,
		order.ServiceID, order.BuyerID, order.SellerID, order.Status, order.AmountSAR, order.PaymentProof, order.CreatedAt, order.UpdatedAt))
	if err != nil {
		return nil, storeErr("create order", err)
	}
	return created, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	order, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, storeErr("find order", err)
	}
	return order, nil
}

func (r *OrderRepository) ListForUser(ctx context.Context, userID string, limit, offset int) ([]domain.Order, error) {
	const q = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE buyer_id = $1 OR seller_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, userID, limit, offset)
	if err != nil {
		return nil, storeErr("list orders", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, storeErr("scan order", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list orders", err)
	}
	return orders, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	const q = `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`

	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, q, id, status)
	if err != nil {
		return storeErr("update order status", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
