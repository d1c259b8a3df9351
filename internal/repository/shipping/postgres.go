package shipping

import (
	"context"
	"errors"

	"storefront-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const shippingColumns = `id::text, user_id, cart_id::text, order_id::text, name, service, tracking_code, shipping_cost, delivery_time, status, created_at, updated_at`

func (r *postgresRepo) GetByCart(ctx context.Context, cartID string) (*domain.Shipping, error) {
	q := `SELECT ` + shippingColumns + ` FROM shipping WHERE cart_id = $1`
	var s domain.Shipping
	err := r.pool.QueryRow(ctx, q, cartID).Scan(
		&s.ID, &s.UserID, &s.CartID, &s.OrderID, &s.Name, &s.Service, &s.TrackingCode,
		&s.ShippingCost, &s.DeliveryTime, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) Create(ctx context.Context, shipping domain.Shipping) (*domain.Shipping, error) {
	q := `
INSERT INTO shipping (user_id, cart_id, order_id, name, service, tracking_code, shipping_cost, delivery_time, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + shippingColumns
	var s domain.Shipping
	err := r.pool.QueryRow(ctx, q,
		shipping.UserID, shipping.CartID, shipping.OrderID, shipping.Name, shipping.Service,
		shipping.TrackingCode, shipping.ShippingCost, shipping.DeliveryTime, shipping.Status,
	).Scan(
		&s.ID, &s.UserID, &s.CartID, &s.OrderID, &s.Name, &s.Service, &s.TrackingCode,
		&s.ShippingCost, &s.DeliveryTime, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) Update(ctx context.Context, shipping domain.Shipping) (*domain.Shipping, error) {
	q := `
UPDATE shipping
SET order_id = $1,
    name = $2,
    service = $3,
    tracking_code = $4,
    shipping_cost = $5,
    delivery_time = $6,
    status = $7,
    updated_at = now()
WHERE id = $8
RETURNING ` + shippingColumns
	var s domain.Shipping
	err := r.pool.QueryRow(ctx, q,
		shipping.OrderID, shipping.Name, shipping.Service, shipping.TrackingCode,
		shipping.ShippingCost, shipping.DeliveryTime, shipping.Status, shipping.ID,
	).Scan(
		&s.ID, &s.UserID, &s.CartID, &s.OrderID, &s.Name, &s.Service, &s.TrackingCode,
		&s.ShippingCost, &s.DeliveryTime, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}
