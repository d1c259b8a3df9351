package customer

import (
	"context"
	"errors"

	"storefront-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetByUser(ctx context.Context, userID string) (*domain.Customer, error) {
	const q = `
SELECT id::text, user_id, first_order_date, customer_since
FROM customers
WHERE user_id = $1
`
	var c domain.Customer
	err := r.pool.QueryRow(ctx, q, userID).Scan(&c.ID, &c.UserID, &c.FirstOrderDate, &c.CustomerSince)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) Create(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (user_id, first_order_date, customer_since)
VALUES ($1, $2, $3)
RETURNING id::text, user_id, first_order_date, customer_since
`
	var c domain.Customer
	err := r.pool.QueryRow(ctx, q, customer.UserID, customer.FirstOrderDate, customer.CustomerSince).Scan(
		&c.ID, &c.UserID, &c.FirstOrderDate, &c.CustomerSince,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &c, nil
}
