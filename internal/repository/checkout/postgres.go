package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"storefront-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Finalize(ctx context.Context, in FinalizeInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var existingID string
	err = tx.QueryRow(ctx, `SELECT id::text FROM orders WHERE cart_id = $1 FOR UPDATE`, in.CartID).Scan(&existingID)
	if err == nil {
		r.logger.Printf("checkout repo: cart_id=%s already finalized as order_id=%s", in.CartID, existingID)
		return nil, ErrOrderExists
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	order, err := insertOrder(ctx, tx, in.Order)
	if err != nil {
		r.logger.Printf("checkout repo: insert order cart_id=%s error=%v", in.CartID, err)
		return nil, orderConflict(err)
	}

	cmd, err := tx.Exec(ctx, `
UPDATE shipping
SET order_id = $1, updated_at = now()
WHERE cart_id = $2
`, order.ID, in.CartID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShippingLink, err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, ErrShippingMissing
	}

	if err := insertArchive(ctx, tx, in.Archive); err != nil {
		r.logger.Printf("checkout repo: archive cart_id=%s error=%v", in.CartID, err)
		return nil, err
	}

	if err := decrementStock(ctx, tx, in.Archive.Items); err != nil {
		return nil, err
	}

	cmd, err = tx.Exec(ctx, `DELETE FROM carts WHERE id = $1`, in.CartID)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("checkout repo: finalized cart_id=%s order_id=%s items=%d", in.CartID, order.ID, len(order.Items))
	return order, nil
}

// orderConflict maps the unique violation on orders.cart_id to ErrOrderExists.
// The FOR UPDATE guard only sees committed rows, so the loser of two
// concurrent finalizes surfaces here instead.
func orderConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrOrderExists
	}
	return err
}

func insertOrder(ctx context.Context, tx pgx.Tx, o domain.Order) (*domain.Order, error) {
	err := tx.QueryRow(ctx, `
INSERT INTO orders (id, user_id, customer_id, cart_id, status, payment_id, payment_status, payment_method, payment_date)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9)
RETURNING id::text, created_at
`, o.ID, o.UserID, o.CustomerID, o.CartID, o.Status, o.PaymentID, o.PaymentStatus, o.PaymentMethod, o.PaymentDate).
		Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return nil, err
	}

	for i := range o.Items {
		o.Items[i].OrderID = o.ID
		item := o.Items[i]
		if _, err := tx.Exec(ctx, `
INSERT INTO order_items (id, order_id, product_id, product_name, image_url, quantity, price)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, item.ID, item.OrderID, item.ProductID, item.ProductName, item.ImageURL, item.Quantity, item.Price); err != nil {
			return nil, err
		}
	}
	return &o, nil
}

func insertArchive(ctx context.Context, tx pgx.Tx, a domain.ArchivedCart) error {
	_, err := tx.Exec(ctx, `
INSERT INTO archived_carts (id, cart_id, user_id, payment_intent_id, payment_status, collection_id, merchant_order_id, archived_at)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)
`, a.ID, a.CartID, a.UserID, a.PaymentIntentID, a.PaymentStatus, a.CollectionID, a.MerchantOrderID, a.ArchivedAt)
	if err != nil {
		return err
	}

	for _, item := range a.Items {
		if _, err := tx.Exec(ctx, `
INSERT INTO archived_cart_items (id, archived_cart_id, product_id, variant_id, product_name, image_url, quantity, price, height, width, length, weight, color_id, size_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`, item.ID, a.ID, item.ProductID, item.VariantID, item.ProductName, item.ImageURL,
			item.Quantity, item.Price, item.Height, item.Width, item.Length, item.Weight,
			item.ColorID, item.SizeID); err != nil {
			return err
		}
	}
	return nil
}

// decrementStock consumes inventory inside the finalize transaction so two
// approved payments cannot both claim the same unit.
func decrementStock(ctx context.Context, tx pgx.Tx, items []domain.ArchivedCartItem) error {
	for _, item := range items {
		var cmd string
		var id string
		if item.VariantID != nil {
			cmd = `UPDATE product_variants SET stock = stock - $1 WHERE id = $2 AND stock >= $1`
			id = *item.VariantID
		} else {
			cmd = `UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`
			id = item.ProductID
		}
		tag, err := tx.Exec(ctx, cmd, item.Quantity, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrInsufficientStock
		}
	}
	return nil
}
