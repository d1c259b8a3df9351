package cart

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
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

const cartColumns = `id::text, user_id, payment_intent_id, COALESCE(payment_status, ''), collection_id, merchant_order_id, created_at`

const itemColumns = `id::text, cart_id::text, product_id::text, variant_id::text, product_name, COALESCE(image_url, ''), quantity, price, height, width, length, weight, color_id, size_id, has_variants, created_at`

func (r *postgresRepo) Create(ctx context.Context, cart domain.Cart) (*domain.Cart, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var cartID string
	err = tx.QueryRow(ctx, `
INSERT INTO carts (user_id, payment_intent_id, payment_status)
VALUES ($1, $2, NULLIF($3, ''))
RETURNING id::text
`, cart.UserID, cart.PaymentIntentID, cart.PaymentStatus).Scan(&cartID)
	if err != nil {
		r.logger.Printf("cart repo: create user_id=%s error=%v", cart.UserID, err)
		return nil, err
	}

	for _, item := range cart.Items {
		if err := insertItem(ctx, tx, cartID, item); err != nil {
			r.logger.Printf("cart repo: insert item cart_id=%s product_id=%s error=%v", cartID, item.ProductID, err)
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, cartID)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Cart, error) {
	return r.fetchCart(ctx, `SELECT `+cartColumns+` FROM carts WHERE id = $1`, id)
}

func (r *postgresRepo) GetByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	return r.fetchCart(ctx, `
SELECT `+cartColumns+`
FROM carts
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT 1
`, userID)
}

func (r *postgresRepo) GetByPaymentIntent(ctx context.Context, paymentIntentID string) (*domain.Cart, error) {
	return r.fetchCart(ctx, `SELECT `+cartColumns+` FROM carts WHERE payment_intent_id = $1`, paymentIntentID)
}

func (r *postgresRepo) UpsertItem(ctx context.Context, cartID string, item domain.CartItem) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var lineID string
	var existingQty int
	err = tx.QueryRow(ctx, `
SELECT id::text, quantity
FROM cart_items
WHERE cart_id = $1
  AND product_id = $2
  AND color_id IS NOT DISTINCT FROM $3
  AND size_id IS NOT DISTINCT FROM $4
`, cartID, item.ProductID, item.ColorID, item.SizeID).Scan(&lineID, &existingQty)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	if err == nil {
		if _, err := tx.Exec(ctx, `
UPDATE cart_items
SET quantity = $1
WHERE id = $2
`, existingQty+item.Quantity, lineID); err != nil {
			return err
		}
	} else {
		if err := insertItem(ctx, tx, cartID, item); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) ChangeItemQuantity(ctx context.Context, cartID, itemID string, quantity int) error {
	if quantity <= 0 {
		return r.RemoveItem(ctx, cartID, itemID)
	}
	cmd, err := r.pool.Exec(ctx, `
UPDATE cart_items
SET quantity = $1
WHERE id = $2 AND cart_id = $3
`, quantity, itemID, cartID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) RemoveItem(ctx context.Context, cartID, itemID string) error {
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM cart_items
WHERE id = $1 AND cart_id = $2
`, itemID, cartID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) SetPaymentPreference(ctx context.Context, cartID, preferenceID, status string) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE carts
SET payment_intent_id = $1, payment_status = $2
WHERE id = $3
`, preferenceID, status, cartID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) SetCollection(ctx context.Context, cartID string, collectionID, merchantOrderID *string) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE carts
SET collection_id = COALESCE($1, collection_id),
    merchant_order_id = COALESCE($2, merchant_order_id)
WHERE id = $3
`, collectionID, merchantOrderID, cartID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) fetchCart(ctx context.Context, cartQuery string, args ...interface{}) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.pool.QueryRow(ctx, cartQuery, args...).Scan(
		&cart.ID,
		&cart.UserID,
		&cart.PaymentIntentID,
		&cart.PaymentStatus,
		&cart.CollectionID,
		&cart.MerchantOrderID,
		&cart.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
SELECT `+itemColumns+`
FROM cart_items
WHERE cart_id = $1
ORDER BY created_at ASC
`, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(
			&item.ID, &item.CartID, &item.ProductID, &item.VariantID, &item.ProductName,
			&item.ImageURL, &item.Quantity, &item.Price,
			&item.Height, &item.Width, &item.Length, &item.Weight,
			&item.ColorID, &item.SizeID, &item.HasVariants, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &cart, nil
}

func insertItem(ctx context.Context, tx pgx.Tx, cartID string, item domain.CartItem) error {
	id := item.ID
	if id == "" {
		id = uuid.NewString()
	}
	_, err := tx.Exec(ctx, `
INSERT INTO cart_items (id, cart_id, product_id, variant_id, product_name, image_url, quantity, price, height, width, length, weight, color_id, size_id, has_variants)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
`, id, cartID, item.ProductID, item.VariantID, item.ProductName, item.ImageURL,
		item.Quantity, item.Price, item.Height, item.Width, item.Length, item.Weight,
		item.ColorID, item.SizeID, item.HasVariants)
	return err
}
