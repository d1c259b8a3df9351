package archive

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

const archiveColumns = `id::text, cart_id::text, user_id, payment_intent_id, COALESCE(payment_status, ''), collection_id, merchant_order_id, archived_at`

func (r *postgresRepo) GetByCart(ctx context.Context, cartID string) (*domain.ArchivedCart, error) {
	q := `SELECT ` + archiveColumns + ` FROM archived_carts WHERE cart_id = $1 ORDER BY archived_at DESC LIMIT 1`
	var a domain.ArchivedCart
	err := r.pool.QueryRow(ctx, q, cartID).Scan(
		&a.ID, &a.CartID, &a.UserID, &a.PaymentIntentID, &a.PaymentStatus,
		&a.CollectionID, &a.MerchantOrderID, &a.ArchivedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	items, err := r.fetchItems(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	a.Items = items
	return &a, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.ArchivedCart, error) {
	q := `SELECT ` + archiveColumns + ` FROM archived_carts WHERE user_id = $1 ORDER BY archived_at DESC`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ArchivedCart
	for rows.Next() {
		var a domain.ArchivedCart
		if err := rows.Scan(
			&a.ID, &a.CartID, &a.UserID, &a.PaymentIntentID, &a.PaymentStatus,
			&a.CollectionID, &a.MerchantOrderID, &a.ArchivedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		items, err := r.fetchItems(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Items = items
	}
	return result, nil
}

func (r *postgresRepo) SetCollection(ctx context.Context, cartID string, collectionID, merchantOrderID *string) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE archived_carts
SET collection_id = COALESCE($1, collection_id),
    merchant_order_id = COALESCE($2, merchant_order_id)
WHERE cart_id = $3
`, collectionID, merchantOrderID, cartID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) fetchItems(ctx context.Context, archivedCartID string) ([]domain.ArchivedCartItem, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id::text, archived_cart_id::text, product_id::text, variant_id::text, product_name, COALESCE(image_url, ''), quantity, price, height, width, length, weight, color_id, size_id
FROM archived_cart_items
WHERE archived_cart_id = $1
`, archivedCartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ArchivedCartItem
	for rows.Next() {
		var item domain.ArchivedCartItem
		if err := rows.Scan(
			&item.ID, &item.ArchivedCartID, &item.ProductID, &item.VariantID, &item.ProductName,
			&item.ImageURL, &item.Quantity, &item.Price,
			&item.Height, &item.Width, &item.Length, &item.Weight,
			&item.ColorID, &item.SizeID,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
