package product

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront-backend/internal/domain"
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

const productColumns = `id::text, name, COALESCE(description, ''), price, stock, COALESCE(image_url, ''), height, width, length, weight, has_variants, created_at`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) GetVariantByID(ctx context.Context, id string) (*domain.ProductVariant, error) {
	const q = `
SELECT id::text, product_id::text, color_id, size_id, price, stock, COALESCE(image_url, ''), height, width, length, weight, created_at
FROM product_variants
WHERE id = $1
`
	var v domain.ProductVariant
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&v.ID, &v.ProductID, &v.ColorID, &v.SizeID, &v.Price, &v.Stock, &v.ImageURL,
		&v.Height, &v.Width, &v.Length, &v.Weight, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get variant id=%s error=%v", id, err)
		return nil, err
	}
	return &v, nil
}

func (r *postgresRepo) ListVariantsByProduct(ctx context.Context, productID string) ([]domain.ProductVariant, error) {
	const q = `
SELECT id::text, product_id::text, color_id, size_id, price, stock, COALESCE(image_url, ''), height, width, length, weight, created_at
FROM product_variants
WHERE product_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ProductVariant
	for rows.Next() {
		var v domain.ProductVariant
		if err := rows.Scan(
			&v.ID, &v.ProductID, &v.ColorID, &v.SizeID, &v.Price, &v.Stock, &v.ImageURL,
			&v.Height, &v.Width, &v.Length, &v.Weight, &v.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	q := `
INSERT INTO products (name, description, price, stock, image_url, height, width, length, weight, has_variants)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (name) DO UPDATE SET
	description = EXCLUDED.description,
	price = EXCLUDED.price,
	stock = EXCLUDED.stock,
	image_url = EXCLUDED.image_url,
	height = EXCLUDED.height,
	width = EXCLUDED.width,
	length = EXCLUDED.length,
	weight = EXCLUDED.weight,
	has_variants = EXCLUDED.has_variants
RETURNING ` + productColumns
	p, err := scanProduct(r.pool.QueryRow(ctx, q,
		product.Name, product.Description, product.Price, product.Stock, product.ImageURL,
		product.Height, product.Width, product.Length, product.Weight, product.HasVariants,
	))
	if err != nil {
		r.logger.Printf("product repo: upsert name=%s error=%v", product.Name, err)
		return nil, err
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL,
		&p.Height, &p.Width, &p.Length, &p.Weight, &p.HasVariants, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
