package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type productSeed struct {
	Name        string
	Description string
	Price       string
	Stock       int
	ImageURL    string
	Height      float64
	Width       float64
	Length      float64
	Weight      float64
	Variants    []variantSeed
}

type variantSeed struct {
	ColorID string
	SizeID  string
	Price   string
	Stock   int
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			Name:        "Canvas Tote Bag",
			Description: "Heavy cotton tote, fits a laptop",
			Price:       "24.90",
			Stock:       120,
			ImageURL:    "https://cdn.example.com/img/tote.jpg",
			Height:      38, Width: 42, Length: 10, Weight: 0.4,
		},
		{
			Name:        "Enamel Camp Mug",
			Description: "350ml enamel mug",
			Price:       "14.50",
			Stock:       80,
			ImageURL:    "https://cdn.example.com/img/mug.jpg",
			Height:      9, Width: 12, Length: 9, Weight: 0.3,
		},
		{
			Name:        "Logo T-Shirt",
			Description: "Unisex cotton tee",
			Price:       "29.90",
			Stock:       0,
			ImageURL:    "https://cdn.example.com/img/tee.jpg",
			Height:      2, Width: 30, Length: 40, Weight: 0.25,
			Variants: []variantSeed{
				{ColorID: "black", SizeID: "m", Price: "29.90", Stock: 25},
				{ColorID: "black", SizeID: "l", Price: "29.90", Stock: 18},
				{ColorID: "white", SizeID: "m", Price: "27.90", Stock: 30},
			},
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return err
	}

	var productID string
	err = pool.QueryRow(ctx, `
INSERT INTO products (name, description, price, stock, image_url, height, width, length, weight, has_variants)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (name) DO UPDATE SET
	description = EXCLUDED.description,
	price = EXCLUDED.price,
	stock = EXCLUDED.stock,
	image_url = EXCLUDED.image_url
RETURNING id::text
`, p.Name, p.Description, price, p.Stock, p.ImageURL, p.Height, p.Width, p.Length, p.Weight, len(p.Variants) > 0).Scan(&productID)
	if err != nil {
		return err
	}

	for _, v := range p.Variants {
		if err := ensureVariant(ctx, pool, productID, v); err != nil {
			return err
		}
	}
	return nil
}

func ensureVariant(ctx context.Context, pool *pgxpool.Pool, productID string, v variantSeed) error {
	price, err := decimal.NewFromString(v.Price)
	if err != nil {
		return err
	}

	var exists bool
	err = pool.QueryRow(ctx, `
SELECT EXISTS (
	SELECT 1 FROM product_variants
	WHERE product_id = $1 AND color_id = $2 AND size_id = $3
)
`, productID, v.ColorID, v.SizeID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = pool.Exec(ctx, `
INSERT INTO product_variants (product_id, color_id, size_id, price, stock)
VALUES ($1, $2, $3, $4, $5)
`, productID, v.ColorID, v.SizeID, price, v.Stock)
	return err
}
