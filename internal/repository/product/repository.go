package product

import (
	"context"

	"storefront-backend/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetVariantByID(ctx context.Context, id string) (*domain.ProductVariant, error)
	ListVariantsByProduct(ctx context.Context, productID string) ([]domain.ProductVariant, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}
