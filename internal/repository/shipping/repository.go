package shipping

import (
	"context"

	"storefront-backend/internal/domain"
)

type Repository interface {
	GetByCart(ctx context.Context, cartID string) (*domain.Shipping, error)
	Create(ctx context.Context, shipping domain.Shipping) (*domain.Shipping, error)
	Update(ctx context.Context, shipping domain.Shipping) (*domain.Shipping, error)
}
