package order

import (
	"context"

	"storefront-backend/internal/domain"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByCart(ctx context.Context, cartID string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}
