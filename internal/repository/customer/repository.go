package customer

import (
	"context"

	"storefront-backend/internal/domain"
)

type Repository interface {
	GetByUser(ctx context.Context, userID string) (*domain.Customer, error)
	Create(ctx context.Context, customer domain.Customer) (*domain.Customer, error)
}
