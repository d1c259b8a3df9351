package archive

import (
	"context"

	"storefront-backend/internal/domain"
)

type Repository interface {
	GetByCart(ctx context.Context, cartID string) (*domain.ArchivedCart, error)
	ListByUser(ctx context.Context, userID string) ([]domain.ArchivedCart, error)
	SetCollection(ctx context.Context, cartID string, collectionID, merchantOrderID *string) error
}
