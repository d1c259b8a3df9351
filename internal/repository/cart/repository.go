package cart

import (
	"context"

	"storefront-backend/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, cart domain.Cart) (*domain.Cart, error)
	GetByID(ctx context.Context, id string) (*domain.Cart, error)
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	GetByPaymentIntent(ctx context.Context, paymentIntentID string) (*domain.Cart, error)
	// UpsertItem merges the item into an existing line with the same
	// (product, color, size) key, summing quantities, or inserts a new line.
	UpsertItem(ctx context.Context, cartID string, item domain.CartItem) error
	// ChangeItemQuantity sets the line quantity; a quantity of zero or less
	// removes the line.
	ChangeItemQuantity(ctx context.Context, cartID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, cartID, itemID string) error
	Delete(ctx context.Context, id string) error
	SetPaymentPreference(ctx context.Context, cartID, preferenceID, status string) error
	SetCollection(ctx context.Context, cartID string, collectionID, merchantOrderID *string) error
}
