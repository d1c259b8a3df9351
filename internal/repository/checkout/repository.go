package checkout

import (
	"context"
	"errors"

	"storefront-backend/internal/domain"
)

var (
	// ErrOrderExists signals an order was already finalized for the cart;
	// duplicate webhook deliveries hit this instead of creating a second order.
	ErrOrderExists = errors.New("order already exists for cart")
	// ErrShippingMissing signals no shipping record exists for the cart.
	ErrShippingMissing = errors.New("shipping missing for cart")
	// ErrShippingLink signals the shipping record could not be attached to
	// the new order.
	ErrShippingLink = errors.New("shipping link failed")
	// ErrInsufficientStock signals a stock decrement would go negative.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// FinalizeInput carries everything the approved-payment transition persists.
type FinalizeInput struct {
	CartID  string
	Order   domain.Order
	Archive domain.ArchivedCart
}

// Repository finalizes an approved payment as a single unit of work: order
// insert, shipping link, cart archive, live-cart delete and stock decrement
// either all commit or all roll back.
type Repository interface {
	Finalize(ctx context.Context, in FinalizeInput) (*domain.Order, error)
}
