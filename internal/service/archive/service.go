package archive

import (
	"context"
	"errors"
	"time"

	"storefront-backend/internal/domain"
	"github.com/google/uuid"
)

type Service struct {
	repo repo
	now  func() time.Time
}

type repo interface {
	GetByCart(ctx context.Context, cartID string) (*domain.ArchivedCart, error)
	ListByUser(ctx context.Context, userID string) ([]domain.ArchivedCart, error)
}

func New(repo repo) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Snapshot copies a cart into an immutable archive record. Every item is a
// fresh-id copy of the source line; field values are carried over unchanged.
func (s *Service) Snapshot(cart domain.Cart) domain.ArchivedCart {
	archived := domain.ArchivedCart{
		ID:              uuid.NewString(),
		CartID:          cart.ID,
		UserID:          cart.UserID,
		PaymentIntentID: cart.PaymentIntentID,
		PaymentStatus:   cart.PaymentStatus,
		CollectionID:    cart.CollectionID,
		MerchantOrderID: cart.MerchantOrderID,
		ArchivedAt:      s.now().UTC(),
	}
	for _, item := range cart.Items {
		archived.Items = append(archived.Items, domain.ArchivedCartItem{
			ID:             uuid.NewString(),
			ArchivedCartID: archived.ID,
			ProductID:      item.ProductID,
			VariantID:      item.VariantID,
			ProductName:    item.ProductName,
			ImageURL:       item.ImageURL,
			Quantity:       item.Quantity,
			Price:          item.Price,
			Height:         item.Height,
			Width:          item.Width,
			Length:         item.Length,
			Weight:         item.Weight,
			ColorID:        item.ColorID,
			SizeID:         item.SizeID,
		})
	}
	return archived
}

// GetByCart returns the archived snapshot for a cart id.
func (s *Service) GetByCart(ctx context.Context, cartID string) (*domain.ArchivedCart, error) {
	archived, err := s.repo.GetByCart(ctx, cartID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Archived cart not found")
		}
		return nil, err
	}
	return archived, nil
}

// ListByUser returns all archived carts for a user, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.ArchivedCart, error) {
	return s.repo.ListByUser(ctx, userID)
}
