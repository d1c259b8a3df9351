package shipping

import (
	"context"
	"errors"
	"fmt"

	"storefront-backend/internal/domain"
	"github.com/shopspring/decimal"
)

type Service struct {
	repo repo
}

type repo interface {
	GetByCart(ctx context.Context, cartID string) (*domain.Shipping, error)
	Create(ctx context.Context, shipping domain.Shipping) (*domain.Shipping, error)
	Update(ctx context.Context, shipping domain.Shipping) (*domain.Shipping, error)
}

func New(repo repo) *Service {
	return &Service{repo: repo}
}

// SaveInput carries a quoted shipping option for a cart.
type SaveInput struct {
	UserID       string          `json:"userId"`
	CartID       string          `json:"cartId"`
	OrderID      *string         `json:"orderId,omitempty"`
	Name         string          `json:"name"`
	Service      *string         `json:"service,omitempty"`
	TrackingCode *string         `json:"trackingCode,omitempty"`
	ShippingCost decimal.Decimal `json:"shippingCost"`
	DeliveryTime int             `json:"deliveryTime"`
}

// SaveOrUpdate upserts the shipping record for a cart. An existing record is
// merged with the new fields; either path forces status back to PENDING.
func (s *Service) SaveOrUpdate(ctx context.Context, in SaveInput) (*domain.Shipping, error) {
	existing, err := s.repo.GetByCart(ctx, in.CartID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("Failed to save or update shipping option: %w", err)
	}

	if existing != nil {
		existing.Name = in.Name
		if in.Service != nil {
			existing.Service = in.Service
		}
		if in.TrackingCode != nil {
			existing.TrackingCode = in.TrackingCode
		}
		if in.OrderID != nil {
			existing.OrderID = in.OrderID
		}
		existing.ShippingCost = in.ShippingCost
		existing.DeliveryTime = in.DeliveryTime
		existing.Status = domain.ShippingStatusPending
		updated, err := s.repo.Update(ctx, *existing)
		if err != nil {
			return nil, fmt.Errorf("Failed to save or update shipping option: %w", err)
		}
		return updated, nil
	}

	created, err := s.repo.Create(ctx, domain.Shipping{
		UserID:       in.UserID,
		CartID:       in.CartID,
		OrderID:      in.OrderID,
		Name:         in.Name,
		Service:      in.Service,
		TrackingCode: in.TrackingCode,
		ShippingCost: in.ShippingCost,
		DeliveryTime: in.DeliveryTime,
		Status:       domain.ShippingStatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("Failed to save or update shipping option: %w", err)
	}
	return created, nil
}

// GetByCart returns the shipping record tied to a cart.
func (s *Service) GetByCart(ctx context.Context, cartID string) (*domain.Shipping, error) {
	shipping, err := s.repo.GetByCart(ctx, cartID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Shipping not found for the given cart ID")
		}
		return nil, err
	}
	return shipping, nil
}
