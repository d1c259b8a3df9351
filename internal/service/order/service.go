package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-backend/internal/domain"
	checkoutrepo "storefront-backend/internal/repository/checkout"
	"github.com/google/uuid"
)

type Service struct {
	orders    orderRepo
	customers customerRepo
	checkout  checkoutRepo
	archiver  archiver
	now       func() time.Time
}

type orderRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByCart(ctx context.Context, cartID string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

type customerRepo interface {
	GetByUser(ctx context.Context, userID string) (*domain.Customer, error)
	Create(ctx context.Context, customer domain.Customer) (*domain.Customer, error)
}

type checkoutRepo interface {
	Finalize(ctx context.Context, in checkoutrepo.FinalizeInput) (*domain.Order, error)
}

type archiver interface {
	Snapshot(cart domain.Cart) domain.ArchivedCart
}

func New(orders orderRepo, customers customerRepo, checkout checkoutRepo, archiver archiver) *Service {
	return &Service{
		orders:    orders,
		customers: customers,
		checkout:  checkout,
		archiver:  archiver,
		now:       time.Now,
	}
}

// CreateInput carries the payment outcome plus the cart whose items the
// order freezes.
type CreateInput struct {
	UserID        string
	Cart          domain.Cart
	PaymentID     string
	PaymentStatus string
	PaymentMethod string
	PaymentDate   time.Time
}

// CreateFromCart converts an approved payment into a persisted order. The
// order insert, shipping link, cart archive, live-cart delete and stock
// decrement commit as one transaction; a duplicate call for the same cart
// returns the already-created order.
func (s *Service) CreateFromCart(ctx context.Context, in CreateInput) (*domain.Order, error) {
	customer, err := s.resolveCustomer(ctx, in.UserID, in.PaymentDate)
	if err != nil {
		return nil, err
	}

	cartID := in.Cart.ID
	order := domain.Order{
		ID:            uuid.NewString(),
		UserID:        in.UserID,
		CustomerID:    &customer.ID,
		CartID:        &cartID,
		Status:        domain.OrderStatusCompleted,
		PaymentID:     in.PaymentID,
		PaymentStatus: in.PaymentStatus,
		PaymentMethod: in.PaymentMethod,
		PaymentDate:   in.PaymentDate,
	}
	for _, item := range in.Cart.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ID:          uuid.NewString(),
			OrderID:     order.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ImageURL:    item.ImageURL,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	created, err := s.checkout.Finalize(ctx, checkoutrepo.FinalizeInput{
		CartID:  cartID,
		Order:   order,
		Archive: s.archiver.Snapshot(in.Cart),
	})
	if err != nil {
		switch {
		case errors.Is(err, checkoutrepo.ErrOrderExists):
			return s.orders.GetByCart(ctx, cartID)
		case errors.Is(err, checkoutrepo.ErrShippingMissing):
			return nil, domain.NotFound("Shipping not found for the given cart ID")
		case errors.Is(err, checkoutrepo.ErrShippingLink):
			return nil, fmt.Errorf("Failed to update shipment with order ID: %w", err)
		case errors.Is(err, checkoutrepo.ErrInsufficientStock):
			return nil, domain.Validation("Insufficient stock to complete order")
		default:
			return nil, fmt.Errorf("Failed to create order: %w", err)
		}
	}
	return created, nil
}

// FindByCart returns the order a cart was finalized into.
func (s *Service) FindByCart(ctx context.Context, cartID string) (*domain.Order, error) {
	order, err := s.orders.GetByCart(ctx, cartID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Order not found")
		}
		return nil, err
	}
	return order, nil
}

// FindByID returns one order with its items.
func (s *Service) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Order not found")
		}
		return nil, err
	}
	return order, nil
}

// ListByUser returns all of the user's orders, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, domain.NotFound("Orders not found for the given user id")
	}
	return orders, nil
}

// resolveCustomer finds the customer for the user, creating one on the first
// completed order. A concurrent create is absorbed by re-reading.
func (s *Service) resolveCustomer(ctx context.Context, userID string, paymentDate time.Time) (*domain.Customer, error) {
	customer, err := s.customers.GetByUser(ctx, userID)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	customer, err = s.customers.Create(ctx, domain.Customer{
		UserID:         userID,
		FirstOrderDate: paymentDate,
		CustomerSince:  s.now(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return s.customers.GetByUser(ctx, userID)
		}
		return nil, err
	}
	return customer, nil
}
