package payment

import (
	"context"
	"errors"
	"io"
	"log"
	"strconv"
	"time"

	"storefront-backend/internal/domain"
	provider "storefront-backend/internal/payment"
	ordersvc "storefront-backend/internal/service/order"
)

// Service orchestrates the payment provider: it registers preferences for
// carts and turns approved webhook notifications into orders.
type Service struct {
	provider        providerClient
	carts           cartService
	orders          orderService
	webhookSecret   string
	notificationURL string
	callbackURL     string
	logger          *log.Logger
}

// Options carries the provider-facing settings the service needs beyond its
// collaborators.
type Options struct {
	WebhookSecret   string
	NotificationURL string
	CallbackURL     string
}

type providerClient interface {
	CreatePreference(ctx context.Context, req provider.PreferenceRequest) (*provider.Preference, error)
	GetPayment(ctx context.Context, id string) (*provider.Payment, error)
}

type cartService interface {
	Get(ctx context.Context, cartID string) (*domain.Cart, error)
	SetPaymentPreference(ctx context.Context, cartID, preferenceID string) error
}

type orderService interface {
	CreateFromCart(ctx context.Context, in ordersvc.CreateInput) (*domain.Order, error)
	FindByCart(ctx context.Context, cartID string) (*domain.Order, error)
}

func New(providerClient providerClient, carts cartService, orders orderService, opts Options, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		provider:        providerClient,
		carts:           carts,
		orders:          orders,
		webhookSecret:   opts.WebhookSecret,
		notificationURL: opts.NotificationURL,
		callbackURL:     opts.CallbackURL,
		logger:          logger,
	}
}

// PreferenceResult is returned to the client so it can start the provider's
// checkout flow.
type PreferenceResult struct {
	PreferenceID string `json:"preferenceId"`
	InitPoint    string `json:"initPoint"`
}

// CreatePreference registers the cart with the provider and stores the
// resulting preference id on the cart with a pending payment status.
func (s *Service) CreatePreference(ctx context.Context, cartID string) (*PreferenceResult, error) {
	cart, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}

	req := provider.PreferenceRequest{
		ExternalReference: cart.ID,
		NotificationURL:   s.notificationURL,
	}
	if s.callbackURL != "" {
		req.BackURLs = &provider.BackURLs{
			Success: s.callbackURL,
			Pending: s.callbackURL,
			Failure: s.callbackURL,
		}
	}
	for _, item := range cart.Items {
		req.Items = append(req.Items, provider.PreferenceItem{
			ID:         item.ProductID,
			Title:      item.ProductName,
			PictureURL: item.ImageURL,
			Quantity:   item.Quantity,
			UnitPrice:  item.Price,
		})
	}

	pref, err := s.provider.CreatePreference(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.carts.SetPaymentPreference(ctx, cart.ID, pref.ID); err != nil {
		return nil, err
	}
	s.logger.Printf("payment: preference %s created for cart %s", pref.ID, cart.ID)
	return &PreferenceResult{PreferenceID: pref.ID, InitPoint: pref.InitPoint}, nil
}

// Notification is the webhook payload posted by the provider.
type Notification struct {
	Action      string `json:"action"`
	Type        string `json:"type"`
	DateCreated string `json:"date_created"`
	Data        struct {
		ID string `json:"id"`
	} `json:"data"`
}

// WebhookInput bundles the parsed notification with the headers needed for
// signature validation.
type WebhookInput struct {
	Notification Notification
	Signature    string
	RequestID    string
}

// HandleWebhook validates the signature, fetches payment details and, on an
// approved payment, finalizes the cart into an order. Non-approved statuses
// are logged and discarded.
func (s *Service) HandleWebhook(ctx context.Context, in WebhookInput) (*domain.Order, error) {
	if err := provider.VerifySignature(s.webhookSecret, in.Signature, in.RequestID, in.Notification.Data.ID); err != nil {
		return nil, err
	}

	payment, err := s.provider.GetPayment(ctx, in.Notification.Data.ID)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.Get(ctx, payment.ExternalReference)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Finalizing deletes the live cart, so a redelivered
			// notification finds no cart. Answer it with the order the
			// first delivery produced; otherwise the provider keeps
			// redelivering against a 404.
			if order, findErr := s.orders.FindByCart(ctx, payment.ExternalReference); findErr == nil {
				s.logger.Printf("payment: redelivered notification for cart %s answered with order %s", payment.ExternalReference, order.ID)
				return order, nil
			}
		}
		return nil, err
	}

	if payment.Status != "approved" {
		s.logger.Printf("payment: notification for cart %s with status %q discarded", cart.ID, payment.Status)
		return nil, nil
	}

	paymentDate := time.Now().UTC()
	if payment.DateApproved != nil {
		paymentDate = *payment.DateApproved
	}

	order, err := s.orders.CreateFromCart(ctx, ordersvc.CreateInput{
		UserID:        cart.UserID,
		Cart:          *cart,
		PaymentID:     strconv.FormatInt(payment.ID, 10),
		PaymentStatus: payment.Status,
		PaymentMethod: payment.PaymentMethodID,
		PaymentDate:   paymentDate,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Printf("payment: cart %s finalized as order %s", cart.ID, order.ID)
	return order, nil
}
