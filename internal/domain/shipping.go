package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ShippingStatusPending   = "PENDING"
	ShippingStatusShipped   = "SHIPPED"
	ShippingStatusDelivered = "DELIVERED"
	ShippingStatusCancelled = "CANCELLED"
)

// Shipping maps one-to-one to a cart via CartID; OrderID is attached after
// order creation, converting the cart-scoped record into an order-scoped one.
type Shipping struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	CartID       string          `json:"cartId"`
	OrderID      *string         `json:"orderId,omitempty"`
	Name         string          `json:"name"`
	Service      *string         `json:"service,omitempty"`
	TrackingCode *string         `json:"trackingCode,omitempty"`
	ShippingCost decimal.Decimal `json:"shippingCost"`
	DeliveryTime int             `json:"deliveryTime"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
