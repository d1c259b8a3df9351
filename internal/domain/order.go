package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "PENDING"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

type Order struct {
	ID            string      `json:"id"`
	UserID        string      `json:"userId"`
	CustomerID    *string     `json:"customerId,omitempty"`
	CartID        *string     `json:"cartId,omitempty"`
	Status        string      `json:"status"`
	PaymentID     string      `json:"paymentId,omitempty"`
	PaymentStatus string      `json:"paymentStatus,omitempty"`
	PaymentMethod string      `json:"paymentMethod,omitempty"`
	PaymentDate   time.Time   `json:"paymentDate"`
	CreatedAt     time.Time   `json:"createdAt"`
	Items         []OrderItem `json:"items,omitempty"`
}

// OrderItem is a frozen copy of a cart line at approval time; it keeps no
// reference back to the cart item it came from.
type OrderItem struct {
	ID          string          `json:"id"`
	OrderID     string          `json:"orderId"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}
