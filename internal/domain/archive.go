package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ArchivedCart is an immutable snapshot of a cart taken at the moment its
// payment was approved. It survives deletion of the live cart row.
type ArchivedCart struct {
	ID              string             `json:"id"`
	CartID          string             `json:"cartId"`
	UserID          string             `json:"userId"`
	PaymentIntentID *string            `json:"paymentIntentId,omitempty"`
	PaymentStatus   string             `json:"paymentStatus,omitempty"`
	CollectionID    *string            `json:"collectionId,omitempty"`
	MerchantOrderID *string            `json:"merchantOrderId,omitempty"`
	ArchivedAt      time.Time          `json:"archivedAt"`
	Items           []ArchivedCartItem `json:"items,omitempty"`
}

type ArchivedCartItem struct {
	ID             string          `json:"id"`
	ArchivedCartID string          `json:"archivedCartId"`
	ProductID      string          `json:"productId"`
	VariantID      *string         `json:"variantId,omitempty"`
	ProductName    string          `json:"productName"`
	ImageURL       string          `json:"imageUrl,omitempty"`
	Quantity       int             `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	Height         float64         `json:"height"`
	Width          float64         `json:"width"`
	Length         float64         `json:"length"`
	Weight         float64         `json:"weight"`
	ColorID        *string         `json:"colorId,omitempty"`
	SizeID         *string         `json:"sizeId,omitempty"`
}
