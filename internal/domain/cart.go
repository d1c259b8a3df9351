package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId"`
	PaymentIntentID *string    `json:"paymentIntentId,omitempty"`
	PaymentStatus   string     `json:"paymentStatus,omitempty"`
	CollectionID    *string    `json:"collectionId,omitempty"`
	MerchantOrderID *string    `json:"merchantOrderId,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	Items           []CartItem `json:"items,omitempty"`
}

// CartItem is one cart line, denormalized with a price and dimension
// snapshot taken from the product or variant at add-time.
type CartItem struct {
	ID          string          `json:"id"`
	CartID      string          `json:"cartId"`
	ProductID   string          `json:"productId"`
	VariantID   *string         `json:"variantId,omitempty"`
	ProductName string          `json:"productName"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Height      float64         `json:"height"`
	Width       float64         `json:"width"`
	Length      float64         `json:"length"`
	Weight      float64         `json:"weight"`
	ColorID     *string         `json:"colorId,omitempty"`
	SizeID      *string         `json:"sizeId,omitempty"`
	HasVariants bool            `json:"hasVariants"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// MergeKey identifies the line an incoming item merges into. Lines with the
// same product, color and size accumulate quantity instead of duplicating.
func (i CartItem) MergeKey() string {
	key := i.ProductID
	if i.ColorID != nil {
		key += "|" + *i.ColorID
	} else {
		key += "|"
	}
	if i.SizeID != nil {
		key += "|" + *i.SizeID
	} else {
		key += "|"
	}
	return key
}

// FindItem returns the index of the line matching the given merge key, or -1.
func (c *Cart) FindItem(key string) int {
	for idx, item := range c.Items {
		if item.MergeKey() == key {
			return idx
		}
	}
	return -1
}

// FindItemByID returns the index of the line with the given id, or -1.
func (c *Cart) FindItemByID(itemID string) int {
	for idx, item := range c.Items {
		if item.ID == itemID {
			return idx
		}
	}
	return -1
}
