package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Height      float64         `json:"height"`
	Width       float64         `json:"width"`
	Length      float64         `json:"length"`
	Weight      float64         `json:"weight"`
	HasVariants bool            `json:"hasVariants"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ProductVariant is a sellable configuration of a parent product. Dimensions
// are optional; callers fall back to the parent product when they are unset.
type ProductVariant struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	ColorID   *string         `json:"colorId,omitempty"`
	SizeID    *string         `json:"sizeId,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	Height    *float64        `json:"height,omitempty"`
	Width     *float64        `json:"width,omitempty"`
	Length    *float64        `json:"length,omitempty"`
	Weight    *float64        `json:"weight,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Dimensions resolves the variant's physical dimensions, falling back to the
// parent product's values for any that the variant does not carry.
func (v ProductVariant) Dimensions(parent Product) (height, width, length, weight float64) {
	height = parent.Height
	width = parent.Width
	length = parent.Length
	weight = parent.Weight
	if v.Height != nil {
		height = *v.Height
	}
	if v.Width != nil {
		width = *v.Width
	}
	if v.Length != nil {
		length = *v.Length
	}
	if v.Weight != nil {
		weight = *v.Weight
	}
	return height, width, length, weight
}
