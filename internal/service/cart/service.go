package cart

import (
	"context"
	"errors"

	"storefront-backend/internal/domain"
)

type Service struct {
	repo     cartRepo
	products productRepo
	archives archiveRepo
}

type cartRepo interface {
	Create(ctx context.Context, cart domain.Cart) (*domain.Cart, error)
	GetByID(ctx context.Context, id string) (*domain.Cart, error)
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	GetByPaymentIntent(ctx context.Context, paymentIntentID string) (*domain.Cart, error)
	UpsertItem(ctx context.Context, cartID string, item domain.CartItem) error
	ChangeItemQuantity(ctx context.Context, cartID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, cartID, itemID string) error
	Delete(ctx context.Context, id string) error
	SetPaymentPreference(ctx context.Context, cartID, preferenceID, status string) error
	SetCollection(ctx context.Context, cartID string, collectionID, merchantOrderID *string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetVariantByID(ctx context.Context, id string) (*domain.ProductVariant, error)
}

type archiveRepo interface {
	SetCollection(ctx context.Context, cartID string, collectionID, merchantOrderID *string) error
}

func New(repo cartRepo, products productRepo, archives archiveRepo) *Service {
	return &Service{repo: repo, products: products, archives: archives}
}

// ItemInput is one requested line: the product (or variant) and how many.
type ItemInput struct {
	ProductID   string  `json:"productId"`
	VariantID   *string `json:"variantId,omitempty"`
	Quantity    int     `json:"quantity"`
	ColorID     *string `json:"colorId,omitempty"`
	SizeID      *string `json:"sizeId,omitempty"`
	HasVariants bool    `json:"hasVariants"`
}

// Create builds a new cart for the user. Requested items resolving to the
// same (product, color, size) key are merged in memory before persisting,
// summing quantities; other fields are last-one-wins.
func (s *Service) Create(ctx context.Context, userID string, items []ItemInput) (*domain.Cart, error) {
	cart := domain.Cart{UserID: userID}
	for _, in := range items {
		item, err := s.resolveItem(ctx, in)
		if err != nil {
			return nil, err
		}
		if idx := cart.FindItem(item.MergeKey()); idx >= 0 {
			qty := cart.Items[idx].Quantity + item.Quantity
			item.Quantity = qty
			cart.Items[idx] = *item
		} else {
			cart.Items = append(cart.Items, *item)
		}
	}
	return s.repo.Create(ctx, cart)
}

// AddItem upserts one line into the user's existing cart. A line with a
// matching (product, color, size) key has its quantity incremented;
// otherwise the resolved item is appended. Both branches go through the
// same repository upsert.
func (s *Service) AddItem(ctx context.Context, userID string, in ItemInput) (*domain.Cart, error) {
	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Cart not found")
		}
		return nil, err
	}

	item, err := s.resolveItem(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpsertItem(ctx, cart.ID, *item); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, cart.ID)
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func (s *Service) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*domain.Cart, error) {
	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Cart not found")
		}
		return nil, err
	}
	if cart.FindItemByID(itemID) < 0 {
		return nil, domain.NotFound("Item not found: " + itemID)
	}
	if err := s.repo.ChangeItemQuantity(ctx, cart.ID, itemID, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, cart.ID)
}

// RemoveItem deletes one line from the cart.
func (s *Service) RemoveItem(ctx context.Context, cartID, itemID string) error {
	cart, err := s.repo.GetByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound("Cart not found")
		}
		return err
	}
	if cart.FindItemByID(itemID) < 0 {
		return domain.NotFound("Item not found: " + itemID)
	}
	return s.repo.RemoveItem(ctx, cart.ID, itemID)
}

// Delete removes the cart and its lines.
func (s *Service) Delete(ctx context.Context, cartID string) error {
	if _, err := s.repo.GetByID(ctx, cartID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound("Cart not found")
		}
		return err
	}
	return s.repo.Delete(ctx, cartID)
}

func (s *Service) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	cart, err := s.repo.GetByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Cart not found")
		}
		return nil, err
	}
	return cart, nil
}

func (s *Service) GetByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Cart not found")
		}
		return nil, err
	}
	return cart, nil
}

func (s *Service) GetByPaymentIntent(ctx context.Context, paymentIntentID string) (*domain.Cart, error) {
	cart, err := s.repo.GetByPaymentIntent(ctx, paymentIntentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Cart not found")
		}
		return nil, err
	}
	return cart, nil
}

// SetPaymentPreference stores the provider's preference id on the cart and
// marks the payment pending.
func (s *Service) SetPaymentPreference(ctx context.Context, cartID, preferenceID string) error {
	err := s.repo.SetPaymentPreference(ctx, cartID, preferenceID, "pending")
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound("Cart not found")
	}
	return err
}

// PatchCollection applies provider collection/merchant-order ids to the live
// cart, falling back to the archived row when the live cart is already gone.
func (s *Service) PatchCollection(ctx context.Context, cartID string, collectionID, merchantOrderID *string) error {
	err := s.repo.SetCollection(ctx, cartID, collectionID, merchantOrderID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if s.archives == nil {
		return domain.NotFound("Cart not found")
	}
	err = s.archives.SetCollection(ctx, cartID, collectionID, merchantOrderID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound("Cart not found")
	}
	return err
}

// resolveItem validates the request and snapshots price, stock-checked
// quantity and physical dimensions from the catalog.
func (s *Service) resolveItem(ctx context.Context, in ItemInput) (*domain.CartItem, error) {
	if in.Quantity <= 0 {
		return nil, domain.Validation("Quantity must be greater than zero")
	}

	if in.HasVariants || in.VariantID != nil {
		variantID := ""
		if in.VariantID != nil {
			variantID = *in.VariantID
		}
		variant, err := s.products.GetVariantByID(ctx, variantID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.NotFound("Variant not found: " + variantID)
			}
			return nil, err
		}
		if variant.Stock < in.Quantity {
			return nil, domain.Validation("Insufficient stock for variant: " + variantID)
		}
		parent, err := s.products.GetByID(ctx, variant.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.NotFound("Product not found: " + variant.ProductID)
			}
			return nil, err
		}
		height, width, length, weight := variant.Dimensions(*parent)
		imageURL := variant.ImageURL
		if imageURL == "" {
			imageURL = parent.ImageURL
		}
		return &domain.CartItem{
			ProductID:   parent.ID,
			VariantID:   &variant.ID,
			ProductName: parent.Name,
			ImageURL:    imageURL,
			Quantity:    in.Quantity,
			Price:       variant.Price,
			Height:      height,
			Width:       width,
			Length:      length,
			Weight:      weight,
			ColorID:     variant.ColorID,
			SizeID:      variant.SizeID,
			HasVariants: true,
		}, nil
	}

	product, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Product not found: " + in.ProductID)
		}
		return nil, err
	}
	if product.Stock < in.Quantity {
		return nil, domain.Validation("Insufficient stock for product: " + in.ProductID)
	}
	return &domain.CartItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		ImageURL:    product.ImageURL,
		Quantity:    in.Quantity,
		Price:       product.Price,
		Height:      product.Height,
		Width:       product.Width,
		Length:      product.Length,
		Weight:      product.Weight,
		ColorID:     in.ColorID,
		SizeID:      in.SizeID,
	}, nil
}
