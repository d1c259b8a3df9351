package cart

import (
	"context"
	"errors"
	"testing"

	"storefront-backend/internal/domain"
	"github.com/shopspring/decimal"
)

type stubCartRepo struct {
	created        *domain.Cart
	createErr      error
	byUser         *domain.Cart
	byUserErr      error
	byID           *domain.Cart
	byIDErr        error
	byIntent       *domain.Cart
	byIntentErr    error
	upserted       []domain.CartItem
	upsertErr      error
	changeCartID   string
	changeItemID   string
	changeQty      int
	changeErr      error
	removedItemID  string
	removeErr      error
	deletedCartID  string
	deleteErr      error
	prefCartID     string
	prefID         string
	prefStatus     string
	collectionErr  error
	collCartID     string
	collCollection *string
	collMerchant   *string
}

func (s *stubCartRepo) Create(_ context.Context, cart domain.Cart) (*domain.Cart, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	cart.ID = "cart-1"
	s.created = &cart
	return &cart, nil
}

func (s *stubCartRepo) GetByID(_ context.Context, _ string) (*domain.Cart, error) {
	return s.byID, s.byIDErr
}

func (s *stubCartRepo) GetByUser(_ context.Context, _ string) (*domain.Cart, error) {
	return s.byUser, s.byUserErr
}

func (s *stubCartRepo) GetByPaymentIntent(_ context.Context, _ string) (*domain.Cart, error) {
	return s.byIntent, s.byIntentErr
}

func (s *stubCartRepo) UpsertItem(_ context.Context, _ string, item domain.CartItem) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.upserted = append(s.upserted, item)
	return nil
}

func (s *stubCartRepo) ChangeItemQuantity(_ context.Context, cartID, itemID string, quantity int) error {
	s.changeCartID = cartID
	s.changeItemID = itemID
	s.changeQty = quantity
	return s.changeErr
}

func (s *stubCartRepo) RemoveItem(_ context.Context, _, itemID string) error {
	s.removedItemID = itemID
	return s.removeErr
}

func (s *stubCartRepo) Delete(_ context.Context, id string) error {
	s.deletedCartID = id
	return s.deleteErr
}

func (s *stubCartRepo) SetPaymentPreference(_ context.Context, cartID, preferenceID, status string) error {
	s.prefCartID = cartID
	s.prefID = preferenceID
	s.prefStatus = status
	return nil
}

func (s *stubCartRepo) SetCollection(_ context.Context, cartID string, collectionID, merchantOrderID *string) error {
	if s.collectionErr != nil {
		return s.collectionErr
	}
	s.collCartID = cartID
	s.collCollection = collectionID
	s.collMerchant = merchantOrderID
	return nil
}

type stubProductRepo struct {
	products map[string]*domain.Product
	variants map[string]*domain.ProductVariant
}

func (s *stubProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubProductRepo) GetVariantByID(_ context.Context, id string) (*domain.ProductVariant, error) {
	if v, ok := s.variants[id]; ok {
		return v, nil
	}
	return nil, domain.ErrNotFound
}

type stubArchiveRepo struct {
	err    error
	cartID string
}

func (s *stubArchiveRepo) SetCollection(_ context.Context, cartID string, _, _ *string) error {
	if s.err != nil {
		return s.err
	}
	s.cartID = cartID
	return nil
}

func strPtr(v string) *string { return &v }

func catalog() *stubProductRepo {
	return &stubProductRepo{
		products: map[string]*domain.Product{
			"p1": {ID: "p1", Name: "Tote", Price: decimal.NewFromInt(25), Stock: 10, Height: 38, Width: 42, Length: 10, Weight: 0.4},
			"p2": {ID: "p2", Name: "Tee", Price: decimal.NewFromInt(30), Stock: 0, HasVariants: true, Height: 2, Width: 30, Length: 40, Weight: 0.25},
		},
		variants: map[string]*domain.ProductVariant{
			"v1": {ID: "v1", ProductID: "p2", ColorID: strPtr("black"), SizeID: strPtr("m"), Price: decimal.NewFromInt(28), Stock: 5},
		},
	}
}

func TestCreateMergesDuplicateItems(t *testing.T) {
	repo := &stubCartRepo{}
	svc := New(repo, catalog(), nil)

	cart, err := svc.Create(context.Background(), "u1", []ItemInput{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p1", Quantity: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 merged item, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", cart.Items[0].Quantity)
	}
}

func TestCreateKeepsDistinctKeysSeparate(t *testing.T) {
	repo := &stubCartRepo{}
	svc := New(repo, catalog(), nil)

	cart, err := svc.Create(context.Background(), "u1", []ItemInput{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", VariantID: strPtr("v1"), Quantity: 2, HasVariants: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(cart.Items))
	}
}

func TestCreateRejectsNonPositiveQuantity(t *testing.T) {
	svc := New(&stubCartRepo{}, catalog(), nil)

	for _, qty := range []int{0, -1} {
		_, err := svc.Create(context.Background(), "u1", []ItemInput{{ProductID: "p1", Quantity: qty}})
		if err == nil || err.Error() != "Quantity must be greater than zero" {
			t.Fatalf("qty %d: expected quantity error, got %v", qty, err)
		}
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("qty %d: expected validation class, got %v", qty, err)
		}
	}
}

func TestCreateUnknownProduct(t *testing.T) {
	svc := New(&stubCartRepo{}, catalog(), nil)

	_, err := svc.Create(context.Background(), "u1", []ItemInput{{ProductID: "missing", Quantity: 1}})
	if err == nil || err.Error() != "Product not found: missing" {
		t.Fatalf("expected product not found, got %v", err)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found class, got %v", err)
	}
}

func TestCreateInsufficientProductStock(t *testing.T) {
	svc := New(&stubCartRepo{}, catalog(), nil)

	_, err := svc.Create(context.Background(), "u1", []ItemInput{{ProductID: "p1", Quantity: 11}})
	if err == nil || err.Error() != "Insufficient stock for product: p1" {
		t.Fatalf("expected stock error, got %v", err)
	}
}

func TestCreateUnknownVariant(t *testing.T) {
	svc := New(&stubCartRepo{}, catalog(), nil)

	_, err := svc.Create(context.Background(), "u1", []ItemInput{
		{ProductID: "p2", VariantID: strPtr("nope"), Quantity: 1, HasVariants: true},
	})
	if err == nil || err.Error() != "Variant not found: nope" {
		t.Fatalf("expected variant not found, got %v", err)
	}
}

func TestCreateInsufficientVariantStock(t *testing.T) {
	svc := New(&stubCartRepo{}, catalog(), nil)

	_, err := svc.Create(context.Background(), "u1", []ItemInput{
		{ProductID: "p2", VariantID: strPtr("v1"), Quantity: 6, HasVariants: true},
	})
	if err == nil || err.Error() != "Insufficient stock for variant: v1" {
		t.Fatalf("expected variant stock error, got %v", err)
	}
}

func TestCreateEmptyItemListSucceeds(t *testing.T) {
	repo := &stubCartRepo{}
	svc := New(repo, catalog(), nil)

	cart, err := svc.Create(context.Background(), "u1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(cart.Items))
	}
}

func TestCreateSnapshotsVariantWithParentDimensions(t *testing.T) {
	repo := &stubCartRepo{}
	svc := New(repo, catalog(), nil)

	cart, err := svc.Create(context.Background(), "u1", []ItemInput{
		{ProductID: "p2", VariantID: strPtr("v1"), Quantity: 1, HasVariants: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item := cart.Items[0]
	if item.ProductID != "p2" || item.VariantID == nil || *item.VariantID != "v1" {
		t.Fatalf("unexpected item refs: %+v", item)
	}
	if !item.Price.Equal(decimal.NewFromInt(28)) {
		t.Fatalf("expected variant price 28, got %s", item.Price)
	}
	// The variant carries no dimensions, so the parent's apply.
	if item.Height != 2 || item.Width != 30 || item.Length != 40 || item.Weight != 0.25 {
		t.Fatalf("expected parent dimensions, got %+v", item)
	}
	if item.ColorID == nil || *item.ColorID != "black" || item.SizeID == nil || *item.SizeID != "m" {
		t.Fatalf("expected variant color/size, got %+v", item)
	}
}

func TestAddItemWithoutCart(t *testing.T) {
	repo := &stubCartRepo{byUserErr: domain.ErrNotFound}
	svc := New(repo, catalog(), nil)

	_, err := svc.AddItem(context.Background(), "u1", ItemInput{ProductID: "p1", Quantity: 1})
	if err == nil || err.Error() != "Cart not found" {
		t.Fatalf("expected cart not found, got %v", err)
	}
}

func TestAddItemUpserts(t *testing.T) {
	existing := &domain.Cart{ID: "cart-1", UserID: "u1"}
	repo := &stubCartRepo{byUser: existing, byID: existing}
	svc := New(repo, catalog(), nil)

	_, err := svc.AddItem(context.Background(), "u1", ItemInput{ProductID: "p1", Quantity: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.upserted) != 1 {
		t.Fatalf("expected one upsert, got %d", len(repo.upserted))
	}
	if repo.upserted[0].ProductID != "p1" || repo.upserted[0].Quantity != 2 {
		t.Fatalf("unexpected upserted item: %+v", repo.upserted[0])
	}
}

func TestUpdateQuantityUnknownItem(t *testing.T) {
	repo := &stubCartRepo{byUser: &domain.Cart{ID: "cart-1", UserID: "u1"}}
	svc := New(repo, catalog(), nil)

	_, err := svc.UpdateQuantity(context.Background(), "u1", "item-9", 2)
	if err == nil || err.Error() != "Item not found: item-9" {
		t.Fatalf("expected item not found, got %v", err)
	}
}

func TestUpdateQuantityDelegatesToRepo(t *testing.T) {
	cart := &domain.Cart{ID: "cart-1", UserID: "u1", Items: []domain.CartItem{{ID: "item-1", ProductID: "p1", Quantity: 1}}}
	repo := &stubCartRepo{byUser: cart, byID: cart}
	svc := New(repo, catalog(), nil)

	if _, err := svc.UpdateQuantity(context.Background(), "u1", "item-1", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.changeCartID != "cart-1" || repo.changeItemID != "item-1" || repo.changeQty != 5 {
		t.Fatalf("unexpected change call: %s %s %d", repo.changeCartID, repo.changeItemID, repo.changeQty)
	}

	// Zero quantity still goes to the repo, which removes the line.
	if _, err := svc.UpdateQuantity(context.Background(), "u1", "item-1", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.changeQty != 0 {
		t.Fatalf("expected zero quantity passed through, got %d", repo.changeQty)
	}
}

func TestRemoveItemValidatesMembership(t *testing.T) {
	cart := &domain.Cart{ID: "cart-1", Items: []domain.CartItem{{ID: "item-1"}}}
	repo := &stubCartRepo{byID: cart}
	svc := New(repo, catalog(), nil)

	if err := svc.RemoveItem(context.Background(), "cart-1", "item-2"); err == nil || err.Error() != "Item not found: item-2" {
		t.Fatalf("expected item not found, got %v", err)
	}
	if err := svc.RemoveItem(context.Background(), "cart-1", "item-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.removedItemID != "item-1" {
		t.Fatalf("expected item-1 removed, got %q", repo.removedItemID)
	}
}

func TestDeleteVerifiesExistence(t *testing.T) {
	repo := &stubCartRepo{byIDErr: domain.ErrNotFound}
	svc := New(repo, catalog(), nil)

	if err := svc.Delete(context.Background(), "cart-9"); err == nil || err.Error() != "Cart not found" {
		t.Fatalf("expected cart not found, got %v", err)
	}

	repo = &stubCartRepo{byID: &domain.Cart{ID: "cart-1"}}
	svc = New(repo, catalog(), nil)
	if err := svc.Delete(context.Background(), "cart-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.deletedCartID != "cart-1" {
		t.Fatalf("expected delete of cart-1, got %q", repo.deletedCartID)
	}
}

func TestSetPaymentPreferenceMarksPending(t *testing.T) {
	repo := &stubCartRepo{}
	svc := New(repo, catalog(), nil)

	if err := svc.SetPaymentPreference(context.Background(), "cart-1", "pref-9"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.prefCartID != "cart-1" || repo.prefID != "pref-9" || repo.prefStatus != "pending" {
		t.Fatalf("unexpected preference call: %s %s %s", repo.prefCartID, repo.prefID, repo.prefStatus)
	}
}

func TestPatchCollectionFallsBackToArchive(t *testing.T) {
	repo := &stubCartRepo{collectionErr: domain.ErrNotFound}
	archives := &stubArchiveRepo{}
	svc := New(repo, catalog(), archives)

	err := svc.PatchCollection(context.Background(), "cart-1", strPtr("coll-1"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if archives.cartID != "cart-1" {
		t.Fatalf("expected archive fallback for cart-1, got %q", archives.cartID)
	}
}

func TestPatchCollectionMissingEverywhere(t *testing.T) {
	repo := &stubCartRepo{collectionErr: domain.ErrNotFound}
	archives := &stubArchiveRepo{err: domain.ErrNotFound}
	svc := New(repo, catalog(), archives)

	err := svc.PatchCollection(context.Background(), "cart-1", strPtr("coll-1"), nil)
	if err == nil || err.Error() != "Cart not found" {
		t.Fatalf("expected cart not found, got %v", err)
	}
}
