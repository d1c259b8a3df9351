package order

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"storefront-backend/internal/domain"
	checkoutrepo "storefront-backend/internal/repository/checkout"
	"github.com/shopspring/decimal"
)

type stubOrderRepo struct {
	byID      *domain.Order
	byIDErr   error
	byCart    *domain.Order
	byCartErr error
	byUser    []domain.Order
	byUserErr error
}

func (s *stubOrderRepo) GetByID(_ context.Context, _ string) (*domain.Order, error) {
	return s.byID, s.byIDErr
}

func (s *stubOrderRepo) GetByCart(_ context.Context, _ string) (*domain.Order, error) {
	return s.byCart, s.byCartErr
}

func (s *stubOrderRepo) ListByUser(_ context.Context, _ string) ([]domain.Order, error) {
	return s.byUser, s.byUserErr
}

type stubCustomerRepo struct {
	existing  *domain.Customer
	getErr    error
	created   *domain.Customer
	createErr error
}

func (s *stubCustomerRepo) GetByUser(_ context.Context, _ string) (*domain.Customer, error) {
	if s.existing != nil {
		return s.existing, nil
	}
	if s.getErr != nil {
		return nil, s.getErr
	}
	return nil, domain.ErrNotFound
}

func (s *stubCustomerRepo) Create(_ context.Context, customer domain.Customer) (*domain.Customer, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	customer.ID = "cust-1"
	s.created = &customer
	return &customer, nil
}

type stubCheckoutRepo struct {
	input *checkoutrepo.FinalizeInput
	err   error
}

func (s *stubCheckoutRepo) Finalize(_ context.Context, in checkoutrepo.FinalizeInput) (*domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.input = &in
	order := in.Order
	return &order, nil
}

type stubArchiver struct{}

func (stubArchiver) Snapshot(cart domain.Cart) domain.ArchivedCart {
	return domain.ArchivedCart{ID: "arch-1", CartID: cart.ID, UserID: cart.UserID}
}

func testCart() domain.Cart {
	return domain.Cart{
		ID:     "cart-1",
		UserID: "u1",
		Items: []domain.CartItem{
			{ID: "item-1", ProductID: "p1", ProductName: "Tote", Quantity: 2, Price: decimal.NewFromInt(25)},
		},
	}
}

func TestCreateFromCartFreezesItems(t *testing.T) {
	checkout := &stubCheckoutRepo{}
	customers := &stubCustomerRepo{}
	svc := New(&stubOrderRepo{}, customers, checkout, stubArchiver{})

	paid := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	order, err := svc.CreateFromCart(context.Background(), CreateInput{
		UserID:        "u1",
		Cart:          testCart(),
		PaymentID:     "pay-9",
		PaymentStatus: "approved",
		PaymentMethod: "credit_card",
		PaymentDate:   paid,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != domain.OrderStatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", order.Status)
	}
	if order.CustomerID == nil || *order.CustomerID != "cust-1" {
		t.Fatalf("expected customer link, got %+v", order.CustomerID)
	}
	if order.CartID == nil || *order.CartID != "cart-1" {
		t.Fatalf("expected cart link, got %+v", order.CartID)
	}
	if len(order.Items) != 1 || order.Items[0].ProductName != "Tote" || order.Items[0].Quantity != 2 {
		t.Fatalf("unexpected frozen items: %+v", order.Items)
	}
	if checkout.input == nil || checkout.input.CartID != "cart-1" || checkout.input.Archive.CartID != "cart-1" {
		t.Fatalf("unexpected finalize input: %+v", checkout.input)
	}
}

func TestCreateFromCartLazyCustomer(t *testing.T) {
	customers := &stubCustomerRepo{}
	svc := New(&stubOrderRepo{}, customers, &stubCheckoutRepo{}, stubArchiver{})

	since := time.Date(2026, 3, 12, 11, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return since }

	paid := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	_, err := svc.CreateFromCart(context.Background(), CreateInput{UserID: "u1", Cart: testCart(), PaymentDate: paid})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if customers.created == nil {
		t.Fatal("expected customer to be created")
	}
	if !customers.created.FirstOrderDate.Equal(paid) {
		t.Fatalf("expected first order date %s, got %s", paid, customers.created.FirstOrderDate)
	}
	if !customers.created.CustomerSince.Equal(since) {
		t.Fatalf("expected customer since %s, got %s", since, customers.created.CustomerSince)
	}
}

func TestCreateFromCartReusesExistingCustomer(t *testing.T) {
	customers := &stubCustomerRepo{existing: &domain.Customer{ID: "cust-7", UserID: "u1"}}
	svc := New(&stubOrderRepo{}, customers, &stubCheckoutRepo{}, stubArchiver{})

	order, err := svc.CreateFromCart(context.Background(), CreateInput{UserID: "u1", Cart: testCart()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.CustomerID == nil || *order.CustomerID != "cust-7" {
		t.Fatalf("expected existing customer, got %+v", order.CustomerID)
	}
	if customers.created != nil {
		t.Fatal("expected no new customer")
	}
}

func TestCreateFromCartAbsorbsCustomerRace(t *testing.T) {
	// First GetByUser misses, Create collides, second GetByUser must win.
	svc := New(&stubOrderRepo{}, &raceCustomerRepo{}, &stubCheckoutRepo{}, stubArchiver{})

	order, err := svc.CreateFromCart(context.Background(), CreateInput{UserID: "u1", Cart: testCart()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.CustomerID == nil || *order.CustomerID != "cust-race" {
		t.Fatalf("expected raced customer, got %+v", order.CustomerID)
	}
}

type raceCustomerRepo struct {
	gets int
}

func (r *raceCustomerRepo) GetByUser(_ context.Context, userID string) (*domain.Customer, error) {
	r.gets++
	if r.gets == 1 {
		return nil, domain.ErrNotFound
	}
	return &domain.Customer{ID: "cust-race", UserID: userID}, nil
}

func (r *raceCustomerRepo) Create(_ context.Context, _ domain.Customer) (*domain.Customer, error) {
	return nil, domain.ErrAlreadyExists
}

func TestCreateFromCartIdempotentOnDuplicate(t *testing.T) {
	existing := &domain.Order{ID: "ord-1", Status: domain.OrderStatusCompleted}
	orders := &stubOrderRepo{byCart: existing}
	checkout := &stubCheckoutRepo{err: checkoutrepo.ErrOrderExists}
	svc := New(orders, &stubCustomerRepo{}, checkout, stubArchiver{})

	order, err := svc.CreateFromCart(context.Background(), CreateInput{UserID: "u1", Cart: testCart()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != "ord-1" {
		t.Fatalf("expected existing order, got %+v", order)
	}
}

func TestCreateFromCartMissingShipping(t *testing.T) {
	checkout := &stubCheckoutRepo{err: checkoutrepo.ErrShippingMissing}
	svc := New(&stubOrderRepo{}, &stubCustomerRepo{}, checkout, stubArchiver{})

	_, err := svc.CreateFromCart(context.Background(), CreateInput{UserID: "u1", Cart: testCart()})
	if err == nil || err.Error() != "Shipping not found for the given cart ID" {
		t.Fatalf("expected shipping error, got %v", err)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found class, got %v", err)
	}
}

func TestCreateFromCartShippingLinkFailure(t *testing.T) {
	checkout := &stubCheckoutRepo{err: checkoutrepo.ErrShippingLink}
	svc := New(&stubOrderRepo{}, &stubCustomerRepo{}, checkout, stubArchiver{})

	_, err := svc.CreateFromCart(context.Background(), CreateInput{UserID: "u1", Cart: testCart()})
	if err == nil || !strings.HasPrefix(err.Error(), "Failed to update shipment with order ID") {
		t.Fatalf("expected shipment link error, got %v", err)
	}
}

func TestCreateFromCartWrapsRepoFailure(t *testing.T) {
	checkout := &stubCheckoutRepo{err: errors.New("boom")}
	svc := New(&stubOrderRepo{}, &stubCustomerRepo{}, checkout, stubArchiver{})

	_, err := svc.CreateFromCart(context.Background(), CreateInput{UserID: "u1", Cart: testCart()})
	if err == nil || err.Error() != "Failed to create order: boom" {
		t.Fatalf("expected wrapped failure, got %v", err)
	}
}

func TestFindByCart(t *testing.T) {
	svc := New(&stubOrderRepo{byCart: &domain.Order{ID: "ord-1"}}, &stubCustomerRepo{}, &stubCheckoutRepo{}, stubArchiver{})
	order, err := svc.FindByCart(context.Background(), "cart-1")
	if err != nil || order.ID != "ord-1" {
		t.Fatalf("expected order, got %+v, %v", order, err)
	}

	svc = New(&stubOrderRepo{byCartErr: domain.ErrNotFound}, &stubCustomerRepo{}, &stubCheckoutRepo{}, stubArchiver{})
	_, err = svc.FindByCart(context.Background(), "cart-9")
	if err == nil || err.Error() != "Order not found" {
		t.Fatalf("expected order not found, got %v", err)
	}
}

func TestFindByID(t *testing.T) {
	svc := New(&stubOrderRepo{byID: &domain.Order{ID: "ord-1"}}, &stubCustomerRepo{}, &stubCheckoutRepo{}, stubArchiver{})
	order, err := svc.FindByID(context.Background(), "ord-1")
	if err != nil || order.ID != "ord-1" {
		t.Fatalf("expected order, got %+v, %v", order, err)
	}

	svc = New(&stubOrderRepo{byIDErr: domain.ErrNotFound}, &stubCustomerRepo{}, &stubCheckoutRepo{}, stubArchiver{})
	_, err = svc.FindByID(context.Background(), "ord-9")
	if err == nil || err.Error() != "Order not found" {
		t.Fatalf("expected order not found, got %v", err)
	}
}

func TestListByUser(t *testing.T) {
	svc := New(&stubOrderRepo{byUser: []domain.Order{{ID: "ord-1"}, {ID: "ord-2"}}}, &stubCustomerRepo{}, &stubCheckoutRepo{}, stubArchiver{})
	orders, err := svc.ListByUser(context.Background(), "u1")
	if err != nil || len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d, %v", len(orders), err)
	}

	svc = New(&stubOrderRepo{}, &stubCustomerRepo{}, &stubCheckoutRepo{}, stubArchiver{})
	_, err = svc.ListByUser(context.Background(), "u2")
	if err == nil || err.Error() != "Orders not found for the given user id" {
		t.Fatalf("expected empty-list error, got %v", err)
	}
}
