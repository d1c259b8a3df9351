package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCreatePreference(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/checkout/preferences" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token-1" {
			t.Errorf("unexpected auth header: %q", got)
		}
		var req PreferenceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.ExternalReference != "cart-1" || len(req.Items) != 1 {
			t.Errorf("unexpected request body: %+v", req)
		}
		json.NewEncoder(w).Encode(Preference{ID: "pref-1", InitPoint: "https://pay.example/p/pref-1"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "token-1")
	pref, err := client.CreatePreference(context.Background(), PreferenceRequest{
		ExternalReference: "cart-1",
		Items:             []PreferenceItem{{Title: "Tote", Quantity: 2, UnitPrice: decimal.NewFromInt(25)}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pref.ID != "pref-1" || pref.InitPoint != "https://pay.example/p/pref-1" {
		t.Fatalf("unexpected preference: %+v", pref)
	}
}

func TestGetPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payments/777" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"id": 777, "status": "approved", "external_reference": "cart-1", "payment_method_id": "visa"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "token-1")
	payment, err := client.GetPayment(context.Background(), "777")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payment.ID != 777 || payment.Status != "approved" || payment.ExternalReference != "cart-1" {
		t.Fatalf("unexpected payment: %+v", payment)
	}
}

func TestNonSuccessStatusIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"payment not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "token-1")
	_, err := client.GetPayment(context.Background(), "404")
	if err == nil || !strings.Contains(err.Error(), "status 404") {
		t.Fatalf("expected status error, got %v", err)
	}
}
