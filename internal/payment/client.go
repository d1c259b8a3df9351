// Package payment talks to the external payment provider's REST API.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// Client is a thin HTTP client for the payment provider.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

func NewClient(baseURL, accessToken string) *Client {
	return &Client{
		baseURL:     baseURL,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 5 * time.Second},
	}
}

// PreferenceItem is one purchasable line registered with the provider.
type PreferenceItem struct {
	ID         string          `json:"id,omitempty"`
	Title      string          `json:"title"`
	PictureURL string          `json:"picture_url,omitempty"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// PreferenceRequest registers a not-yet-paid payment request. The cart id
// travels as external_reference and comes back on the payment details.
type PreferenceRequest struct {
	Items             []PreferenceItem `json:"items"`
	ExternalReference string           `json:"external_reference"`
	NotificationURL   string           `json:"notification_url,omitempty"`
	BackURLs          *BackURLs        `json:"back_urls,omitempty"`
}

type BackURLs struct {
	Success string `json:"success,omitempty"`
	Pending string `json:"pending,omitempty"`
	Failure string `json:"failure,omitempty"`
}

// Preference is the provider's registered payment request.
type Preference struct {
	ID                string `json:"id"`
	InitPoint         string `json:"init_point"`
	CollectorID       int64  `json:"collector_id"`
	ExternalReference string `json:"external_reference"`
}

// Payment is the provider's view of a payment, fetched by id after a
// webhook notification.
type Payment struct {
	ID                int64      `json:"id"`
	Status            string     `json:"status"`
	ExternalReference string     `json:"external_reference"`
	PaymentMethodID   string     `json:"payment_method_id"`
	PaymentTypeID     string     `json:"payment_type_id"`
	DateApproved      *time.Time `json:"date_approved"`
	CollectorID       int64      `json:"collector_id"`
	Order             struct {
		ID int64 `json:"id"`
	} `json:"order"`
}

// CreatePreference registers a payment request with the provider.
func (c *Client) CreatePreference(ctx context.Context, req PreferenceRequest) (*Preference, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	var pref Preference
	if err := c.do(ctx, http.MethodPost, "/checkout/preferences", bytes.NewReader(body), &pref); err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}
	return &pref, nil
}

// GetPayment fetches full payment details by the provider's payment id.
func (c *Client) GetPayment(ctx context.Context, id string) (*Payment, error) {
	var p Payment
	if err := c.do(ctx, http.MethodGet, "/v1/payments/"+id, nil, &p); err != nil {
		return nil, fmt.Errorf("get payment %s: %w", id, err)
	}
	return &p, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("provider returned status %d: %s", resp.StatusCode, payload)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
