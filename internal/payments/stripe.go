package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotConfigured is returned when no Stripe secret key is set.
var ErrNotConfigured = errors.New("payments: stripe not configured")

// Client is a minimal Stripe Checkout API client.
type Client struct {
	httpClient *http.Client
	secretKey  string
	baseURL    string
}

// NewClient constructs a new Stripe client.
func NewClient(httpClient *http.Client, secretKey string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		secretKey:  secretKey,
		baseURL:    "https://api.stripe.com/v1",
	}
}

// LineItem describes one charge on the checkout page.
type LineItem struct {
	Name        string `json:"name"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Quantity    int64  `json:"quantity"`
}

// CheckoutSessionRequest describes parameters for session creation.
type CheckoutSessionRequest struct {
	LineItems     []LineItem        `json:"line_items"`
	SuccessURL    string            `json:"success_url"`
	CancelURL     string            `json:"cancel_url"`
	CustomerEmail string            `json:"customer_email,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// CheckoutSession contains the provider session data the frontend needs.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateCheckoutSession creates a hosted payment session via the Stripe API.
func (c *Client) CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (CheckoutSession, error) {
	if c.secretKey == "" {
		return CheckoutSession{}, ErrNotConfigured
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("success_url", req.SuccessURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("billing_address_collection", "required")
	form.Set("phone_number_collection[enabled]", "true")
	if req.CustomerEmail != "" {
		form.Set("customer_email", req.CustomerEmail)
	}
	for i, item := range req.LineItems {
		prefix := fmt.Sprintf("line_items[%d]", i)
		currency := item.Currency
		if currency == "" {
			currency = "nzd"
		}
		form.Set(prefix+"[price_data][currency]", strings.ToLower(currency))
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.AmountCents, 10))
		form.Set(prefix+"[quantity]", strconv.FormatInt(item.Quantity, 10))
	}
	for key, value := range req.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", key), value)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return CheckoutSession{}, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return CheckoutSession{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return CheckoutSession{}, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			return CheckoutSession{}, fmt.Errorf("stripe: %s", apiErr.Error.Message)
		}
		return CheckoutSession{}, fmt.Errorf("stripe: unexpected status %d", resp.StatusCode)
	}

	var session CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return CheckoutSession{}, err
	}
	return session, nil
}
