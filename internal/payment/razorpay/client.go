// Package razorpay talks to the Razorpay Orders API and verifies the
// signatures its checkout widget attaches to successful payments.
//
// Without a key secret the client runs in widget-only mode: no orders are
// created and callbacks carry no signature to check, which matches a
// checkout opened with just the public key.
package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.razorpay.com"

var ErrSignatureMismatch = errors.New("razorpay: signature mismatch")

// Client is a minimal Razorpay API client.
type Client struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API host (tests, proxies).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the given key pair. keySecret may be empty.
func New(keyID, keySecret string, opts ...Option) *Client {
	c := &Client{
		keyID:      keyID,
		keySecret:  keySecret,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) KeyID() string { return c.keyID }

// HasSecret reports whether orders and signature checks are enabled.
func (c *Client) HasSecret() bool { return c.keySecret != "" }

type orderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
}

type orderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type apiError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder registers a charge and returns its order ID.
func (c *Client) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (string, error) {
	if !c.HasSecret() {
		return "", nil
	}

	body, err := json.Marshal(orderRequest{Amount: amount, Currency: currency, Receipt: receipt})
	if err != nil {
		return "", fmt.Errorf("encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("create order: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Description != "" {
			return "", fmt.Errorf("create order: %s: %s", apiErr.Error.Code, apiErr.Error.Description)
		}
		return "", fmt.Errorf("create order: unexpected status %d", resp.StatusCode)
	}

	var order orderResponse
	if err := json.Unmarshal(raw, &order); err != nil {
		return "", fmt.Errorf("decode order: %w", err)
	}
	if order.ID == "" {
		return "", errors.New("create order: response has no id")
	}
	return order.ID, nil
}

// VerifySignature checks HMAC-SHA256(order_id|payment_id) against the
// signature from the checkout callback.
func (c *Client) VerifySignature(orderID, paymentID, signature string) error {
	if !c.HasSecret() {
		return nil
	}
	if orderID == "" || signature == "" {
		return ErrSignatureMismatch
	}

	want := Sign(c.keySecret, orderID, paymentID)
	if !hmac.Equal([]byte(want), []byte(signature)) {
		return ErrSignatureMismatch
	}
	return nil
}

// Sign computes the checkout signature for an order/payment pair.
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
