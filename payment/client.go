// Package payment is a thin client for the external payment processor. The
// processor owns all payment state; session payloads pass through opaquely.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// SessionItem is a line item sent when creating a checkout session.
type SessionItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// SessionRequest describes the checkout session to create.
type SessionRequest struct {
	CustomerEmail string        `json:"customer_email"`
	Items         []SessionItem `json:"items"`
	SuccessURL    string        `json:"success_url,omitempty"`
	CancelURL     string        `json:"cancel_url,omitempty"`
}

// Client talks to the processor's REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a processor client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CreateSession creates a checkout session and returns the processor's
// response as-is.
func (c *Client) CreateSession(ctx context.Context, req SessionRequest) (json.RawMessage, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, "/v1/checkout/sessions", bytes.NewReader(body))
}

// GetSession fetches a checkout session by id and returns the processor's
// response as-is.
func (c *Client) GetSession(ctx context.Context, sessionID string) (json.RawMessage, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}
	path := "/v1/checkout/sessions/" + url.PathEscape(sessionID)
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading payment response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("payment API returned status %d", resp.StatusCode)
	}
	return json.RawMessage(payload), nil
}
