// Package stripeconnect is a thin HTTP client for the subset of the Stripe
// Connect API the payout flow needs: account eligibility lookups and transfer
// creation. It deliberately avoids the full SDK; errors are mapped to
// structured codes so retry classification never inspects message text.
package stripeconnect

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lingueefy/coach-payout-service/internal/core/domain"
	portssvc "github.com/lingueefy/coach-payout-service/internal/core/ports/services"
)

const defaultBaseURL = "https://api.stripe.com"

// Transfers are money movements; the request must be allowed to complete or
// fail on its own terms, so the timeout is generous and callers never cancel
// mid-flight.
const defaultTimeout = 30 * time.Second

// Client calls the Stripe Connect API over HTTP.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// Ensure Client implements the TransferGateway port.
var _ portssvc.TransferGateway = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(baseURL, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) { c.client = client }
}

// NewClient creates a gateway client authenticated with the given secret key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RetrieveAccount fetches the live state of a Connect account.
func (c *Client) RetrieveAccount(ctx context.Context, accountID string) (*domain.ConnectAccount, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/accounts/"+url.PathEscape(accountID), nil)
	if err != nil {
		return nil, fmt.Errorf("build account request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("retrieve account %s: %w", accountID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, decodeError(resp)
	}

	var out struct {
		ID             string `json:"id"`
		PayoutsEnabled bool   `json:"payouts_enabled"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode account response: %w", err)
	}

	return &domain.ConnectAccount{
		AccountID:      out.ID,
		PayoutsEnabled: out.PayoutsEnabled,
	}, nil
}

// CreateTransfer requests a single transfer to a Connect account.
func (c *Client) CreateTransfer(ctx context.Context, treq portssvc.TransferRequest) (*domain.Transfer, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(treq.Amount, 10))
	form.Set("currency", treq.Currency)
	form.Set("destination", treq.Destination)
	if treq.Description != "" {
		form.Set("description", treq.Description)
	}
	for k, v := range treq.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/transfers", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build transfer request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create transfer to %s: %w", treq.Destination, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, decodeError(resp)
	}

	var out struct {
		ID          string `json:"id"`
		Amount      int64  `json:"amount"`
		Currency    string `json:"currency"`
		Destination string `json:"destination"`
		Created     int64  `json:"created"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode transfer response: %w", err)
	}
	if out.ID == "" {
		return nil, fmt.Errorf("gateway returned empty transfer id")
	}

	return &domain.Transfer{
		TransferID:  out.ID,
		Amount:      out.Amount,
		Currency:    out.Currency,
		Destination: out.Destination,
		CreatedAt:   time.Unix(out.Created, 0).UTC(),
	}, nil
}
