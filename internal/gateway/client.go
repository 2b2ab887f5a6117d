package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avelora/airdesk/internal/domain"
)

// IntentStatusSucceeded is the only gateway status a payment may be
// reconciled against.
const IntentStatusSucceeded = "succeeded"

// Hold is a provisional charge authorization created with the processor.
// The client secret goes back to the caller so their client can complete
// the charge; the intent ref is what Confirm is later verified against.
type Hold struct {
	IntentRef    string `json:"intent_ref"`
	ClientSecret string `json:"client_secret"`
}

// IntentStatus is the processor's authoritative view of an intent. The
// charged amount reported here is trusted over anything the caller claims.
type IntentStatus struct {
	Status      string `json:"status"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

// PaymentGateway is the verification contract with the external processor.
type PaymentGateway interface {
	CreateHold(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*Hold, error)
	GetIntentStatus(ctx context.Context, intentRef string) (*IntentStatus, error)
}

// Client talks JSON over HTTP to the processor. Every call carries the
// http.Client timeout; expiry surfaces as domain.ErrGateway and is never
// retried here, since a blind retry of a confirmation can double charge.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type createHoldRequest struct {
	AmountCents int64             `json:"amount_cents"`
	Currency    string            `json:"currency"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

func (c *Client) CreateHold(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*Hold, error) {
	var hold Hold
	if err := c.post(ctx, "/v1/holds", createHoldRequest{AmountCents: amountCents, Currency: currency, Metadata: metadata}, &hold); err != nil {
		return nil, err
	}
	return &hold, nil
}

func (c *Client) GetIntentStatus(ctx context.Context, intentRef string) (*IntentStatus, error) {
	var status IntentStatus
	if err := c.get(ctx, "/v1/intents/"+intentRef, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal gateway request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", domain.ErrGateway, err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("%w: status %d: %s", domain.ErrGateway, resp.StatusCode, string(data))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrGateway, err)
	}
	return nil
}

var _ PaymentGateway = (*Client)(nil)
