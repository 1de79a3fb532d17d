package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	config "github.com/JoaoOliveiraaa/minishop/configs"
)

// SessionItem is one display line of a hosted payment session.
type SessionItem struct {
	Name     string  `json:"name"`
	ImageURL string  `json:"image_url,omitempty"`
	Price    float64 `json:"price"`
	Quantity uint    `json:"quantity"`
}

// SessionRequest asks the provider to create a hosted payment page for
// an order. Reference is our order number; the provider echoes it back
// in callbacks.
type SessionRequest struct {
	Reference  string        `json:"reference"`
	Items      []SessionItem `json:"items"`
	SuccessURL string        `json:"success_url"`
	CancelURL  string        `json:"cancel_url"`
}

// Session is the provider's response: an opaque session id and the URL
// the customer's browser is redirected to.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// SessionCreator is the slice of the payment provider this service
// consumes. Tests substitute a stub.
type SessionCreator interface {
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)
}

type Client struct {
	cfg        config.PaymentConfig
	httpClient *http.Client
}

func NewClient(cfg config.PaymentConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) CreateSession(ctx context.Context, sessReq SessionRequest) (*Session, error) {
	body, err := json.Marshal(sessReq)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create session request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("Payment session creation failed for reference %s: %v", sessReq.Reference, err)
		return nil, fmt.Errorf("payment session creation failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("Payment API returned status %d for reference %s", resp.StatusCode, sessReq.Reference)
		return nil, fmt.Errorf("payment API returned non-success status: %d", resp.StatusCode)
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode payment session response: %w", err)
	}
	if session.ID == "" || session.URL == "" {
		return nil, fmt.Errorf("payment API returned incomplete session")
	}

	return &session, nil
}
