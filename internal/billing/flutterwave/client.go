package flutterwave

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/BrieflyAI/Briefly-Backend/internal/billing/provider"
)

// Client is an HTTP client for the Flutterwave v3 API.
type Client struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Flutterwave API client.
func NewClient(secretKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = provider.DefaultFlutterwaveEndpoint
	}
	return &Client{
		secretKey: secretKey,
		baseURL:   baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type apiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// CancelSubscription calls PUT /subscriptions/{id}/cancel.
func (c *Client) CancelSubscription(ctx context.Context, subscriptionID string) error {
	u := fmt.Sprintf("%s/subscriptions/%s/cancel", c.baseURL, subscriptionID)

	start := time.Now()
	provider.LogRequest("Flutterwave", http.MethodPut, u)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, nil)
	if err != nil {
		return fmt.Errorf("creating cancel request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("cancel request: %w", err)
	}
	defer resp.Body.Close()
	provider.LogResponse("Flutterwave", resp.StatusCode, time.Since(start))

	if resp.StatusCode == http.StatusNotFound {
		return provider.ErrSubscriptionNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cancel returned HTTP %d", resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decoding cancel response: %w", err)
	}
	if body.Status != "success" {
		return fmt.Errorf("cancel rejected: %s", body.Message)
	}

	return nil
}

// Ping makes a minimal authenticated request to verify the secret key.
func (c *Client) Ping(ctx context.Context) error {
	u := c.baseURL + "/subscriptions?page=1"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed: status %d", resp.StatusCode)
	}

	return nil
}
