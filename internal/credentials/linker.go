package credentials

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"
)

// LinkPayload is what the OAuth callback forwards to the credential store
// after a successful Google sign-in.
type LinkPayload struct {
	UserID          string `json:"user_id"`
	CredentialsJSON string `json:"credentials_json"`
}

// Linker forwards freshly issued OAuth tokens to the credential-linking
// service over HTTP. The forward is best-effort: failures are logged and
// swallowed so they never break the login flow.
type Linker struct {
	endpoint   string
	httpClient *http.Client
}

// NewLinker reads CREDENTIALS_SERVICE_URL. Returns nil when unset, in which
// case callers skip the forward entirely.
func NewLinker() *Linker {
	endpoint := os.Getenv("CREDENTIALS_SERVICE_URL")
	if endpoint == "" {
		return nil
	}
	return &Linker{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 3 * time.Second,
		},
	}
}

// Forward posts the payload to the credential service. Always returns; any
// failure is logged and dropped.
func (l *Linker) Forward(ctx context.Context, payload LinkPayload) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[Linker] marshal error: %v", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.endpoint, bytes.NewReader(body))
	if err != nil {
		log.Printf("[Linker] request error: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if key := os.Getenv("CREDENTIALS_SERVICE_KEY"); key != "" {
		req.Header.Set("X-Internal-Key", key)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		log.Printf("[Linker] forward failed: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Printf("[Linker] forward returned HTTP %d", resp.StatusCode)
	}
}
