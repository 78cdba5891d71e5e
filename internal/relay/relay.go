// Package relay sends a duplicate copy of saved leads to the external form
// relay service. Fire-and-forget: failures are logged and ignored.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client posts lead copies to the relay endpoint.
type Client struct {
	url    string
	http   *http.Client
	logger *zap.Logger
}

// New creates a relay client. An empty URL yields a nil client, which
// callers treat as relay-disabled.
func New(url string, timeout time.Duration, logger *zap.Logger) *Client {
	if url == "" {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{url: url, http: &http.Client{Timeout: timeout}, logger: logger}
}

// Send posts {email} to the relay. Never affects the caller's outcome.
func (c *Client) Send(ctx context.Context, email string) {
	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("form relay failed", zap.Error(err))
		return
	}
	res.Body.Close()
	c.logger.Debug("form relay sent", zap.Int("status", res.StatusCode))
}
