// Package backend is the JSON client for the Escrawl API consumed by the
// landing page: lead capture, feedback and the hero video playlist.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// ErrNetwork marks transport-level failures (offline, DNS, refused). The
// caller maps these to a generic retry message rather than surfacing them.
var ErrNetwork = errors.New("backend unreachable")

// RequestError is a non-2xx backend response with the human-readable message
// extracted from its body.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string { return e.Message }

// CustomerLead is the body for POST /api/customers.
type CustomerLead struct {
	Email string `json:"email"`
}

// VendorLead is the body for POST /api/vendors.
type VendorLead struct {
	Business string `json:"business"`
	Category string `json:"category"`
	Website  string `json:"website"`
	GST      string `json:"gst"`
	Email    string `json:"email"`
}

// FeedbackEntry is the body for POST /api/feedback.
type FeedbackEntry struct {
	Text string `json:"text"`
}

// Client calls the Escrawl backend over JSON.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a backend client for the given origin.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// HeroVideos fetches the hero playlist from GET /api/hero-videos. The
// endpoint may return a bare array of URLs or an object with a videos field.
// Any failure is an error; the rotator falls back silently.
func (c *Client) HeroVideos(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/hero-videos", nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "get hero videos"), ErrNetwork)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &RequestError{Status: res.StatusCode, Message: "hero videos unavailable"}
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read body")
	}
	var list []string
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Videos []string `json:"videos"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, errors.Wrap(err, "decode hero videos")
	}
	return wrapped.Videos, nil
}

// CreateCustomer saves a waitlist signup via POST /api/customers.
func (c *Client) CreateCustomer(ctx context.Context, lead CustomerLead) error {
	return c.post(ctx, "/api/customers", lead, []string{"error", "message"}, "Failed to save")
}

// CreateVendor saves a vendor registration via POST /api/vendors.
func (c *Client) CreateVendor(ctx context.Context, lead VendorLead) error {
	return c.post(ctx, "/api/vendors", lead, []string{"message", "error"}, "Registration failed")
}

// CreateFeedback saves visitor feedback via POST /api/feedback.
func (c *Client) CreateFeedback(ctx context.Context, entry FeedbackEntry) error {
	return c.post(ctx, "/api/feedback", entry, []string{"error"}, "Failed to submit feedback")
}

// post sends a JSON body and maps the outcome: transport failures are marked
// ErrNetwork, non-2xx responses become a RequestError carrying the first
// non-empty message field the endpoint consults (else the fallback).
func (c *Client) post(ctx context.Context, path string, payload any, msgFields []string, fallback string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshal payload")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "post "+path), ErrNetwork)
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(res.Body)
	fields := map[string]any{}
	// A body that fails to parse is treated as an empty object.
	if err := json.Unmarshal(raw, &fields); err != nil {
		fields = map[string]any{}
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg := messageFrom(fields, msgFields, fallback)
		c.logger.Debug("backend rejected request",
			zap.String("path", path), zap.Int("status", res.StatusCode), zap.String("message", msg))
		return &RequestError{Status: res.StatusCode, Message: msg}
	}
	return nil
}

// messageFrom picks the first non-empty string among the preferred fields.
func messageFrom(fields map[string]any, prefs []string, fallback string) string {
	for _, key := range prefs {
		if v, ok := fields[key].(string); ok && v != "" {
			return v
		}
	}
	return fallback
}
