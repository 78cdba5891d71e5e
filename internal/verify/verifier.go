// Package verify is the optional email-deliverability gate for vendor
// signups. It is a hardening policy layered in front of the submit flow,
// not part of the core contract.
package verify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// ErrRateLimited marks a 429 from the validation service.
var ErrRateLimited = errors.New("Too many attempts. Please try again in a minute.")

// result is the slice of the validation service's response we consult.
type result struct {
	Deliverability string `json:"deliverability"`
	IsFreeEmail    struct {
		Value bool `json:"value"`
	} `json:"is_free_email"`
}

// Verifier calls the third-party validation service. An address passes only
// when the service reports it deliverable and it belongs to the single
// allowed free-mail provider.
type Verifier struct {
	baseURL  string
	apiKey   string
	provider string
	http     *http.Client
	logger   *zap.Logger
}

// New creates a verifier against the given service.
func New(baseURL, apiKey, provider string, timeout time.Duration, logger *zap.Logger) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Verifier{
		baseURL:  baseURL,
		apiKey:   apiKey,
		provider: provider,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Check returns nil when the address may be submitted. Every non-nil error
// carries the message shown to the visitor.
func (v *Verifier) Check(ctx context.Context, email string) error {
	q := url.Values{}
	q.Set("api_key", v.apiKey)
	q.Set("email", email)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return errors.New("Could not verify email. Please try again.")
	}
	res, err := v.http.Do(req)
	if err != nil {
		v.logger.Warn("email verification request failed", zap.Error(err))
		return errors.New("Could not verify email. Please try again.")
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusTooManyRequests {
		return ErrRateLimited
	}
	var r result
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		v.logger.Warn("email verification response malformed", zap.Error(err))
		return errors.New("Could not verify email. Please try again.")
	}

	domain := email
	if i := strings.LastIndex(email, "@"); i >= 0 {
		domain = email[i+1:]
	}
	if r.Deliverability != "DELIVERABLE" || !r.IsFreeEmail.Value || !strings.EqualFold(domain, v.provider) {
		return errors.Newf("Please use a valid %s address.", v.provider)
	}
	return nil
}
