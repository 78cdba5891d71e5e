// Package forms implements the landing page's submission flows: validate
// locally, POST to the backend, surface the outcome, and always restore the
// submit control.
package forms

import (
	"context"
	"regexp"

	"github.com/cockroachdb/errors"

	"github.com/escrawl/landing/pkg/backend"
	"github.com/escrawl/landing/pkg/page"
)

// emailPattern is the single email-shape check used throughout the page.
// It does not verify deliverability.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail reports whether the address matches the page's email shape.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// PreSubmitCheck runs between local validation and backend submission. A
// non-nil error aborts the submission and its message is shown to the
// visitor.
type PreSubmitCheck func(ctx context.Context, email string) error

// Relay receives a duplicate copy of a saved lead, fire-and-forget.
type Relay interface {
	Send(ctx context.Context, email string)
}

// surfaceError converts a submission failure into an error toast. Backend
// rejections carry their own message; transport failures get the form's
// generic retry message; anything else (pre-submit checks) shows verbatim.
func surfaceError(n page.Notifier, err error, networkMsg string) {
	var reqErr *backend.RequestError
	switch {
	case errors.As(err, &reqErr):
		n.Toast(reqErr.Message, page.KindError)
	case errors.Is(err, backend.ErrNetwork):
		n.Toast(networkMsg, page.KindError)
	default:
		n.Toast(err.Error(), page.KindError)
	}
}
