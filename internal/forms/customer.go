package forms

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/escrawl/landing/internal/analytics"
	"github.com/escrawl/landing/pkg/backend"
	"github.com/escrawl/landing/pkg/page"
)

// CustomerAPI is the backend surface the customer form uses.
type CustomerAPI interface {
	CreateCustomer(ctx context.Context, lead backend.CustomerLead) error
}

// Customer handles the waitlist signup form.
type Customer struct {
	form     *page.Form
	modal    *page.Modal
	api      CustomerAPI
	relay    Relay
	notifier page.Notifier
	tracker  *analytics.Tracker
	logger   *zap.Logger
}

// NewCustomer creates the customer form handler.
func NewCustomer(form *page.Form, modal *page.Modal, api CustomerAPI, notifier page.Notifier, tracker *analytics.Tracker, logger *zap.Logger) *Customer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Customer{form: form, modal: modal, api: api, notifier: notifier, tracker: tracker, logger: logger}
}

// SetRelay attaches the optional form relay, fired after a successful save.
func (c *Customer) SetRelay(r Relay) { c.relay = r }

// Bind attaches the submit handler to the form.
func (c *Customer) Bind() {
	c.form.OnSubmit(func() { c.handleSubmit(context.Background()) })
}

func (c *Customer) handleSubmit(ctx context.Context) {
	email := c.form.Field("email")
	if !ValidateEmail(email) {
		c.notifier.Toast("Invalid email format", page.KindError)
		return
	}

	btn := c.form.SubmitControl()
	btn.SetLoading(true)
	defer btn.SetLoading(false)

	submissionID := uuid.NewString()
	if err := c.api.CreateCustomer(ctx, backend.CustomerLead{Email: email}); err != nil {
		c.logger.Warn("customer submission failed", zap.Error(err), zap.String("submission_id", submissionID))
		surfaceError(c.notifier, err, "Submission failed. Try again.")
		return
	}

	c.modal.Close()
	c.notifier.Toast("✅ You're on the waitlist!", page.KindInfo)
	c.form.Reset()
	c.tracker.Track("lead_submit", map[string]any{"type": "customer"})
	c.logger.Info("customer lead saved", zap.String("submission_id", submissionID))

	if c.relay != nil {
		c.relay.Send(ctx, email)
	}
}
