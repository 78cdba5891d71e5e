package forms

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/escrawl/landing/internal/analytics"
	"github.com/escrawl/landing/pkg/backend"
	"github.com/escrawl/landing/pkg/page"
)

// VendorAPI is the backend surface the vendor form uses.
type VendorAPI interface {
	CreateVendor(ctx context.Context, lead backend.VendorLead) error
}

// Vendor handles the vendor registration form.
type Vendor struct {
	form     *page.Form
	modal    *page.Modal
	api      VendorAPI
	preCheck PreSubmitCheck
	notifier page.Notifier
	tracker  *analytics.Tracker
	logger   *zap.Logger
}

// NewVendor creates the vendor form handler.
func NewVendor(form *page.Form, modal *page.Modal, api VendorAPI, notifier page.Notifier, tracker *analytics.Tracker, logger *zap.Logger) *Vendor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Vendor{form: form, modal: modal, api: api, notifier: notifier, tracker: tracker, logger: logger}
}

// SetPreSubmitCheck attaches the optional deliverability gate. The submit
// flow itself is unchanged whether or not a check is present.
func (v *Vendor) SetPreSubmitCheck(check PreSubmitCheck) { v.preCheck = check }

// Bind attaches the submit handler to the form.
func (v *Vendor) Bind() {
	v.form.OnSubmit(func() { v.handleSubmit(context.Background()) })
}

func (v *Vendor) handleSubmit(ctx context.Context) {
	business := v.form.Field("business")
	category := v.form.Field("category")
	website := v.form.Field("website")
	gst := v.form.Field("gst")
	email := v.form.Field("email")

	if business == "" {
		v.notifier.Toast("Please add your business name", page.KindError)
		return
	}
	if !ValidateEmail(email) {
		v.notifier.Toast("Please enter a valid email", page.KindError)
		return
	}

	btn := v.form.SubmitControl()
	btn.SetLoading(true)
	defer btn.SetLoading(false)

	submissionID := uuid.NewString()
	if v.preCheck != nil {
		if err := v.preCheck(ctx, email); err != nil {
			v.logger.Info("vendor submission blocked by pre-submit check",
				zap.Error(err), zap.String("submission_id", submissionID))
			v.notifier.Toast(err.Error(), page.KindError)
			return
		}
	}

	lead := backend.VendorLead{Business: business, Category: category, Website: website, GST: gst, Email: email}
	if err := v.api.CreateVendor(ctx, lead); err != nil {
		v.logger.Warn("vendor submission failed", zap.Error(err), zap.String("submission_id", submissionID))
		surfaceError(v.notifier, err, "Something went wrong. Please try again.")
		return
	}

	v.modal.Close()
	v.notifier.Toast("🎉 Vendor registered successfully!", page.KindInfo)
	v.form.Reset()
	v.tracker.Track("lead_submit", map[string]any{"type": "vendor"})
	v.logger.Info("vendor lead saved", zap.String("submission_id", submissionID))
}
