package forms

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/escrawl/landing/internal/analytics"
	"github.com/escrawl/landing/pkg/backend"
	"github.com/escrawl/landing/pkg/page"
)

// FeedbackAPI is the backend surface the feedback widget uses.
type FeedbackAPI interface {
	CreateFeedback(ctx context.Context, entry backend.FeedbackEntry) error
}

// Feedback handles the feedback widget's form.
type Feedback struct {
	form     *page.Form
	modal    *page.Modal
	api      FeedbackAPI
	notifier page.Notifier
	tracker  *analytics.Tracker
	logger   *zap.Logger
}

// NewFeedback creates the feedback form handler.
func NewFeedback(form *page.Form, modal *page.Modal, api FeedbackAPI, notifier page.Notifier, tracker *analytics.Tracker, logger *zap.Logger) *Feedback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feedback{form: form, modal: modal, api: api, notifier: notifier, tracker: tracker, logger: logger}
}

// Bind attaches the submit handler to the form.
func (f *Feedback) Bind() {
	f.form.OnSubmit(func() { f.handleSubmit(context.Background()) })
}

func (f *Feedback) handleSubmit(ctx context.Context) {
	text := f.form.Field("text")
	if text == "" {
		f.notifier.Toast("Please write some feedback first.", page.KindError)
		return
	}

	btn := f.form.SubmitControl()
	btn.SetLoading(true)
	defer btn.SetLoading(false)

	submissionID := uuid.NewString()
	if err := f.api.CreateFeedback(ctx, backend.FeedbackEntry{Text: text}); err != nil {
		f.logger.Warn("feedback submission failed", zap.Error(err), zap.String("submission_id", submissionID))
		surfaceError(f.notifier, err, "Something went wrong.")
		return
	}

	f.form.Reset()
	f.modal.Close()
	f.notifier.ThankYou()
	f.tracker.Track("feedback_submit", nil)
	f.logger.Info("feedback saved", zap.String("submission_id", submissionID))
}
