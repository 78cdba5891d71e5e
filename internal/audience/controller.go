// Package audience binds the page's entry points to their modals and emits
// the marketing events for opens, closes and CTA clicks.
package audience

import (
	"go.uber.org/zap"

	"github.com/escrawl/landing/internal/analytics"
	"github.com/escrawl/landing/pkg/page"
)

// entryPoints lists the entry controls, the modal each opens, and the CTA
// name tracked on click. The feedback button opens its modal without a CTA
// event.
var entryPoints = []struct {
	btn   string
	modal string
	cta   string
}{
	{btn: "customerBtn", modal: "customerModal", cta: "customer"},
	{btn: "vendorBtn", modal: "vendorModal", cta: "vendor"},
	{btn: "feedbackBtn", modal: "feedbackModal"},
}

// Controller wires audience entry points and the modal analytics events.
type Controller struct {
	page    *page.Page
	tracker *analytics.Tracker
	logger  *zap.Logger
}

// New creates the controller.
func New(p *page.Page, tracker *analytics.Tracker, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{page: p, tracker: tracker, logger: logger}
}

// Bind attaches click handlers to whichever entry controls the page has and
// registers the modal open/close event observer. Absent controls are
// skipped silently.
func (c *Controller) Bind() {
	c.page.OnModalChange(func(id string, open bool) {
		event := "modal_close"
		if open {
			event = "modal_open"
		}
		c.tracker.Track(event, map[string]any{"id": id})
	})

	for _, ep := range entryPoints {
		ctrl := c.page.Control(ep.btn)
		if ctrl == nil {
			continue
		}
		modal := c.page.Modal(ep.modal)
		cta := ep.cta
		ctrl.OnClick(func() {
			modal.Open()
			if cta != "" {
				c.tracker.Track("cta_click", map[string]any{"cta": cta})
			}
		})
	}
}
