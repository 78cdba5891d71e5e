package page

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Kind classifies a toast notification.
type Kind string

const (
	KindInfo  Kind = "info"
	KindError Kind = "error"
)

// Notifier surfaces outcomes to the visitor: transient toasts and the
// distinct thank-you confirmation used by the feedback flow.
type Notifier interface {
	Toast(msg string, kind Kind)
	ThankYou()
}

// Toast is one recorded notification.
type Toast struct {
	Message string
	Kind    Kind
}

// MemoryNotifier records notifications in order. Useful to observe component
// behavior in tests and in the terminal preview.
type MemoryNotifier struct {
	mu        sync.Mutex
	toasts    []Toast
	thankYous int
}

// NewMemoryNotifier creates an empty recording notifier.
func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{}
}

// Toast records a notification.
func (n *MemoryNotifier) Toast(msg string, kind Kind) {
	n.mu.Lock()
	n.toasts = append(n.toasts, Toast{Message: msg, Kind: kind})
	n.mu.Unlock()
}

// ThankYou records a thank-you flash.
func (n *MemoryNotifier) ThankYou() {
	n.mu.Lock()
	n.thankYous++
	n.mu.Unlock()
}

// Toasts returns a copy of the recorded notifications.
func (n *MemoryNotifier) Toasts() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Toast, len(n.toasts))
	copy(out, n.toasts)
	return out
}

// Last returns the most recent toast, or a zero value if none.
func (n *MemoryNotifier) Last() Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.toasts) == 0 {
		return Toast{}
	}
	return n.toasts[len(n.toasts)-1]
}

// ThankYouCount returns how many thank-you flashes were shown.
func (n *MemoryNotifier) ThankYouCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.thankYous
}

// TimedNotifier keeps each toast and the thank-you flash on screen for a
// fixed duration, then dismisses it. Notifications are forwarded to an inner
// notifier so they can still be logged or recorded.
type TimedNotifier struct {
	inner    Notifier
	toastTTL time.Duration
	flashTTL time.Duration
	clock    clockwork.Clock

	mu       sync.Mutex
	visible  []Toast
	thankYou bool
}

// NewTimedNotifier creates a notifier that auto-dismisses after the given
// durations. A nil clock means the wall clock.
func NewTimedNotifier(inner Notifier, toastTTL, flashTTL time.Duration, clock clockwork.Clock) *TimedNotifier {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &TimedNotifier{inner: inner, toastTTL: toastTTL, flashTTL: flashTTL, clock: clock}
}

// Toast shows a notification and schedules its dismissal.
func (n *TimedNotifier) Toast(msg string, kind Kind) {
	t := Toast{Message: msg, Kind: kind}
	n.mu.Lock()
	n.visible = append(n.visible, t)
	n.mu.Unlock()
	if n.inner != nil {
		n.inner.Toast(msg, kind)
	}
	n.clock.AfterFunc(n.toastTTL, func() { n.dismiss(t) })
}

// ThankYou shows the thank-you flash and schedules its dismissal.
func (n *TimedNotifier) ThankYou() {
	n.mu.Lock()
	n.thankYou = true
	n.mu.Unlock()
	if n.inner != nil {
		n.inner.ThankYou()
	}
	n.clock.AfterFunc(n.flashTTL, func() {
		n.mu.Lock()
		n.thankYou = false
		n.mu.Unlock()
	})
}

// Visible returns a copy of the toasts currently on screen.
func (n *TimedNotifier) Visible() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Toast, len(n.visible))
	copy(out, n.visible)
	return out
}

// ThankYouVisible reports whether the thank-you flash is on screen.
func (n *TimedNotifier) ThankYouVisible() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.thankYou
}

// dismiss removes the oldest visible toast equal to t.
func (n *TimedNotifier) dismiss(t Toast) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, v := range n.visible {
		if v == t {
			n.visible = append(n.visible[:i], n.visible[i+1:]...)
			return
		}
	}
}

// LogNotifier writes notifications to the logger. Used by the terminal
// preview where there is no visual toast layer.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier backed by the given logger.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// Toast logs a notification.
func (n *LogNotifier) Toast(msg string, kind Kind) {
	if kind == KindError {
		n.logger.Warn("toast", zap.String("message", msg))
		return
	}
	n.logger.Info("toast", zap.String("message", msg))
}

// ThankYou logs the thank-you flash.
func (n *LogNotifier) ThankYou() {
	n.logger.Info("thank you shown")
}
