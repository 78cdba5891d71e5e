// Package analytics maintains the page's dataLayer: an append-only, ordered
// queue of marketing events consumed by an external tag manager.
package analytics

import (
	"sync"

	"go.uber.org/zap"
)

// Event is one dataLayer record: the event name merged with its payload
// under the "event" key.
type Event map[string]any

// Tracker owns the event queue. Appends are ordered by call sequence;
// there is no consume operation, the queue lives for the page session.
type Tracker struct {
	mu        sync.Mutex
	events    []Event
	forwarder *Forwarder
	logger    *zap.Logger
}

// NewTracker creates an empty tracker.
func NewTracker(logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{logger: logger}
}

var (
	defaultOnce    sync.Once
	defaultTracker *Tracker
)

// Default returns the process-wide tracker, created on first use. Repeated
// loads share the same queue, so earlier entries are never clobbered.
func Default() *Tracker {
	defaultOnce.Do(func() {
		defaultTracker = NewTracker(nil)
	})
	return defaultTracker
}

// SetForwarder attaches an optional external forwarder. Forward failures are
// logged and never affect the in-process queue.
func (t *Tracker) SetForwarder(f *Forwarder) {
	t.mu.Lock()
	t.forwarder = f
	t.mu.Unlock()
}

// Track appends the merged record {event: name, ...payload}. A nil payload
// records the bare event.
func (t *Tracker) Track(event string, payload map[string]any) {
	rec := Event{"event": event}
	for k, v := range payload {
		rec[k] = v
	}
	t.mu.Lock()
	t.events = append(t.events, rec)
	f := t.forwarder
	t.mu.Unlock()

	t.logger.Debug("tracked event", zap.String("event", event))
	if f != nil {
		f.Forward(rec)
	}
}

// Events returns a copy of the queue in append order.
func (t *Tracker) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// Named returns the recorded events with the given name, in order.
func (t *Tracker) Named(event string) []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []Event
	for _, e := range t.events {
		if e["event"] == event {
			out = append(out, e)
		}
	}
	return out
}
