// Package countdown renders the time remaining until launch into the
// page's countdown block.
package countdown

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/escrawl/landing/pkg/page"
)

// LiveMessage replaces the whole countdown block once launch is reached.
const LiveMessage = "We are live!"

// Snapshot is the remaining duration decomposed into display units. All
// values are non-negative; it is recomputed every tick and never stored.
type Snapshot struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// Remaining decomposes launch−now. The second return is true once the
// launch instant has been reached or passed.
func Remaining(launch, now time.Time) (Snapshot, bool) {
	ms := launch.Sub(now).Milliseconds()
	if ms <= 0 {
		return Snapshot{}, true
	}
	return Snapshot{
		Days:    int(ms / 86_400_000),
		Hours:   int(ms % 86_400_000 / 3_600_000),
		Minutes: int(ms % 3_600_000 / 60_000),
		Seconds: int(ms % 60_000 / 1_000),
	}, false
}

// pad2 renders a unit as a zero-padded 2-digit string.
func pad2(n int) string { return fmt.Sprintf("%02d", n) }

// Display holds the countdown's page regions. A nil Days region means the
// page has no countdown section and the component stays inert.
type Display struct {
	Days    *page.Region
	Hours   *page.Region
	Minutes *page.Region
	Seconds *page.Region
	Block   *page.Region // whole-section region replaced by LiveMessage
}

// Countdown ticks once a second until launch, then stops permanently.
type Countdown struct {
	launch  time.Time
	display Display
	clock   clockwork.Clock
	logger  *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a countdown toward the given launch instant.
func New(launch time.Time, display Display, clock clockwork.Clock, logger *zap.Logger) *Countdown {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Countdown{
		launch:  launch,
		display: display,
		clock:   clock,
		logger:  logger,
	}
}

// Start begins ticking. No-op when the page has no countdown section or the
// countdown is already running.
func (c *Countdown) Start() {
	if c.display.Days == nil {
		c.logger.Debug("no countdown section, skipping")
		return
	}
	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.done = make(chan struct{})
	done := c.done
	c.mu.Unlock()

	go c.run(ctx, done)
	c.logger.Info("countdown started", zap.Time("launch", c.launch))
}

// Stop cancels the ticking loop. Safe after the countdown went live.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel == nil {
		return
	}
	c.cancel()
	c.cancel = nil
	<-c.done
}

func (c *Countdown) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := c.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if c.tick(c.clock.Now()) {
				// Launch reached: the live state is terminal for the session.
				return
			}
		}
	}
}

// tick renders one snapshot. Returns true once live, after replacing the
// block content with the live message.
func (c *Countdown) tick(now time.Time) bool {
	snap, live := Remaining(c.launch, now)
	if live {
		c.display.Block.SetText(LiveMessage)
		c.logger.Info("countdown reached launch")
		return true
	}
	c.display.Days.SetText(pad2(snap.Days))
	c.display.Hours.SetText(pad2(snap.Hours))
	c.display.Minutes.SetText(pad2(snap.Minutes))
	c.display.Seconds.SetText(pad2(snap.Seconds))
	return false
}
