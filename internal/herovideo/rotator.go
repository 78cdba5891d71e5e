// Package herovideo cycles the landing page's looping hero video through a
// playlist fetched from the backend, with a static fallback.
package herovideo

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Player receives the active video source. Sources are pre-configured for
// autoplay/mute/loop, so setting one is enough to start playback.
type Player interface {
	SetSource(url string)
}

// PlaylistFetcher is the one backend call the rotator makes at startup.
type PlaylistFetcher interface {
	HeroVideos(ctx context.Context) ([]string, error)
}

// Rotator loads the playlist once, then advances the active source on a
// fixed interval, index wrapping modulo playlist length.
type Rotator struct {
	player   Player
	fetcher  PlaylistFetcher
	fallback []string
	interval time.Duration
	clock    clockwork.Clock
	logger   *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a rotator. A nil player means the page has no hero section and
// Start becomes a no-op, as does an empty resolved playlist.
func New(player Player, fetcher PlaylistFetcher, fallback []string, interval time.Duration, clock clockwork.Clock, logger *zap.Logger) *Rotator {
	if interval <= 0 {
		interval = 20 * time.Second
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Rotator{
		player:   player,
		fetcher:  fetcher,
		fallback: fallback,
		interval: interval,
		clock:    clock,
		logger:   logger,
	}
}

// Resolve returns the playlist to rotate: one attempt at the backend list,
// falling back to the static list on any failure or an empty result. The
// fetch is never retried and failures are never surfaced.
func (r *Rotator) Resolve(ctx context.Context) []string {
	if r.fetcher != nil {
		list, err := r.fetcher.HeroVideos(ctx)
		if err != nil {
			r.logger.Warn("hero playlist fetch failed, using fallback", zap.Error(err))
		} else if len(list) == 0 {
			r.logger.Warn("hero playlist empty, using fallback")
		} else {
			return list
		}
	}
	return r.fallback
}

// Start resolves the playlist, loads index 0 immediately and begins the
// rotation loop. Call Stop to release resources.
func (r *Rotator) Start(ctx context.Context) {
	if r.player == nil {
		r.logger.Debug("no hero video element, skipping")
		return
	}
	r.mu.Lock()
	if r.cancel != nil {
		r.mu.Unlock()
		return
	}
	runCtx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})
	done := r.done
	r.mu.Unlock()

	playlist := r.Resolve(ctx)
	if len(playlist) == 0 {
		r.logger.Warn("no hero videos available, rotator idle")
		r.mu.Lock()
		cancel()
		r.cancel = nil
		r.mu.Unlock()
		close(done)
		return
	}
	r.player.SetSource(playlist[0])

	go r.run(runCtx, playlist, done)
	r.logger.Info("hero rotator started", zap.Int("videos", len(playlist)), zap.Duration("interval", r.interval))
}

// Stop stops the rotation and releases resources.
func (r *Rotator) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel == nil {
		return
	}
	r.cancel()
	r.cancel = nil
	<-r.done
	r.logger.Info("hero rotator stopped")
}

func (r *Rotator) run(ctx context.Context, playlist []string, done chan struct{}) {
	defer close(done)
	ticker := r.clock.NewTicker(r.interval)
	defer ticker.Stop()

	index := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			index = (index + 1) % len(playlist)
			r.player.SetSource(playlist[index])
		}
	}
}
