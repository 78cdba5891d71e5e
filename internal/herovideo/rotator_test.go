package herovideo

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlayer struct {
	mu      sync.Mutex
	sources []string
}

func (f *fakePlayer) SetSource(url string) {
	f.mu.Lock()
	f.sources = append(f.sources, url)
	f.mu.Unlock()
}

func (f *fakePlayer) history() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.sources))
	copy(out, f.sources)
	return out
}

type fakeFetcher struct {
	mu    sync.Mutex
	list  []string
	err   error
	calls int
}

func (f *fakeFetcher) HeroVideos(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.list, f.err
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var fallback = []string{"fb-0", "fb-1"}

func TestResolvePrefersRemoteList(t *testing.T) {
	r := New(&fakePlayer{}, &fakeFetcher{list: []string{"r-0", "r-1"}}, fallback, 0, nil, nil)
	assert.Equal(t, []string{"r-0", "r-1"}, r.Resolve(context.Background()))
}

func TestResolveFallsBackOnError(t *testing.T) {
	r := New(&fakePlayer{}, &fakeFetcher{err: errors.New("offline")}, fallback, 0, nil, nil)
	assert.Equal(t, fallback, r.Resolve(context.Background()))
}

func TestResolveFallsBackOnEmptyList(t *testing.T) {
	r := New(&fakePlayer{}, &fakeFetcher{}, fallback, 0, nil, nil)
	assert.Equal(t, fallback, r.Resolve(context.Background()))
}

func TestStartLoadsFirstFallbackSource(t *testing.T) {
	player := &fakePlayer{}
	r := New(player, &fakeFetcher{err: errors.New("offline")}, fallback, time.Minute, clockwork.NewFakeClock(), nil)

	r.Start(context.Background())
	defer r.Stop()

	assert.Equal(t, []string{"fb-0"}, player.history())
}

func TestRotationAdvancesModuloLength(t *testing.T) {
	playlist := []string{"v-0", "v-1", "v-2"}
	player := &fakePlayer{}
	clock := clockwork.NewFakeClock()
	r := New(player, &fakeFetcher{list: playlist}, fallback, 20*time.Second, clock, nil)

	r.Start(context.Background())
	defer r.Stop()
	clock.BlockUntil(1)

	for i := 1; i <= 5; i++ {
		clock.Advance(20 * time.Second)
		require.Eventually(t, func() bool { return len(player.history()) == i+1 }, time.Second, 5*time.Millisecond)
		history := player.history()
		assert.Equal(t, playlist[i%len(playlist)], history[len(history)-1])
	}
}

func TestFetchHappensExactlyOnce(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("offline")}
	clock := clockwork.NewFakeClock()
	r := New(&fakePlayer{}, fetcher, fallback, 20*time.Second, clock, nil)

	r.Start(context.Background())
	defer r.Stop()
	clock.BlockUntil(1)

	for i := 0; i < 3; i++ {
		clock.Advance(20 * time.Second)
	}
	assert.Equal(t, 1, fetcher.callCount())
}

func TestStartWithNoVideosAtAll(t *testing.T) {
	player := &fakePlayer{}
	r := New(player, &fakeFetcher{err: errors.New("offline")}, nil, time.Minute, clockwork.NewFakeClock(), nil)

	r.Start(context.Background()) // must not panic
	r.Stop()
	assert.Empty(t, player.history())

	// The idle rotator can still start later once sources exist.
	r.fallback = fallback
	r.Start(context.Background())
	defer r.Stop()
	assert.Equal(t, []string{"fb-0"}, player.history())
}

func TestRestartAfterStop(t *testing.T) {
	player := &fakePlayer{}
	clock := clockwork.NewFakeClock()
	r := New(player, &fakeFetcher{err: errors.New("offline")}, fallback, 20*time.Second, clock, nil)

	r.Start(context.Background())
	clock.BlockUntil(1)
	r.Stop()

	r.Start(context.Background())
	defer r.Stop()
	clock.BlockUntil(1)
	clock.Advance(20 * time.Second)
	require.Eventually(t, func() bool { return len(player.history()) == 3 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "fb-1", player.history()[2])
}

func TestStartWithoutHeroElement(t *testing.T) {
	fetcher := &fakeFetcher{}
	r := New(nil, fetcher, fallback, time.Minute, clockwork.NewFakeClock(), nil)
	r.Start(context.Background()) // must not panic or fetch
	r.Stop()
	assert.Equal(t, 0, fetcher.callCount())
}
