package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// forwardTimeout bounds one push so a slow consumer cannot stall the page.
const forwardTimeout = 2 * time.Second

// ListPusher is the slice of the Redis API the forwarder needs.
type ListPusher interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// Envelope wraps one dataLayer record for the external marketing consumer.
type Envelope struct {
	ID        string    `json:"id"`
	Record    Event     `json:"record"`
	CreatedAt time.Time `json:"created_at"`
}

// Forwarder pushes dataLayer records onto a Redis list that the marketing
// tag consumer drains. Push failures are logged and swallowed.
type Forwarder struct {
	client ListPusher
	key    string
	logger *zap.Logger
}

// NewForwarder creates a forwarder appending to the given list key.
func NewForwarder(client ListPusher, key string, logger *zap.Logger) *Forwarder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Forwarder{client: client, key: key, logger: logger}
}

// Forward pushes one record. Never returns an error: the in-process queue is
// authoritative and forwarding is best-effort.
func (f *Forwarder) Forward(rec Event) {
	env := Envelope{
		ID:        uuid.New().String(),
		Record:    rec,
		CreatedAt: time.Now(),
	}
	raw, err := json.Marshal(env)
	if err != nil {
		f.logger.Warn("marshal analytics envelope failed", zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), forwardTimeout)
	defer cancel()
	if err := f.client.RPush(ctx, f.key, raw).Err(); err != nil {
		f.logger.Warn("forward analytics event failed", zap.Error(err), zap.String("key", f.key))
		return
	}
	f.logger.Debug("forwarded analytics event", zap.String("id", env.ID))
}
