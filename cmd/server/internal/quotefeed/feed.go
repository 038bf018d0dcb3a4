package quotefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhbvefgyehc/cloud-portfolio-tracker-sub/pkg/models"
)

const (
	keyPrefix     = "quote:"
	channelPrefix = "quotes."
	snapshotTTL   = 1 * time.Hour
)

// Feed receives every successfully resolved quote. It is a side channel
// for downstream consumers; publish failures never affect the caller's
// response.
type Feed interface {
	Publish(ctx context.Context, q models.Quote) error
	Close() error
}

// Compile-time checks
var (
	_ Feed = (*RedisFeed)(nil)
	_ Feed = Nop{}
)

type RedisFeed struct {
	client *redis.Client
}

func NewRedisFeed(client *redis.Client) *RedisFeed {
	return &RedisFeed{client: client}
}

// Publish stores the latest quote snapshot and broadcasts it in a single
// pipeline so subscribers and snapshot readers see the same update.
func (f *RedisFeed) Publish(ctx context.Context, q models.Quote) error {
	payload, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("marshal quote for %s: %w", q.Symbol, err)
	}

	pipe := f.client.Pipeline()
	pipe.Set(ctx, keyPrefix+q.Symbol, payload, snapshotTTL) // TTL prevents unbounded memory growth
	pipe.Publish(ctx, channelPrefix+q.Symbol, payload)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish quote for %s: %w", q.Symbol, err)
	}
	return nil
}

func (f *RedisFeed) Close() error {
	return f.client.Close()
}

// Nop is used when no Redis address is configured.
type Nop struct{}

func (Nop) Publish(context.Context, models.Quote) error { return nil }
func (Nop) Close() error                                { return nil }
