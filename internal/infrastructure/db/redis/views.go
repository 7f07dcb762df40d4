package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/devboard/devboard-api/internal/api/metrics"
)

const viewTTL = 30 * time.Minute

// ViewTracker deduplicates view counting backed by Redis.
// Key format: view:<kind>:<slug>:<viewer_addr>
type ViewTracker struct {
	client *redis.Client
}

// NewViewTracker creates a ViewTracker wrapping the given Redis client.
func NewViewTracker(client *redis.Client) *ViewTracker {
	return &ViewTracker{client: client}
}

// FirstView atomically claims the (kind, slug, viewerAddr) triple. It returns
// true only for the first sighting within viewTTL; subsequent calls within
// the window see the existing key and return false.
func (t *ViewTracker) FirstView(ctx context.Context, kind, slug, viewerAddr string) (bool, error) {
	ok, err := t.client.SetNX(ctx, t.key(kind, slug, viewerAddr), "1", viewTTL).Result()
	if err != nil {
		return false, fmt.Errorf("view dedup: %w", err)
	}
	if ok {
		metrics.ViewsTotal.WithLabelValues(kind).Inc()
	}
	return ok, nil
}

func (t *ViewTracker) key(kind, slug, viewerAddr string) string {
	return fmt.Sprintf("view:%s:%s:%s", kind, slug, viewerAddr)
}
