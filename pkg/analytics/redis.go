package analytics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRetention is how long a day's counters are kept.
const DefaultRetention = 90 * 24 * time.Hour

// RedisTracker counts button clicks per day. Each day is a hash at
// "<prefix>:<YYYY-MM-DD>" whose fields are button names.
type RedisTracker struct {
	client    redis.Cmdable
	prefix    string
	retention time.Duration
}

// NewRedisClient connects to the Redis server at addr.
func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: addr,
	})
}

// NewRedisTracker returns a tracker writing through client.
func NewRedisTracker(client redis.Cmdable, prefix string) *RedisTracker {
	return &RedisTracker{
		client:    client,
		prefix:    prefix,
		retention: DefaultRetention,
	}
}

// Key returns the hash key holding the counters for the day of at (UTC).
func (t *RedisTracker) Key(at time.Time) string {
	return fmt.Sprintf("%s:%s", t.prefix, at.UTC().Format(time.DateOnly))
}

// Track implements Tracker.
func (t *RedisTracker) Track(ctx context.Context, event Event) error {
	at := event.At
	if at.IsZero() {
		at = time.Now()
	}
	key := t.Key(at)

	pipe := t.client.TxPipeline()
	pipe.HIncrBy(ctx, key, event.Button, 1)
	pipe.Expire(ctx, key, t.retention)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to count %s for %s: %w", event.Button, key, err)
	}
	return nil
}

// Counts implements Counter.
func (t *RedisTracker) Counts(ctx context.Context, at time.Time) (map[string]int64, error) {
	key := t.Key(at)
	raw, err := t.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read counters %s: %w", key, err)
	}

	counts := make(map[string]int64, len(raw))
	for button, value := range raw {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("counter %s in %s is not an integer: %w", button, key, err)
		}
		counts[button] = n
	}
	return counts, nil
}
