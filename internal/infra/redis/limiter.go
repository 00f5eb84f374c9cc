package redis

import (
	"context"
	"fmt"
	"time"
)

// Limiter is a fixed-window counter shared by every server instance
// pointing at the same Redis.
type Limiter struct {
	client *Client
	limit  int64
	window time.Duration
	now    func() time.Time
}

// NewLimiter allows limit hits per identifier per window. Windows are
// counted in whole milliseconds, so anything shorter is raised to 1ms.
func NewLimiter(client *Client, limit int, window time.Duration) *Limiter {
	if window < time.Millisecond {
		window = time.Millisecond
	}
	return &Limiter{
		client: client,
		limit:  int64(limit),
		window: window,
		now:    time.Now,
	}
}

// Allow counts one hit for identifier and reports whether it is within the limit.
func (l *Limiter) Allow(ctx context.Context, identifier string) (bool, error) {
	key := windowKey(identifier, l.window, l.now())

	pipe := l.client.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.PExpire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit incr failed: %w", err)
	}

	return incr.Val() <= l.limit, nil
}
