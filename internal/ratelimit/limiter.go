// Package ratelimit provides per-client request limits.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/vietddude/ramp/internal/core/worker"
)

// Limiter counts a hit for key and reports whether it is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type entry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// Memory is a process-local token bucket per key. A key may burst up to
// limit hits and regains one hit every window/limit.
type Memory struct {
	limit  int
	every  rate.Limit
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
}

// NewMemory allows limit hits per key per window.
func NewMemory(limit int, win time.Duration) *Memory {
	if limit < 1 {
		limit = 1
	}
	return &Memory{
		limit:   limit,
		every:   rate.Every(win / time.Duration(limit)),
		window:  win,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// Allow implements Limiter.
func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		e = &entry{lim: rate.NewLimiter(m.every, m.limit)}
		m.entries[key] = e
	}
	e.lastSeen = now
	return e.lim.AllowN(now, 1), nil
}

// Cleanup drops keys idle for at least one window; their buckets have
// refilled by then.
func (m *Memory) Cleanup(context.Context) error {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()
	for key, e := range m.entries {
		if now.Sub(e.lastSeen) >= m.window {
			delete(m.entries, key)
		}
	}
	return nil
}

// Len returns the number of tracked keys.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Janitor returns a worker that runs Cleanup every interval.
func (m *Memory) Janitor(interval time.Duration) *worker.Refresher {
	return worker.NewRefresher("ratelimit-janitor", interval, m.Cleanup)
}

// Disabled allows everything.
type Disabled struct{}

// Allow implements Limiter.
func (Disabled) Allow(context.Context, string) (bool, error) {
	return true, nil
}
