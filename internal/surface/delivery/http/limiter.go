package http

import (
	"fmt"
	"sync"
	"time"
)

// RateLimitError reports a rejected attach attempt.
type RateLimitError struct {
	Client  string
	Current int
	Max     int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("attach rate limit exceeded for %s (current: %d, max: %d)", e.Client, e.Current, e.Max)
}

// attachLimiter is a sliding-window limit on upgrade attempts per client
// address. It bounds reconnect storms from a misbehaving surface. A zero
// limit disables it.
type attachLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	seen   map[string][]time.Time
	now    func() time.Time
}

func newAttachLimiter(limit int, window time.Duration) *attachLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &attachLimiter{
		limit:  limit,
		window: window,
		seen:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

// allow records an attempt from client and returns a *RateLimitError when
// the window is already full.
func (l *attachLimiter) allow(client string) error {
	if l.limit <= 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	windowStart := now.Add(-l.window)

	// Prune every client so idle addresses do not accumulate.
	for c, ts := range l.seen {
		kept := ts[:0]
		for _, t := range ts {
			if t.After(windowStart) {
				kept = append(kept, t)
			}
		}
		if len(kept) == 0 {
			delete(l.seen, c)
			continue
		}
		l.seen[c] = kept
	}

	if n := len(l.seen[client]); n >= l.limit {
		return &RateLimitError{Client: client, Current: n, Max: l.limit}
	}
	l.seen[client] = append(l.seen[client], now)
	return nil
}
