package services

import (
	"sync"
	"time"
)

const (
	// Repeated section views and resume opens within this window collapse to
	// a single count.
	viewThrottleWindow = 2 * time.Minute

	// Device and traffic-source events count once per visitor per day.
	dailyThrottleWindow = 24 * time.Hour
)

// Throttle deduplicates (kind, key) pairs inside a time window. It is
// in-memory only: a process restart clears it, so counts stay best-effort.
// The clock is injectable so tests control time.
type Throttle struct {
	mu   sync.Mutex
	seen map[string]time.Time
	now  func() time.Time
}

func NewThrottle(now func() time.Time) *Throttle {
	if now == nil {
		now = time.Now
	}
	return &Throttle{
		seen: make(map[string]time.Time),
		now:  now,
	}
}

// Allow reports whether an event of this kind and key may be counted, and
// marks it seen when allowed.
func (t *Throttle) Allow(kind EventKind, key string, window time.Duration) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := string(kind) + "|" + key
	now := t.now()
	if last, ok := t.seen[id]; ok && now.Sub(last) < window {
		return false
	}
	t.seen[id] = now
	return true
}

// Sweep drops entries older than the given age. Called periodically to keep
// the map bounded.
func (t *Throttle) Sweep(maxAge time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := t.now().Add(-maxAge)
	for id, last := range t.seen {
		if last.Before(cutoff) {
			delete(t.seen, id)
		}
	}
}

// StartSweeper clears stale throttle entries on an interval until the context
// is cancelled.
func (t *Throttle) StartSweeper(interval time.Duration, done <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				t.Sweep(2 * dailyThrottleWindow)
			case <-done:
				return
			}
		}
	}()
}
