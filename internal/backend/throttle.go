package backend

import (
	"sync"
	"time"
)

// throttle spaces successive emissions at least interval apart.
type throttle struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func newThrottle(interval time.Duration) *throttle {
	if interval <= 0 {
		return &throttle{}
	}
	return &throttle{interval: interval}
}

// reserve claims the next emission slot and returns how long the caller must
// wait before using it.
func (t *throttle) reserve(now time.Time) time.Duration {
	if t == nil || t.interval <= 0 {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	wait := t.next.Sub(now)
	if wait < 0 {
		wait = 0
	}
	t.next = now.Add(wait + t.interval)
	return wait
}
