package provider

import (
	"sync"
	"time"
)

// Clock abstracts time for rate-limit tests.
type Clock func() time.Time

// RateLimit is one provider's cool-down state, shared process-wide. Once
// armed, every concurrent caller observes the block until it expires; a
// shorter block never replaces a longer one already in effect.
type RateLimit struct {
	mu           sync.Mutex
	blockedUntil time.Time
	now          Clock
}

func NewRateLimit(clock Clock) *RateLimit {
	if clock == nil {
		clock = time.Now
	}
	return &RateLimit{now: clock}
}

// Block arms the cool-down for d from now. Zero or negative durations are
// ignored, as are blocks that would end before the current one.
func (r *RateLimit) Block(d time.Duration) {
	if d <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	until := r.now().Add(d)
	if until.After(r.blockedUntil) {
		r.blockedUntil = until
	}
}

// Blocked reports whether the cool-down is in effect and how long remains.
func (r *RateLimit) Blocked() (time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	remaining := r.blockedUntil.Sub(r.now())
	if remaining <= 0 {
		return 0, false
	}
	return remaining, true
}
