package provider

import (
	"testing"
	"time"
)

// fakeClock is a manually advanced clock for rate-limit tests.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestRateLimitBlockAndExpiry(t *testing.T) {
	clock := newFakeClock()
	rl := NewRateLimit(clock.Now)

	if _, blocked := rl.Blocked(); blocked {
		t.Fatal("fresh rate limit reports blocked")
	}

	rl.Block(90 * time.Second)

	remaining, blocked := rl.Blocked()
	if !blocked {
		t.Fatal("armed rate limit reports unblocked")
	}
	if remaining != 90*time.Second {
		t.Errorf("remaining = %v, want 90s", remaining)
	}

	clock.Advance(89 * time.Second)
	if _, blocked := rl.Blocked(); !blocked {
		t.Error("cool-down released early")
	}

	clock.Advance(2 * time.Second)
	if _, blocked := rl.Blocked(); blocked {
		t.Error("cool-down still in effect after expiry")
	}
}

func TestRateLimitNeverRearmsEarlier(t *testing.T) {
	clock := newFakeClock()
	rl := NewRateLimit(clock.Now)

	rl.Block(120 * time.Second)
	rl.Block(10 * time.Second) // shorter block must not shrink the window

	remaining, blocked := rl.Blocked()
	if !blocked || remaining != 120*time.Second {
		t.Errorf("remaining = %v (blocked=%v), want 120s", remaining, blocked)
	}

	rl.Block(300 * time.Second) // longer block extends
	if remaining, _ := rl.Blocked(); remaining != 300*time.Second {
		t.Errorf("remaining = %v, want 300s", remaining)
	}
}

func TestRateLimitIgnoresNonPositive(t *testing.T) {
	rl := NewRateLimit(newFakeClock().Now)
	rl.Block(0)
	rl.Block(-time.Minute)
	if _, blocked := rl.Blocked(); blocked {
		t.Error("non-positive block armed the cool-down")
	}
}
