package testutil

import (
	"sync"
	"time"
)

// FakeClock is a deterministic wall clock for tests.
//
// Every call to Now returns the current instant and then moves the clock
// forward by the tick, so a measurement bracketed by two Now calls always
// observes exactly one tick.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FakeClock struct {
	mu    sync.Mutex
	start time.Time
	now   time.Time
	tick  time.Duration
	calls int
}

// Epoch is the instant a FakeClock starts at unless told otherwise.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// NewFakeClock creates a clock at Epoch advancing by tick per Now call.
func NewFakeClock(tick time.Duration) *FakeClock {
	return &FakeClock{start: Epoch, now: Epoch, tick: tick}
}

// Now returns the current instant, then advances by the tick.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.tick)
	c.calls++
	return t
}

// Advance moves the clock forward by d without counting as a call.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// SetTick changes how far each subsequent Now call advances.
func (c *FakeClock) SetTick(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tick = d
}

// Calls returns how many times Now has been called.
func (c *FakeClock) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// Reset returns the clock to its starting instant.
//
// Used for test reuse. After Reset(), Now returns the start instant again.
func (c *FakeClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.start
	c.calls = 0
}
