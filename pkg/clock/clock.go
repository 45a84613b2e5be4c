package clock

import (
	"sync"
	"time"
)

// Clock abstracts time.Now so services that stamp records can be tested
// deterministically.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() *RealClock { return &RealClock{} }

func (c *RealClock) Now() time.Time { return time.Now().UTC() }

// StubClock is a settable clock for tests.
type StubClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewStubClock(now time.Time) *StubClock {
	return &StubClock{now: now.UTC()}
}

func (c *StubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *StubClock) SetNow(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now.UTC()
}

// Advance moves the stub clock forward.
func (c *StubClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
