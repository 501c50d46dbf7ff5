package clock

import (
	"sync"
	"time"
)

// Clock stamps submissions and registrations. Tests swap in mocks.MockClock.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock in UTC. Successive readings from one
// RealClock are strictly increasing, so two submissions never share a
// timestamp even when the wall clock stalls or steps backwards.
type RealClock struct {
	mu   sync.Mutex
	last time.Time
}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return c.next(time.Now().UTC())
}

func (c *RealClock) next(wall time.Time) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !wall.After(c.last) {
		wall = c.last.Add(time.Nanosecond)
	}
	c.last = wall
	return wall
}
