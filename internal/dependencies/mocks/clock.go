package mocks

import (
	"sort"
	"time"

	"github.com/fourstack/dropfour/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing. Timers scheduled
// through AfterFunc fire synchronously from Advance, in deadline order.
type MockClock struct {
	CurrentTime time.Time
	timers      []*mockTimer
}

type mockTimer struct {
	deadline time.Time
	f        func()
	stopped  bool
	fired    bool
}

// Stop prevents the timer from firing
func (t *mockTimer) Stop() bool {
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	return c.CurrentTime
}

// AfterFunc registers f to fire when the clock is advanced past d
func (c *MockClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	t := &mockTimer{deadline: c.CurrentTime.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by the given duration, firing any due
// timers in deadline order
func (c *MockClock) Advance(d time.Duration) {
	c.CurrentTime = c.CurrentTime.Add(d)
	c.fireDue()
}

// Set sets the clock to the given time
func (c *MockClock) Set(t time.Time) {
	c.CurrentTime = t
	c.fireDue()
}

// PendingTimers returns the number of timers not yet fired or stopped
func (c *MockClock) PendingTimers() int {
	n := 0
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

func (c *MockClock) fireDue() {
	// Fire in deadline order; a callback may schedule further timers, so
	// re-scan until nothing else is due
	for {
		var due []*mockTimer
		for _, t := range c.timers {
			if !t.fired && !t.stopped && !t.deadline.After(c.CurrentTime) {
				due = append(due, t)
			}
		}
		if len(due) == 0 {
			return
		}
		sort.SliceStable(due, func(i, j int) bool {
			return due[i].deadline.Before(due[j].deadline)
		})
		for _, t := range due {
			t.fired = true
			t.f()
		}
	}
}
