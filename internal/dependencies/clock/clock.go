package clock

import "time"

// Timer is a scheduled callback that can be stopped. Stopping is advisory
// only: callbacks are written to re-validate their preconditions at fire
// time, so a timer that fires after Stop must still be harmless.
type Timer interface {
	// Stop prevents the timer from firing if it has not fired yet.
	// It reports whether the call stopped the timer.
	Stop() bool
}

// Clock provides time operations that can be mocked for testing
type Clock interface {
	Now() time.Time

	// AfterFunc schedules f to run after d has elapsed
	AfterFunc(d time.Duration, f func()) Timer
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules f on the runtime timer heap
func (c *RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
