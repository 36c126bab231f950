package timer

import "time"

// Handle is a cancellable scheduled callback
type Handle interface {
	// Cancel stops the callback from firing. It returns false if the
	// callback already fired or was already cancelled.
	Cancel() bool
}

// Scheduler schedules one-shot callbacks that can be mocked for testing
type Scheduler interface {
	// AfterFunc runs f after d elapses and returns a handle to cancel it
	AfterFunc(d time.Duration, f func()) Handle
}

// RealScheduler implements Scheduler using the system timer
type RealScheduler struct{}

// New creates a new RealScheduler
func New() *RealScheduler {
	return &RealScheduler{}
}

// AfterFunc runs f on its own goroutine after d elapses
func (s *RealScheduler) AfterFunc(d time.Duration, f func()) Handle {
	return realHandle{timer: time.AfterFunc(d, f)}
}

type realHandle struct {
	timer *time.Timer
}

func (h realHandle) Cancel() bool {
	return h.timer.Stop()
}
