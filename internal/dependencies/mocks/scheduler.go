package mocks

import (
	"sync"
	"time"

	"github.com/tcullen/arcadehub/internal/dependencies/timer"
)

// MockScheduler is a mock implementation of Scheduler for testing.
// Scheduled callbacks never fire on their own; tests fire them explicitly
// with Fire/FireNext so timer-driven behavior runs deterministically on the
// test goroutine.
type MockScheduler struct {
	mu    sync.Mutex
	tasks []*MockTask
}

// Ensure MockScheduler implements Scheduler
var _ timer.Scheduler = (*MockScheduler)(nil)

// MockTask is a scheduled callback held by the MockScheduler
type MockTask struct {
	Delay time.Duration

	mu        sync.Mutex
	fn        func()
	fired     bool
	cancelled bool
}

// Cancel marks the task cancelled; it returns false if it already fired
// or was already cancelled
func (t *MockTask) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fired || t.cancelled {
		return false
	}
	t.cancelled = true
	return true
}

// Pending reports whether the task is still waiting to fire
func (t *MockTask) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.fired && !t.cancelled
}

// Fire runs the callback if the task is still pending
func (t *MockTask) Fire() {
	t.mu.Lock()
	if t.fired || t.cancelled {
		t.mu.Unlock()
		return
	}
	t.fired = true
	fn := t.fn
	t.mu.Unlock()
	fn()
}

// ForceFire runs the callback even if the task was cancelled, simulating a
// real timer callback that had already left the timer queue when Cancel was
// called. Engines must survive this via their own staleness guards.
func (t *MockTask) ForceFire() {
	t.mu.Lock()
	if t.fired {
		t.mu.Unlock()
		return
	}
	t.fired = true
	fn := t.fn
	t.mu.Unlock()
	fn()
}

// NewMockScheduler creates a new MockScheduler
func NewMockScheduler() *MockScheduler {
	return &MockScheduler{}
}

// AfterFunc records the callback and returns its task as the handle
func (s *MockScheduler) AfterFunc(d time.Duration, f func()) timer.Handle {
	task := &MockTask{Delay: d, fn: f}
	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()
	return task
}

// Tasks returns all tasks ever scheduled, in scheduling order
func (s *MockScheduler) Tasks() []*MockTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*MockTask(nil), s.tasks...)
}

// PendingCount returns the number of tasks still waiting to fire
func (s *MockScheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, t := range s.tasks {
		if t.Pending() {
			count++
		}
	}
	return count
}

// FireNext fires the oldest pending task and reports whether one existed
func (s *MockScheduler) FireNext() bool {
	s.mu.Lock()
	var next *MockTask
	for _, t := range s.tasks {
		if t.Pending() {
			next = t
			break
		}
	}
	s.mu.Unlock()
	if next == nil {
		return false
	}
	next.Fire()
	return true
}

// FireAll fires pending tasks until none remain, including tasks scheduled
// by the callbacks themselves. The limit guards against runaway reschedule
// loops in a broken engine.
func (s *MockScheduler) FireAll(limit int) int {
	fired := 0
	for fired < limit && s.FireNext() {
		fired++
	}
	return fired
}
