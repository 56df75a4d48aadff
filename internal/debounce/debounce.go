// Package debounce coalesces bursts of calls into a single delayed invocation.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delivers the value of the most recent Call to action after the
// calls have been quiet for the configured delay. Calls inside the window
// cancel the pending invocation and restart the timer; intermediate values are
// dropped, never queued.
type Debouncer[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	action  func(T)
	timer   *time.Timer
	pending T
	armed   bool
}

// New returns a Debouncer invoking action with the last value of a burst.
func New[T any](delay time.Duration, action func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, action: action}
}

// Call schedules action(v) after the delay, replacing any pending invocation.
func (d *Debouncer[T]) Call(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = v
	d.armed = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *Debouncer[T]) fire() {
	d.mu.Lock()
	if !d.armed {
		d.mu.Unlock()
		return
	}
	v := d.pending
	var zero T
	d.pending = zero
	d.armed = false
	d.mu.Unlock()

	d.action(v)
}

// Flush runs any pending invocation immediately instead of waiting out the
// delay. It is a no-op when nothing is pending.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
	d.fire()
}

// Stop drops any pending invocation without running it.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	var zero T
	d.pending = zero
	d.armed = false
}
