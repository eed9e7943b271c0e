// Package debounce collapses bursts of calls into a single delayed call.
package debounce

import (
	"context"
	"sync"
	"time"
)

// Debouncer delays fn until no Call has happened for the configured delay.
// Only the argument of the last Call in a burst reaches fn.
//
// A Debouncer is safe for concurrent use. Once stopped (explicitly or by
// cancellation of the context passed to New) it never calls fn again.
type Debouncer[T any] struct {
	mu       sync.Mutex
	delay    time.Duration
	fn       func(T)
	timer    *time.Timer
	gen      uint64
	stopped  bool
	unbindFn func() bool
}

// New returns a Debouncer bound to ctx. Cancelling ctx cancels any pending call.
func New[T any](ctx context.Context, delay time.Duration, fn func(T)) *Debouncer[T] {
	d := &Debouncer[T]{delay: delay, fn: fn}
	d.unbindFn = context.AfterFunc(ctx, d.Stop)
	return d
}

// Call schedules fn(v) after the delay, replacing any pending call.
func (d *Debouncer[T]) Call(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen, v) })
}

func (d *Debouncer[T]) fire(gen uint64, v T) {
	d.mu.Lock()
	// a newer Call or Stop won the race with this timer
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fn(v)
}

// Pending reports whether a call is scheduled and has not fired yet.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil && !d.stopped
}

// Stop cancels the pending call, if any, and disables the Debouncer.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.stopped = true
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.unbindFn != nil {
		d.unbindFn()
	}
}
