package service

import (
	"sync"
	"time"
)

// debouncer coalesces bursts of calls into a single invocation of fn
// after delay has passed without a new trigger. Used to collapse rapid
// local edits into one push.
type debouncer struct {
	delay time.Duration
	fn    func()

	mu    sync.Mutex
	timer *time.Timer
}

func newDebouncer(delay time.Duration, fn func()) *debouncer {
	return &debouncer{delay: delay, fn: fn}
}

// Trigger (re)starts the countdown. Each call pushes the invocation of
// fn out by the full delay.
func (d *debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fn)
}

// Stop cancels any countdown in flight. A trigger that already fired is
// not interrupted.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
