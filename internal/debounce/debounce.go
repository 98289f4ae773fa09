// Package debounce provides a cancellable trailing-edge delayed task, the
// explicit form of the screens' "re-query 500ms after the last keystroke"
// timers.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay matches the search inputs of the admin screens.
const DefaultDelay = 500 * time.Millisecond

// Debouncer coalesces bursts of Call invocations into a single run of fn
// after the delay has passed without another Call. Cancel stops any pending
// run and is safe to call on teardown; a cancelled Debouncer can be reused.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	fn    func()
	timer *time.Timer
}

// New constructs a Debouncer for fn; a non-positive delay uses DefaultDelay.
func New(delay time.Duration, fn func()) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay, fn: fn}
}

// Call schedules fn, restarting the delay if a run is already pending.
func (d *Debouncer) Call() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.run)
}

func (d *Debouncer) run() {
	d.mu.Lock()
	d.timer = nil
	fn := d.fn
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Cancel drops any pending run.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Flush runs pending work immediately instead of waiting out the delay.
// A Flush with nothing pending is a no-op.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	pending := d.timer != nil
	if pending {
		d.timer.Stop()
		d.timer = nil
	}
	fn := d.fn
	d.mu.Unlock()
	if pending && fn != nil {
		fn()
	}
}
