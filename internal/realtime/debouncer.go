package realtime

import (
	"sync"
	"time"
)

// DefaultDelay is how long a burst of changes is collected before one
// refresh is sent.
const DefaultDelay = 200 * time.Millisecond

// Debouncer coalesces Trigger calls: fn runs once, delay after the last
// Trigger of a burst.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func()
	timer   *time.Timer
	gen     uint64
	stopped bool
}

func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger cancels any pending run and schedules a new one.
func (d *Debouncer) Trigger() {
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
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()
	d.fn()
}

// Stop cancels the pending run. Later Triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
