package filter

import (
	"sync"
	"time"
)

// Debounced binds a rapidly changing input to a committer function.
// Every Input updates the local value immediately and restarts the quiet
// window; when the window elapses without further input, the committer is
// invoked exactly once with the latest value. An external Override cancels
// any pending commit and forces the local value to match upstream.
//
// The commit callback runs on the timer goroutine; commits for one binding
// are strictly sequential.
type Debounced struct {
	mu      sync.Mutex
	value   string
	delay   time.Duration
	timer   *time.Timer
	gen     uint64
	commit  func(string)
	stopped bool
}

// NewDebounced creates a binding with the given initial value and quiet
// window. A non-positive delay falls back to 500ms.
func NewDebounced(initial string, delay time.Duration, commit func(string)) *Debounced {
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	return &Debounced{value: initial, delay: delay, commit: commit}
}

// Value returns the local, immediately-updated value.
func (d *Debounced) Value() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value
}

// Input records a keystroke: the local value updates synchronously and the
// quiet window restarts.
func (d *Debounced) Input(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.value = value
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(gen)
	})
}

// fire delivers a commit if it has not been superseded or cancelled.
func (d *Debounced) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	value := d.value
	d.timer = nil
	d.mu.Unlock()

	if d.commit != nil {
		d.commit(value)
	}
}

// Override handles an upstream change that did not come from this binding's
// own commit: the pending timer is cancelled and the local value is forced
// to the upstream value. Upstream always wins on external change.
func (d *Debounced) Override(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.value = value
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Cancel permanently stops the binding. A pending commit never fires
// after Cancel returns.
func (d *Debounced) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Flush commits the current value immediately when a window is pending.
// Useful on teardown when the latest input should not be lost.
func (d *Debounced) Flush() {
	d.mu.Lock()
	if d.stopped || d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer.Stop()
	d.timer = nil
	d.gen++
	value := d.value
	d.mu.Unlock()

	if d.commit != nil {
		d.commit(value)
	}
}
