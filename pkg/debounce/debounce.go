// Package debounce collapses bursts of calls into one execution after a
// quiet period. Every control key is debounced on its own.
package debounce

import (
	"slices"
	"sync"
	"time"
)

// Debouncer delays work per key. Only the last function scheduled for a key
// within the quiet period runs.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	pending map[string]*entry
	stopped bool
}

type entry struct {
	timer *time.Timer
	fn    func()
}

// New creates a Debouncer. With a zero or negative delay every call runs
// synchronously.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay, pending: make(map[string]*entry)}
}

// Delay is the quiet period.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Do schedules fn for key, replacing work scheduled for the same key
// earlier. Calls after Stop are ignored.
func (d *Debouncer) Do(key string, fn func()) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if old, ok := d.pending[key]; ok {
		old.timer.Stop()
		delete(d.pending, key)
	}
	if d.delay <= 0 {
		d.mu.Unlock()
		fn()
		return
	}

	e := &entry{fn: fn}
	e.timer = time.AfterFunc(d.delay, func() { d.fire(key, e) })
	d.pending[key] = e
	d.mu.Unlock()
}

func (d *Debouncer) fire(key string, e *entry) {
	d.mu.Lock()
	if d.pending[key] != e {
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.mu.Unlock()
	e.fn()
}

// Pending is the number of keys with scheduled work.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Flush runs all scheduled work now, in the order of keys.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	keys := make([]string, 0, len(d.pending))
	for k := range d.pending {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	fns := make([]func(), 0, len(keys))
	for _, k := range keys {
		e := d.pending[k]
		e.timer.Stop()
		fns = append(fns, e.fn)
		delete(d.pending, k)
	}
	d.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Stop cancels scheduled work. The Debouncer ignores later calls.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	for k, e := range d.pending {
		e.timer.Stop()
		delete(d.pending, k)
	}
}
