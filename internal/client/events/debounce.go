package events

import (
	"sync"
	"time"
)

// Debouncer collapses a burst of triggers into one deferred run. A bulk
// import produces many discrete remote writes; without debouncing each one
// would force a redundant full re-fetch.
//
// Semantics: triggers within the window collapse into a single run once the
// window elapses. While fn is running, new triggers do not start a second
// run; they schedule at most one follow-up run after the current one ends.
type Debouncer struct {
	mu       sync.Mutex
	window   time.Duration
	fn       func()
	timer    *time.Timer
	running  bool
	runAgain bool
}

// NewDebouncer returns a Debouncer invoking fn after window of quiet.
func NewDebouncer(window time.Duration, fn func()) *Debouncer {
	return &Debouncer{window: window, fn: fn}
}

// Trigger notes one occurrence of the debounced event.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		d.runAgain = true
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.run)
}

// Stop cancels any pending run. It does not interrupt a run in progress.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.runAgain = false
}

// Pending reports whether a run is scheduled or in progress.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil || d.running
}

func (d *Debouncer) run() {
	d.mu.Lock()
	d.timer = nil
	d.running = true
	d.mu.Unlock()

	d.fn()

	d.mu.Lock()
	d.running = false
	again := d.runAgain
	d.runAgain = false
	if again {
		d.timer = time.AfterFunc(d.window, d.run)
	}
	d.mu.Unlock()
}
