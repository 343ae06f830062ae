package service

import (
	"sync"
	"time"
)

// debounceTimer is a cancellable one-shot timer. At most one callback is
// pending at any time: scheduling always supersedes the previous schedule.
type debounceTimer struct {
	mu    sync.Mutex
	timer *time.Timer
}

// Schedule runs fn after delay, cancelling any not-yet-fired schedule.
// Returns true when a pending schedule was superseded.
func (d *debounceTimer) Schedule(delay time.Duration, fn func()) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	superseded := false
	if d.timer != nil {
		superseded = d.timer.Stop()
	}
	d.timer = time.AfterFunc(delay, fn)
	return superseded
}

// CancelPending stops the pending schedule, if any. An already-dispatched
// callback is not interrupted.
func (d *debounceTimer) CancelPending() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
