package nav

import (
	"sync"
	"time"

	"github.com/goliatone/go-cybertalent/internal/clock"
)

// DebounceWait is the delay used for scroll handlers.
const DebounceWait = 100 * time.Millisecond

// Debouncer runs only the last call made within the wait window.
type Debouncer struct {
	mu        sync.Mutex
	wait      time.Duration
	pending   clock.Timer
	scheduler clock.Scheduler
}

// NewDebouncer returns a Debouncer. A nil scheduler uses the system clock.
func NewDebouncer(wait time.Duration, s clock.Scheduler) *Debouncer {
	if s == nil {
		s = clock.System()
	}
	return &Debouncer{wait: wait, scheduler: s}
}

// Call schedules fn, cancelling any call still waiting.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		d.pending.Stop()
	}
	d.pending = d.scheduler.AfterFunc(d.wait, fn)
}

// Cancel drops a waiting call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
}
