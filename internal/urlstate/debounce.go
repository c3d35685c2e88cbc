package urlstate

import (
	"sync"
	"time"
)

// DefaultSearchDebounce is the quiescence period before search text is written to the URL.
const DefaultSearchDebounce = time.Second

// Timer is the subset of *time.Timer the debouncer needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc in production, a fake clock in tests.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer runs the last scheduled function once no new call has arrived for
// the configured duration. A superseded or cancelled call never runs, even if
// its timer already fired and is waiting on the lock.
type Debouncer struct {
	mu       sync.Mutex
	timer    Timer
	gen      uint64
	duration time.Duration
	after    AfterFunc
}

// NewDebouncer creates a debouncer. A nil after uses time.AfterFunc.
func NewDebouncer(duration time.Duration, after AfterFunc) *Debouncer {
	if after == nil {
		after = realAfterFunc
	}
	return &Debouncer{duration: duration, after: after}
}

// Debounce schedules fn and cancels any pending call.
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.after(d.duration, func() {
		d.mu.Lock()
		if gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()

		fn()
	})
}

// Cancel drops any pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
