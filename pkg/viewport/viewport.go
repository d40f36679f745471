package viewport

import (
	"sync"
	"time"

	"github.com/vango-dev/headless/pkg/reactive"
	"github.com/vango-dev/headless/pkg/timer"
)

const (
	// DefaultBreakpoint is the mobile/desktop cutover in CSS pixels.
	// A width strictly below it is mobile; the breakpoint itself is
	// desktop.
	DefaultBreakpoint = 768

	// DefaultDebounce is the quiet period after the last change
	// notification before the width is re-measured.
	DefaultDebounce = 250 * time.Millisecond
)

// MeasureFunc reports the current viewport width. ok is false when no
// window is available to measure.
type MeasureFunc func() (width int, ok bool)

// Flag is a debounced boolean derived from viewport width.
type Flag struct {
	measure    MeasureFunc
	breakpoint int
	debounce   time.Duration
	sched      timer.Scheduler

	mu      sync.Mutex
	pending timer.Timer
	closed  bool

	mobile *reactive.Signal[bool]
}

// Option configures a Flag.
type Option func(*Flag)

// WithBreakpoint sets the width cutover. Values below 1 are ignored.
func WithBreakpoint(px int) Option {
	return func(f *Flag) {
		if px >= 1 {
			f.breakpoint = px
		}
	}
}

// WithDebounce sets the quiet period. Non-positive values are ignored.
func WithDebounce(d time.Duration) Option {
	return func(f *Flag) {
		if d > 0 {
			f.debounce = d
		}
	}
}

// WithScheduler sets the timer scheduler, for tests.
func WithScheduler(sched timer.Scheduler) Option {
	return func(f *Flag) {
		if sched != nil {
			f.sched = sched
		}
	}
}

// NewFlag creates the flag and takes an immediate first measurement,
// so consumers see a settled value without waiting out a debounce.
// A nil measure func behaves like a measurement that never succeeds.
func NewFlag(measure MeasureFunc, opts ...Option) *Flag {
	f := &Flag{
		measure:    measure,
		breakpoint: DefaultBreakpoint,
		debounce:   DefaultDebounce,
		sched:      timer.System(),
		mobile:     reactive.NewSignal(false),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.evaluate()
	return f
}

// OnChange notes that the viewport may have changed. The re-measurement
// is debounced: each call cancels any pending timer and starts a new
// one, so only the width present when the burst quiets down is read.
func (f *Flag) OnChange() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	if f.pending != nil {
		f.pending.Stop()
	}
	f.pending = f.sched.AfterFunc(f.debounce, func() {
		f.mu.Lock()
		f.pending = nil
		closed := f.closed
		f.mu.Unlock()

		if !closed {
			f.evaluate()
		}
	})
}

// Mobile reports whether the viewport last measured below the
// breakpoint. Before any successful measurement it is false.
func (f *Flag) Mobile() bool {
	return f.mobile.Get()
}

// Signal exposes the flag for reactive consumption.
func (f *Flag) Signal() *reactive.Signal[bool] {
	return f.mobile
}

// Breakpoint returns the configured cutover width.
func (f *Flag) Breakpoint() int {
	return f.breakpoint
}

// Close cancels any pending debounce timer. Further OnChange calls are
// ignored; the last published value remains readable.
func (f *Flag) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	if f.pending != nil {
		f.pending.Stop()
		f.pending = nil
	}
}

// evaluate measures the width and publishes the classification. A
// failed measurement (no window) publishes the false default.
func (f *Flag) evaluate() {
	if f.measure == nil {
		f.mobile.Set(false)
		return
	}
	width, ok := f.measure()
	if !ok {
		f.mobile.Set(false)
		return
	}
	f.mobile.Set(width < f.breakpoint)
}
