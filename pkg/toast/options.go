package toast

import (
	"time"

	"github.com/vango-dev/headless/pkg/timer"
)

// Option configures a Store.
type Option func(*Store)

// WithLimit sets the maximum queue length. Values below 1 are ignored.
func WithLimit(n int) Option {
	return func(s *Store) {
		if n >= 1 {
			s.limit = n
		}
	}
}

// WithRemoveDelay sets how long a dismissed toast stays in the queue
// before removal. Non-positive values are ignored.
func WithRemoveDelay(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.removeDelay = d
		}
	}
}

// WithScheduler sets the timer scheduler. Tests pass a timer.Manual to
// drive removal and auto-dismiss deadlines deterministically.
func WithScheduler(sched timer.Scheduler) Option {
	return func(s *Store) {
		if sched != nil {
			s.sched = sched
		}
	}
}
