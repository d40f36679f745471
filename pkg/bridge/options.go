package bridge

import (
	"log/slog"
	"time"

	"github.com/vango-dev/headless/pkg/timer"
	"github.com/vango-dev/headless/pkg/toast"
)

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithLogger sets the bridge logger.
func WithLogger(logger *slog.Logger) BridgeOption {
	return func(b *Bridge) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithStore shares an existing toast store instead of creating one.
func WithStore(store *toast.Store) BridgeOption {
	return func(b *Bridge) {
		b.store = store
	}
}

// WithScheduler sets the timer scheduler used for debounce and removal
// deadlines. Tests pass a timer.Manual.
func WithScheduler(sched timer.Scheduler) BridgeOption {
	return func(b *Bridge) {
		if sched != nil {
			b.sched = sched
		}
	}
}

// WithBreakpoint sets the viewport breakpoint for new sessions.
func WithBreakpoint(px int) BridgeOption {
	return func(b *Bridge) {
		if px >= 1 {
			b.breakpoint = px
		}
	}
}

// WithDebounce sets the viewport debounce for new sessions.
func WithDebounce(d time.Duration) BridgeOption {
	return func(b *Bridge) {
		if d > 0 {
			b.debounce = d
		}
	}
}

// WithCarouselItems sets the default carousel item count, used until a
// client sends carousel:init.
func WithCarouselItems(n int) BridgeOption {
	return func(b *Bridge) {
		if n >= 1 {
			b.carouselItems = n
		}
	}
}

// Use appends middleware to the event dispatch chain. Middleware runs
// in the order given, outermost first.
func Use(mw ...Middleware) BridgeOption {
	return func(b *Bridge) {
		b.middleware = append(b.middleware, mw...)
	}
}
