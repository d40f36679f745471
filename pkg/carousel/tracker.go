package carousel

import "github.com/vango-dev/headless/pkg/reactive"

// Tracker recomputes carousel state from a live geometry source and
// publishes it through a signal.
//
// Wire OnScroll to whatever delivers scroll notifications; every call
// reads the geometry fresh and publishes the derived state. Subscribers
// are only notified when the state actually changed, so a stream of
// scroll events inside the same item bucket is cheap.
type Tracker struct {
	geo       Geometry
	itemCount int
	state     *reactive.Signal[State]
}

// NewTracker creates a tracker over the given geometry source.
func NewTracker(geo Geometry, itemCount int) *Tracker {
	return &Tracker{
		geo:       geo,
		itemCount: itemCount,
		state:     reactive.NewSignal(State{}),
	}
}

// OnScroll recomputes and publishes the state. Safe to call with a
// missing element; the state falls back to the zero value.
func (t *Tracker) OnScroll() {
	t.state.Set(Compute(t.geo, t.itemCount))
}

// State returns the most recently published state.
func (t *Tracker) State() State {
	return t.state.Get()
}

// Signal exposes the underlying signal for reactive consumption.
func (t *Tracker) Signal() *reactive.Signal[State] {
	return t.state
}

// ItemCount returns the number of carousel items.
func (t *Tracker) ItemCount() int {
	return t.itemCount
}
