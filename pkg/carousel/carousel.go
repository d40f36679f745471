package carousel

import "math"

// scrolledThroughAt is the progress fraction past which the region
// counts as fully scrolled through.
const scrolledThroughAt = 0.95

// State is the derived carousel position. The zero value is the state
// before any scrolling, and the state whenever the element is missing.
type State struct {
	// Sticky reports whether the element is currently pinned: its top
	// has reached the viewport top and its virtual region has not yet
	// scrolled past.
	Sticky bool `json:"sticky"`

	// ScrolledThrough becomes true once Progress passes the
	// near-complete threshold. Scrolling back up clears it again.
	ScrolledThrough bool `json:"scrolledThrough"`

	// Progress is the scroll fraction through the virtual region,
	// clamped to [0,1].
	Progress float64 `json:"progress"`

	// ActiveIndex is the item selected by Progress, always in
	// [0, itemCount-1].
	ActiveIndex int `json:"activeIndex"`

	// TotalScrollHeight is the virtual region height: itemCount
	// viewports.
	TotalScrollHeight float64 `json:"totalScrollHeight"`
}

// Compute derives carousel state from the current geometry. It is a
// pure function: equal inputs give equal outputs, so scrolling back to
// the original position restores the initial state exactly.
//
// A missing element or a non-positive itemCount yields the zero State.
func Compute(g Geometry, itemCount int) State {
	if g == nil || itemCount <= 0 {
		return State{}
	}

	top, _, ok := g.BoundingBox()
	if !ok {
		return State{}
	}

	total := float64(itemCount) * g.ViewportHeight()
	if total <= 0 {
		return State{}
	}

	// Distance scrolled past the element's original top. Negative
	// while the element is still below the viewport top.
	scrolled := -top

	progress := clamp01(scrolled / total)

	index := int(math.Floor(progress * float64(itemCount)))
	if index > itemCount-1 {
		index = itemCount - 1
	}
	if index < 0 {
		index = 0
	}

	// The pinned region ends once the whole virtual height has
	// scrolled past.
	sticky := top <= 0 && top+total > 0

	return State{
		Sticky:            sticky,
		ScrolledThrough:   progress >= scrolledThroughAt,
		Progress:          progress,
		ActiveIndex:       index,
		TotalScrollHeight: total,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
