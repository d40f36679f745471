package carousel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/headless/pkg/carousel"
	"github.com/vango-dev/headless/pkg/reactive"
)

// geo builds geometry for a 5-item carousel in a 1000px viewport,
// scrolled so that `scrolled` pixels of the virtual region are behind.
func geo(scrolled float64) carousel.FixedGeometry {
	return carousel.FixedGeometry{
		Top:      -scrolled,
		Height:   5000,
		Offset:   2000 + scrolled,
		Viewport: 1000,
	}
}

func TestComputeInitialPosition(t *testing.T) {
	// Element still below the viewport top: top positive.
	st := carousel.Compute(carousel.FixedGeometry{Top: 400, Height: 5000, Viewport: 1000}, 5)

	assert.False(t, st.Sticky)
	assert.False(t, st.ScrolledThrough)
	assert.Equal(t, 0.0, st.Progress)
	assert.Equal(t, 0, st.ActiveIndex)
	assert.Equal(t, 5000.0, st.TotalScrollHeight)
}

func TestComputeProgression(t *testing.T) {
	tests := []struct {
		name      string
		scrolled  float64
		progress  float64
		index     int
		sticky    bool
		through   bool
	}{
		{"pinned at top", 0, 0, 0, true, false},
		{"first bucket", 500, 0.1, 0, true, false},
		{"second bucket", 1200, 0.24, 1, true, false},
		{"middle", 2500, 0.5, 2, true, false},
		{"fifth bucket", 4200, 0.84, 4, true, false},
		{"near complete", 4950, 0.99, 4, true, true},
		{"fully past", 5000, 1, 4, false, true},
		{"beyond clamps", 7000, 1, 4, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := carousel.Compute(geo(tt.scrolled), 5)

			assert.InDelta(t, tt.progress, st.Progress, 1e-9)
			assert.Equal(t, tt.index, st.ActiveIndex)
			assert.Equal(t, tt.sticky, st.Sticky)
			assert.Equal(t, tt.through, st.ScrolledThrough)
		})
	}
}

func TestActiveIndexClampedAtBoundary(t *testing.T) {
	// progress 0.99 * 5 = 4.95 floors to 4, the last valid index.
	st := carousel.Compute(geo(4950), 5)

	assert.InDelta(t, 0.99, st.Progress, 1e-9)
	assert.Equal(t, 4, st.ActiveIndex)
}

func TestComputeReversible(t *testing.T) {
	initial := carousel.Compute(carousel.FixedGeometry{Top: 400, Height: 5000, Viewport: 1000}, 5)

	deep := carousel.Compute(geo(4800), 5)
	require.True(t, deep.Sticky)
	require.Equal(t, 4, deep.ActiveIndex)

	// Back at the original position, state is exactly the initial one.
	back := carousel.Compute(carousel.FixedGeometry{Top: 400, Height: 5000, Viewport: 1000}, 5)
	assert.Equal(t, initial, back)
	assert.False(t, back.Sticky)
	assert.Equal(t, 0.0, back.Progress)
	assert.Equal(t, 0, back.ActiveIndex)
	assert.False(t, back.ScrolledThrough)
}

func TestComputeMissingElement(t *testing.T) {
	st := carousel.Compute(carousel.FixedGeometry{Missing: true}, 5)
	assert.Equal(t, carousel.State{}, st)
}

func TestComputeNilGeometry(t *testing.T) {
	assert.NotPanics(t, func() {
		st := carousel.Compute(nil, 5)
		assert.Equal(t, carousel.State{}, st)
	})
}

func TestComputeDegenerateInputs(t *testing.T) {
	assert.Equal(t, carousel.State{}, carousel.Compute(geo(100), 0))
	assert.Equal(t, carousel.State{}, carousel.Compute(geo(100), -3))

	// Zero viewport height means no virtual region to scroll.
	st := carousel.Compute(carousel.FixedGeometry{Top: -100, Height: 5000}, 5)
	assert.Equal(t, carousel.State{}, st)
}

func TestSingleItem(t *testing.T) {
	g := carousel.FixedGeometry{Top: -500, Height: 1000, Viewport: 1000}
	st := carousel.Compute(g, 1)

	assert.InDelta(t, 0.5, st.Progress, 1e-9)
	assert.Equal(t, 0, st.ActiveIndex)
	assert.True(t, st.Sticky)
}

type liveGeometry struct {
	state carousel.FixedGeometry
}

func (g *liveGeometry) BoundingBox() (float64, float64, bool) { return g.state.BoundingBox() }
func (g *liveGeometry) ScrollOffset() float64                 { return g.state.ScrollOffset() }
func (g *liveGeometry) ViewportHeight() float64               { return g.state.ViewportHeight() }

func TestTrackerPublishesOnScroll(t *testing.T) {
	live := &liveGeometry{state: geo(0)}
	tracker := carousel.NewTracker(live, 5)

	var published []carousel.State
	stop := reactive.Observe(tracker.Signal(), func(st carousel.State) {
		published = append(published, st)
	})
	defer stop()

	live.state = geo(2500)
	tracker.OnScroll()

	require.Len(t, published, 1)
	assert.Equal(t, 2, published[0].ActiveIndex)
	assert.Equal(t, published[0], tracker.State())
}

func TestTrackerSuppressesUnchangedState(t *testing.T) {
	live := &liveGeometry{state: geo(2500)}
	tracker := carousel.NewTracker(live, 5)
	tracker.OnScroll()

	count := 0
	stop := reactive.Observe(tracker.Signal(), func(carousel.State) { count++ })
	defer stop()

	// Same geometry, same derived state: no notification.
	tracker.OnScroll()
	assert.Equal(t, 0, count)

	live.state = geo(2501)
	tracker.OnScroll()
	assert.Equal(t, 1, count)
}

func TestTrackerMissingElementSafe(t *testing.T) {
	live := &liveGeometry{state: carousel.FixedGeometry{Missing: true}}
	tracker := carousel.NewTracker(live, 5)

	assert.NotPanics(t, func() { tracker.OnScroll() })
	assert.Equal(t, carousel.State{}, tracker.State())
}
