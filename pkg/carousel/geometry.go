package carousel

// Geometry is the source of the tracked element's bounding box and the
// viewport's scroll metrics. It is read fresh on every recomputation,
// never cached.
type Geometry interface {
	// BoundingBox returns the element's top offset relative to the
	// viewport and its height. ok is false when there is no tracked
	// element, in which case no other method is called.
	BoundingBox() (top, height float64, ok bool)

	// ScrollOffset returns the global vertical scroll position.
	ScrollOffset() float64

	// ViewportHeight returns the height of the visual viewport.
	ViewportHeight() float64
}

// FixedGeometry is a Geometry backed by plain values. Useful in tests
// and wherever geometry arrives as a snapshot rather than a live source.
type FixedGeometry struct {
	Top      float64
	Height   float64
	Offset   float64
	Viewport float64

	// Missing marks the tracked element as absent.
	Missing bool
}

func (g FixedGeometry) BoundingBox() (float64, float64, bool) {
	if g.Missing {
		return 0, 0, false
	}
	return g.Top, g.Height, true
}

func (g FixedGeometry) ScrollOffset() float64 { return g.Offset }

func (g FixedGeometry) ViewportHeight() float64 { return g.Viewport }
