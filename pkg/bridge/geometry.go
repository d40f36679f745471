package bridge

import "sync"

// sessionGeometry implements carousel.Geometry over the most recent
// scroll and resize payloads from one client.
type sessionGeometry struct {
	mu sync.RWMutex

	top      float64
	height   float64
	offset   float64
	viewport float64

	// seen flips true on the first scroll payload that includes the
	// tracked element. Until then the element counts as missing.
	seen bool
}

func (g *sessionGeometry) BoundingBox() (float64, float64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.seen {
		return 0, 0, false
	}
	return g.top, g.height, true
}

func (g *sessionGeometry) ScrollOffset() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.offset
}

func (g *sessionGeometry) ViewportHeight() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.viewport
}

// applyScroll records a scroll payload. present is false when the
// client reports the tracked element is gone from the document.
func (g *sessionGeometry) applyScroll(top, height, offset float64, present bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seen = present
	if !present {
		return
	}
	g.top = top
	g.height = height
	g.offset = offset
}

// applyViewport records the viewport height from a resize payload.
func (g *sessionGeometry) applyViewport(h float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.viewport = h
}
