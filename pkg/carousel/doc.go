// Package carousel derives scroll-driven carousel state from element
// geometry.
//
// The pattern: a section is pinned ("sticky") while the user scrolls
// through a virtual region N viewports tall, and the scroll fraction
// through that region selects which of the N items is active.
//
// The algorithm is a pure function of the current geometry:
//
//	state := carousel.Compute(geo, 5)
//	// state.ActiveIndex, state.Progress, state.Sticky, ...
//
// Geometry abstracts where the numbers come from. In production it is
// fed by scroll events from the client; in tests it is a struct literal.
// Tracker wraps Compute with a reactive signal so consumers can observe
// changes instead of polling.
//
// Because state is recomputed from scratch on every scroll notification,
// scrolling back up reverses everything: there is no hysteresis and no
// accumulated state.
package carousel
