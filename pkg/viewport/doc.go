// Package viewport classifies the client viewport against a width
// breakpoint, with trailing-edge debounce over resize bursts.
//
//	flag := viewport.NewFlag(measure)
//	// on every resize / media-query notification:
//	flag.OnChange()
//	// after the debounce interval the flag settles:
//	flag.Mobile()
//
// The measurement function abstracts the width source. Returning
// ok=false models an environment without a window (server-side
// rendering); the flag then stays at its false default and nothing
// panics.
//
// Debounce is trailing-edge: a burst of OnChange calls produces exactly
// one measurement, taken when the quiet period ends, so intermediate
// widths never publish intermediate states.
package viewport
