// Package reactive provides the minimal reactive core shared by the
// headless state primitives.
//
// Signal[T] is a thread-safe value container that notifies subscribers
// when its value changes:
//
//	mobile := reactive.NewSignal(false)
//	mobile.Get()      // read
//	mobile.Set(true)  // write, notifies subscribers if changed
//
// Observe attaches a push-style subscriber that receives every new value:
//
//	stop := reactive.Observe(mobile, func(v bool) {
//	    session.Send(viewportFrame(v))
//	})
//	defer stop()
//
// Unlike a full component framework there is no automatic dependency
// tracking here: subscriptions are explicit. That keeps the core small
// enough to reason about and is all the headless primitives need.
package reactive
