// Package bridge carries browser-level events to the headless state
// primitives over a WebSocket, and pushes derived state back.
//
// The browser owns the DOM; the state machines live here. A thin client
// forwards scroll, resize, and media-query notifications as JSON event
// frames; each Session feeds them into its carousel tracker and
// viewport flag, and relays the application-wide toast queue. Whenever
// derived state changes, the session pushes a frame so the client can
// render it.
//
// Inbound frames:
//
//	{"type":"event","name":"scroll","data":{"top":-800,"height":4000,"offset":1200}}
//	{"type":"event","name":"resize","data":{"width":720,"viewport":900}}
//	{"type":"event","name":"media","data":{"width":720}}
//	{"type":"event","name":"carousel:init","data":{"items":5}}
//	{"type":"event","name":"toast:dismiss","data":{"id":"..."}}
//
// Outbound frames carry toast snapshots, carousel state, and the
// viewport flag.
//
// Event dispatch runs through a middleware chain (see the middleware
// package for Prometheus and OpenTelemetry instrumentation).
package bridge
