// Package middleware provides instrumentation for bridge event
// dispatch.
//
// Metrics collects Prometheus metrics for every dispatched event;
// OpenTelemetry wraps each event in a trace span. Both compose through
// bridge.Use:
//
//	b := bridge.New(
//	    bridge.Use(
//	        middleware.OpenTelemetry(),
//	        middleware.Metrics(middleware.WithNamespace("portfolio")),
//	    ),
//	)
//	middleware.InstrumentBridge(prometheus.DefaultRegisterer, b)
//	middleware.InstrumentStore(prometheus.DefaultRegisterer, b.Store())
//
// Expose the scrape endpoint with promhttp alongside the bridge router.
package middleware
