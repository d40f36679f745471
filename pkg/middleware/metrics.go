package middleware

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/headless/pkg/bridge"
	"github.com/vango-dev/headless/pkg/toast"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "headless").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for event duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "headless",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// eventMetrics holds the per-event Prometheus collectors.
type eventMetrics struct {
	eventsTotal   *prometheus.CounterVec
	eventDuration *prometheus.HistogramVec
}

func newEventMetrics(config MetricsConfig) *eventMetrics {
	factory := promauto.With(config.Registry)

	return &eventMetrics{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "events_total",
			Help:        "Total number of bridge events processed",
			ConstLabels: config.ConstLabels,
		}, []string{"event", "status"}),

		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "event_duration_seconds",
			Help:        "Event processing duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"event"}),
	}
}

// Metrics creates middleware that records Prometheus metrics for every
// dispatched event:
//
//   - <ns>_events_total{event,status}: events by name and outcome
//   - <ns>_event_duration_seconds{event}: dispatch duration histogram
//
// Collectors register against the configured registry when Metrics is
// called, so call it once per registry.
func Metrics(opts ...MetricsOption) bridge.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	m := newEventMetrics(config)

	return func(next bridge.HandlerFunc) bridge.HandlerFunc {
		return func(ctx context.Context, s *bridge.Session, e bridge.Event) error {
			start := time.Now()

			err := next(ctx, s, e)

			m.eventDuration.WithLabelValues(e.Name).Observe(time.Since(start).Seconds())

			status := "success"
			if err != nil {
				status = "error"
			}
			m.eventsTotal.WithLabelValues(e.Name, status).Inc()

			return err
		}
	}
}

// InstrumentBridge registers an active-session gauge for the bridge.
func InstrumentBridge(reg prometheus.Registerer, b *bridge.Bridge) {
	promauto.With(reg).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "headless",
		Name:      "active_sessions",
		Help:      "Number of connected WebSocket sessions",
	}, func() float64 {
		return float64(b.ActiveSessions())
	})
}

// InstrumentStore registers a gauge for the number of queued toasts.
func InstrumentStore(reg prometheus.Registerer, store *toast.Store) {
	promauto.With(reg).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "headless",
		Name:      "toasts_active",
		Help:      "Number of toasts currently in the queue",
	}, func() float64 {
		return float64(len(store.Toasts()))
	})
}
