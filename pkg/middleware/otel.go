package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/headless/pkg/bridge"
)

// defaultTracerName is the tracer used when none is configured.
const defaultTracerName = "headless"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "headless").
	TracerName string

	// Filter determines which events to trace. Return true to trace
	// the event. If nil, all events are traced.
	Filter func(e bridge.Event) bool

	// AttributeExtractor adds custom attributes per event.
	AttributeExtractor func(s *bridge.Session, e bridge.Event) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithEventFilter sets a filter function for events.
func WithEventFilter(filter func(e bridge.Event) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(fn func(s *bridge.Session, e bridge.Event) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = fn
	}
}

// OpenTelemetry creates middleware that wraps every dispatched event in
// a trace span named headless.<event>, carrying the event name and
// session id, and recording handler errors.
//
// The tracer comes from the global OpenTelemetry tracer provider;
// configure the provider in main() before serving.
func OpenTelemetry(opts ...OTelOption) bridge.Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	return func(next bridge.HandlerFunc) bridge.HandlerFunc {
		return func(ctx context.Context, s *bridge.Session, e bridge.Event) error {
			if config.Filter != nil && !config.Filter(e) {
				return next(ctx, s, e)
			}

			attrs := []attribute.KeyValue{
				attribute.String("headless.event", e.Name),
				attribute.String("headless.session_id", s.ID()),
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(s, e)...)
			}

			ctx, span := config.tracer.Start(ctx, "headless."+e.Name,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			err := next(ctx, s, e)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			} else {
				span.SetStatus(codes.Ok, "")
			}

			return err
		}
	}
}
