package observe

import (
	"context"
	"fmt"
	"time"

	"github.com/vango-dev/reactor/pkg/reactive"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name.
const defaultTracerName = "reactor"

// OTelConfig configures the OpenTelemetry observer.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "reactor").
	TracerName string

	// Filter determines which events to trace.
	// Return true to trace the event, false to skip.
	// If nil, flushes, resource loads and action completions are traced.
	Filter func(e reactive.Event) bool

	// Context is the parent context of every span.
	Context context.Context

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry observer.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithEventFilter sets a filter function for events.
func WithEventFilter(filter func(e reactive.Event) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithParentContext sets the parent context of every span.
func WithParentContext(ctx context.Context) OTelOption {
	return func(c *OTelConfig) {
		c.Context = ctx
	}
}

// WithTracer uses t instead of a tracer from the global provider.
func WithTracer(t trace.Tracer) OTelOption {
	return func(c *OTelConfig) {
		c.tracer = t
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
		Context:    context.Background(),
	}
}

func defaultFilter(e reactive.Event) bool {
	switch e.Kind {
	case reactive.EventFlush, reactive.EventCycle,
		reactive.EventResourceLoad, reactive.EventResourceDiscard,
		reactive.EventActionComplete:
		return true
	default:
		return false
	}
}

// Tracer is an observer recording runtime events as spans.
type Tracer struct {
	config OTelConfig
}

// OpenTelemetry creates an observer that records one span per traced event.
// Spans carry the event's own start and end timestamps, so a resource load
// span covers the time the loader ran.
//
// The tracer uses the global OpenTelemetry tracer provider unless WithTracer
// is given. Configure the provider in main() before creating the runtime:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) *Tracer {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.tracer == nil {
		config.tracer = otel.Tracer(config.TracerName)
	}
	if config.Filter == nil {
		config.Filter = defaultFilter
	}
	return &Tracer{config: config}
}

// Observe implements reactive.Observer.
func (t *Tracer) Observe(e reactive.Event) {
	if !t.config.Filter(e) {
		return
	}

	start, end := e.Start, e.End
	if start.IsZero() {
		start = time.Now()
	}
	if end.IsZero() {
		end = start
	}

	attrs := []attribute.KeyValue{
		attribute.String("reactor.event", e.Kind.String()),
	}
	if !e.Node.IsZero() {
		attrs = append(attrs, attribute.String("reactor.node", e.Node.String()))
	}
	if e.Scope != 0 {
		attrs = append(attrs, attribute.Int64("reactor.scope", int64(e.Scope)))
	}
	if e.Label != "" {
		attrs = append(attrs, attribute.String("reactor.label", e.Label))
	}
	if e.Generation != 0 {
		attrs = append(attrs, attribute.Int64("reactor.generation", int64(e.Generation)))
	}
	if e.Kind == reactive.EventFlush || e.Kind == reactive.EventCycle {
		attrs = append(attrs,
			attribute.Int("reactor.passes", e.Passes),
			attribute.Int("reactor.effects", e.Effects),
		)
	}

	_, span := t.config.tracer.Start(
		t.config.Context,
		spanName(e),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
		trace.WithTimestamp(start),
	)
	if e.Err != nil {
		span.RecordError(e.Err)
		span.SetStatus(codes.Error, e.Err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(end))
}

// spanName creates a span name from the event.
func spanName(e reactive.Event) string {
	if e.Label != "" {
		return fmt.Sprintf("reactor.%s %s", e.Kind, e.Label)
	}
	return fmt.Sprintf("reactor.%s", e.Kind)
}
