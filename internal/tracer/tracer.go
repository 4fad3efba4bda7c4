// Package tracer wraps OpenTelemetry tracing behind a small API: span
// creation, error recording, attributes, and carrier helpers for propagating
// trace context through the job queue.
package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	traceSpan "go.opentelemetry.io/otel/trace"

	"github.com/stylelens/stylelens/internal/logger"
)

// Tracer wraps the OpenTelemetry TracerProvider.
type Tracer struct {
	provider *trace.TracerProvider
	log      logger.Logger
}

// NewClient builds the tracer provider, wires the OTLP HTTP exporter when
// export is enabled, and installs the global propagator.
func NewClient(cfg Config, log logger.Logger) (*Tracer, error) {
	var options []trace.TracerProviderOption

	if cfg.EnableExport {
		exporter, err := otlptrace.New(context.Background(), otlptracehttp.NewClient())
		if err != nil {
			return nil, fmt.Errorf("tracer: create exporter: %w", err)
		}
		options = append(options, trace.WithBatcher(exporter))
	}

	options = append(options, trace.WithResource(resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.DeploymentEnvironment(cfg.AppEnv),
		attribute.String("environment", cfg.AppEnv),
	)))

	tp := trace.NewTracerProvider(options...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	return &Tracer{provider: tp, log: log}, nil
}

// StartSpan creates a span named after the operation. The span must be ended
// by the caller.
func (t *Tracer) StartSpan(ctx context.Context, name string) (context.Context, traceSpan.Span) {
	return t.provider.Tracer("").Start(ctx, name)
}

// RecordErrorOnSpan records the error and marks the span failed.
func (t *Tracer) RecordErrorOnSpan(span traceSpan.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetAttributes attaches the attributes to the span, mapping Go types to the
// matching attribute kinds.
func (t *Tracer) SetAttributes(span traceSpan.Span, attrs map[string]interface{}) {
	if len(attrs) == 0 {
		return
	}

	attributes := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		switch val := v.(type) {
		case string:
			attributes = append(attributes, attribute.String(k, val))
		case int:
			attributes = append(attributes, attribute.Int(k, val))
		case int64:
			attributes = append(attributes, attribute.Int64(k, val))
		case float64:
			attributes = append(attributes, attribute.Float64(k, val))
		case bool:
			attributes = append(attributes, attribute.Bool(k, val))
		default:
			attributes = append(attributes, attribute.String(k, fmt.Sprint(val)))
		}
	}
	span.SetAttributes(attributes...)
}

// GetCarrier extracts the W3C trace context from ctx as a map suitable for
// message headers.
func (t *Tracer) GetCarrier(ctx context.Context) map[string]string {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	return carrier
}

// SetCarrierOnContext rebuilds a traced context from message headers.
func (t *Tracer) SetCarrierOnContext(ctx context.Context, carrier map[string]string) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(carrier))
}
