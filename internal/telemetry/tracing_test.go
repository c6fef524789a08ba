package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/GaborIreHun/flightmanager/config"
)

func TestInitTracing_RecordsSpansWithoutExporter(t *testing.T) {
	ctx := context.Background()
	shutdown, err := InitTracing(ctx, config.TelemetryConfig{SampleRatio: 1}, "flightmanager-test", "test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	require.True(t, ok)

	_, span := otel.Tracer("test").Start(ctx, "op")
	defer span.End()
	assert.True(t, span.SpanContext().IsValid())
	assert.True(t, span.SpanContext().IsSampled())
}

func TestInitTracing_PropagatesTraceContext(t *testing.T) {
	ctx := context.Background()
	shutdown, err := InitTracing(ctx, config.TelemetryConfig{SampleRatio: 1}, "flightmanager-test", "test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	spanCtx, span := otel.Tracer("test").Start(ctx, "op")
	defer span.End()

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(spanCtx, carrier)
	assert.Contains(t, carrier.Get("traceparent"), span.SpanContext().TraceID().String())
}

func TestInitTracing_ZeroRatioDropsSpans(t *testing.T) {
	ctx := context.Background()
	shutdown, err := InitTracing(ctx, config.TelemetryConfig{SampleRatio: 0}, "flightmanager-test", "test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	_, span := otel.Tracer("test").Start(ctx, "op")
	defer span.End()
	assert.False(t, span.SpanContext().IsSampled())
}
