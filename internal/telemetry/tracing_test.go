package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/forgo/clubhub/api/internal/config"
)

func TestSetup_DisabledKeepsGlobalProvider(t *testing.T) {
	before := otel.GetTracerProvider()

	tp, shutdown, err := Setup(context.Background(), config.TracingConfig{})
	require.NoError(t, err)

	assert.Equal(t, before, tp)
	assert.Equal(t, before, otel.GetTracerProvider())
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewTracerProvider_TagsServiceName(t *testing.T) {
	t.Parallel()

	sr := tracetest.NewSpanRecorder()
	tp := NewTracerProvider(
		config.TracingConfig{ServiceName: "clubhub-test", SampleRatio: 1},
		sdktrace.WithSpanProcessor(sr),
	)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(context.Background(), "GET /clubs")
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)

	var service string
	for _, kv := range spans[0].Resource().Attributes() {
		if kv.Key == attribute.Key("service.name") {
			service = kv.Value.AsString()
		}
	}
	assert.Equal(t, "clubhub-test", service)
}

func TestNewTracerProvider_SampleRatioZeroDropsRoots(t *testing.T) {
	t.Parallel()

	sr := tracetest.NewSpanRecorder()
	tp := NewTracerProvider(
		config.TracingConfig{ServiceName: "clubhub-test", SampleRatio: 0},
		sdktrace.WithSpanProcessor(sr),
	)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(context.Background(), "GET /clubs")
	span.End()

	assert.False(t, span.SpanContext().IsSampled())
	assert.Empty(t, sr.Ended())
}
