//go:build unit
// +build unit

package tracing

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/hubverse/hub-services/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

func TestInit_DisabledInstallsPropagatorOnly(t *testing.T) {
	shutdown, err := Init(context.Background(), &config.TracingSettings{}, "community", "0.1.0", "test")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))

	carrier := propagation.HeaderCarrier(http.Header{})
	carrier.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	ctx := otel.GetTextMapPropagator().Extract(context.Background(), carrier)

	out := propagation.HeaderCarrier(http.Header{})
	otel.GetTextMapPropagator().Inject(ctx, out)
	assert.Equal(t, "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01", out.Get("traceparent"))
}

func TestInit_EnabledShutsDownWithoutCollector(t *testing.T) {
	settings := &config.TracingSettings{Endpoint: "127.0.0.1:4317", SampleRatio: 1}
	shutdown, err := Init(context.Background(), settings, "community", "0.1.0", "test")
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "op")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	// The export may fail against a closed port; shutdown must still return.
	_ = shutdown(ctx)
}
