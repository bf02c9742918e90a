package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitTracerProvider_Disabled(t *testing.T) {
	shutdown, err := InitTracerProvider(false, "lcl-quote", "")
	require.NoError(t, err)
	assert.NotNil(t, otel.GetTextMapPropagator())
	shutdown(context.Background())
}

func TestInitTracerProvider_Enabled(t *testing.T) {
	shutdown, err := InitTracerProvider(true, "lcl-quote", "http://127.0.0.1:14268/api/traces")
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "span")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	shutdown(ctx)
}
