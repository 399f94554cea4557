package telemetry_test

import (
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// installProvider sets tp as the global provider and returns a function restoring the previous one.
func installProvider(t *testing.T, tp trace.TracerProvider) func() {
	t.Helper()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	return func() { otel.SetTracerProvider(prev) }
}
