package exporters

import (
	"context"
	"os"
	"strings"
	"testing"
)

// TestSpanExporter_InvalidName verifies unknown exporter names return errors.
func TestSpanExporter_InvalidName(t *testing.T) {
	_, err := NewSpanExporter(context.Background(), "jaeger")
	if err == nil {
		t.Fatal("expected error for unknown exporter name")
	}
	if !strings.Contains(strings.ToLower(err.Error()), "unknown span exporter") {
		t.Errorf("expected error to contain 'unknown span exporter', got: %v", err)
	}
}

// TestSpanExporter_Stdout verifies the stdout span exporter is created.
func TestSpanExporter_Stdout(t *testing.T) {
	exp, err := NewSpanExporter(context.Background(), "stdout")
	if err != nil {
		t.Fatalf("failed to create stdout span exporter: %v", err)
	}
	if exp == nil {
		t.Fatal("expected non-nil exporter")
	}
}

// TestSpanExporter_None verifies the discard exporter is created.
func TestSpanExporter_None(t *testing.T) {
	for _, name := range []string{"none", ""} {
		exp, err := NewSpanExporter(context.Background(), name)
		if err != nil {
			t.Fatalf("name %q: failed to create exporter: %v", name, err)
		}
		if exp == nil {
			t.Fatalf("name %q: expected non-nil exporter", name)
		}
	}
}

// TestSpanExporter_OtlpMissingEndpoint verifies OTLP without endpoint env fails.
func TestSpanExporter_OtlpMissingEndpoint(t *testing.T) {
	os.Unsetenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	os.Unsetenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT")

	_, err := NewSpanExporter(context.Background(), "otlp")
	if err == nil {
		t.Fatal("expected error when OTLP endpoint is not configured")
	}
}

// TestMetricReader_InvalidName verifies unknown reader names return errors.
func TestMetricReader_InvalidName(t *testing.T) {
	_, err := NewMetricReader(context.Background(), "statsd")
	if err == nil {
		t.Fatal("expected error for unknown metrics exporter name")
	}
}

// TestMetricReader_Stdout verifies the stdout metrics reader is created.
func TestMetricReader_Stdout(t *testing.T) {
	reader, err := NewMetricReader(context.Background(), "stdout")
	if err != nil {
		t.Fatalf("failed to create stdout metrics reader: %v", err)
	}
	if reader == nil {
		t.Fatal("expected non-nil reader")
	}
}

// TestMetricReader_Prometheus verifies the Prometheus reader is created.
func TestMetricReader_Prometheus(t *testing.T) {
	reader, err := NewMetricReader(context.Background(), "prometheus")
	if err != nil {
		t.Fatalf("failed to create prometheus reader: %v", err)
	}
	if reader == nil {
		t.Fatal("expected non-nil reader")
	}
}

// TestMetricReader_OtlpMissingEndpoint verifies OTLP metrics without endpoint env fails.
func TestMetricReader_OtlpMissingEndpoint(t *testing.T) {
	os.Unsetenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	os.Unsetenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT")

	_, err := NewMetricReader(context.Background(), "otlp")
	if err == nil {
		t.Fatal("expected error when OTLP metrics endpoint is not configured")
	}
}
