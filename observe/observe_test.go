package observe

import (
	"context"
	"errors"
	"testing"
)

// TestConfigValidate_Valid verifies that a fully valid config passes validation.
func TestConfigValidate_Valid(t *testing.T) {
	cfg := Config{
		ServiceName: "catalogops-test",
		Version:     "1.0.0",
		Tracing: TracingConfig{
			Enabled:   true,
			Exporter:  "stdout",
			SamplePct: 1.0,
		},
		Metrics: MetricsConfig{
			Enabled:  true,
			Exporter: "stdout",
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected nil error, got: %v", err)
	}
}

// TestConfigValidate_MissingServiceName verifies that empty ServiceName fails validation.
func TestConfigValidate_MissingServiceName(t *testing.T) {
	cfg := Config{Version: "1.0.0"}

	err := cfg.Validate()
	if !errors.Is(err, ErrMissingServiceName) {
		t.Errorf("expected ErrMissingServiceName, got: %v", err)
	}
}

// TestConfigValidate_UnknownTracingExporter verifies that unknown tracing exporters fail.
func TestConfigValidate_UnknownTracingExporter(t *testing.T) {
	cfg := Config{
		ServiceName: "catalogops-test",
		Tracing: TracingConfig{
			Enabled:  true,
			Exporter: "jaeger",
		},
	}

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidTracingExporter) {
		t.Errorf("expected ErrInvalidTracingExporter, got: %v", err)
	}
}

// TestConfigValidate_UnknownMetricsExporter verifies that unknown metrics exporters fail.
func TestConfigValidate_UnknownMetricsExporter(t *testing.T) {
	cfg := Config{
		ServiceName: "catalogops-test",
		Metrics: MetricsConfig{
			Enabled:  true,
			Exporter: "statsd",
		},
	}

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidMetricsExporter) {
		t.Errorf("expected ErrInvalidMetricsExporter, got: %v", err)
	}
}

// TestConfigValidate_SamplePctOutOfRange verifies sample percentage bounds.
func TestConfigValidate_SamplePctOutOfRange(t *testing.T) {
	for _, pct := range []float64{-0.1, 1.5} {
		cfg := Config{
			ServiceName: "catalogops-test",
			Tracing: TracingConfig{
				Enabled:   true,
				Exporter:  "none",
				SamplePct: pct,
			},
		}

		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidSamplePct) {
			t.Errorf("SamplePct=%f: expected ErrInvalidSamplePct, got: %v", pct, err)
		}
	}
}

// TestConfigValidate_UnknownLogLevel verifies that unknown log levels fail.
func TestConfigValidate_UnknownLogLevel(t *testing.T) {
	cfg := Config{
		ServiceName: "catalogops-test",
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "verbose",
		},
	}

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("expected ErrInvalidLogLevel, got: %v", err)
	}
}

// TestNewObserver_DisabledNoop verifies that everything disabled yields working noops.
func TestNewObserver_DisabledNoop(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{
		ServiceName: "catalogops-test",
	})
	if err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}

	if obs.Tracer() == nil {
		t.Error("expected non-nil tracer")
	}
	if obs.Meter() == nil {
		t.Error("expected non-nil meter")
	}
	if obs.Logger() == nil {
		t.Error("expected non-nil logger")
	}

	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("shutdown failed: %v", err)
	}
}

// TestNewObserver_ReturnsTracerAndMeter verifies providers are wired when enabled.
func TestNewObserver_ReturnsTracerAndMeter(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{
		ServiceName: "catalogops-test",
		Tracing: TracingConfig{
			Enabled:   true,
			Exporter:  "none",
			SamplePct: 1.0,
		},
		Metrics: MetricsConfig{
			Enabled:  true,
			Exporter: "none",
		},
	})
	if err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}
	defer obs.Shutdown(context.Background())

	if obs.Tracer() == nil {
		t.Error("expected non-nil tracer")
	}
	if obs.Meter() == nil {
		t.Error("expected non-nil meter")
	}
}

// TestNewObserver_InvalidConfigReturnsError verifies validation runs at construction.
func TestNewObserver_InvalidConfigReturnsError(t *testing.T) {
	_, err := NewObserver(context.Background(), Config{})
	if err == nil {
		t.Fatal("expected error for invalid config, got nil")
	}
}

// TestObserver_ShutdownIdempotent verifies Shutdown can run more than once.
func TestObserver_ShutdownIdempotent(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{
		ServiceName: "catalogops-test",
		Tracing: TracingConfig{
			Enabled:   true,
			Exporter:  "none",
			SamplePct: 0.5,
		},
	})
	if err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}

	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("first shutdown failed: %v", err)
	}
	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("second shutdown failed: %v", err)
	}
}
