package observe

import (
	"context"
	"time"
)

// ExecuteFunc is the governed-call shape the middleware wraps.
type ExecuteFunc func(ctx context.Context) ([]byte, error)

// Middleware instruments governed calls with tracing, metrics, and
// logging. The kind classifier maps an error to a short stable label
// (for example "quota_exceeded") so the observe layer stays decoupled
// from the governance error types.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
	kindOf  func(error) string
}

// MiddlewareConfig configures a Middleware. Nil components default to
// no-op implementations; a nil KindOf labels every failure "unknown".
type MiddlewareConfig struct {
	Tracer  Tracer
	Metrics Metrics
	Logger  Logger
	KindOf  func(error) string
}

// NewMiddleware creates a Middleware from the config.
func NewMiddleware(config MiddlewareConfig) *Middleware {
	if config.Tracer == nil {
		config.Tracer = NewNoopTracer()
	}
	if config.Metrics == nil {
		config.Metrics = NewNoopMetrics()
	}
	if config.Logger == nil {
		config.Logger = NewNoopLogger()
	}
	if config.KindOf == nil {
		config.KindOf = func(error) string { return "unknown" }
	}
	return &Middleware{
		tracer:  config.Tracer,
		metrics: config.Metrics,
		logger:  config.Logger,
		kindOf:  config.KindOf,
	}
}

// Wrap executes fn inside a span, records call metrics, and logs the
// outcome. The returned payload and error are fn's, untouched.
func (m *Middleware) Wrap(ctx context.Context, meta CallMeta, fn ExecuteFunc) ([]byte, error) {
	ctx, span := m.tracer.StartSpan(ctx, meta)
	start := time.Now()

	payload, err := fn(ctx)

	duration := time.Since(start)
	kind := ""
	if err != nil {
		kind = m.kindOf(err)
	}
	m.metrics.RecordCall(ctx, meta, duration, kind)
	m.tracer.EndSpan(span, err)

	logger := m.logger.WithCall(meta)
	if err != nil {
		logger.Warn(ctx, "governed call failed",
			Field{Key: "error", Value: err.Error()},
			Field{Key: "error_kind", Value: kind},
			Field{Key: "duration_ms", Value: duration.Milliseconds()},
		)
		return nil, err
	}

	logger.Debug(ctx, "governed call completed",
		Field{Key: "duration_ms", Value: duration.Milliseconds()},
		Field{Key: "bytes", Value: len(payload)},
	)
	return payload, nil
}
