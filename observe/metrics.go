package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records telemetry for governed catalog calls.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordCall records one governed call with its duration and failure
	// kind; kind is empty on success.
	RecordCall(ctx context.Context, meta CallMeta, duration time.Duration, kind string)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	totalCount   metric.Int64Counter
	errorCount   metric.Int64Counter
	durationHist metric.Float64Histogram
}

// NewMetrics creates a Metrics instance on the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	totalCount, err := meter.Int64Counter(
		"catalog.calls.total",
		metric.WithDescription("Total number of governed catalog calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"catalog.calls.errors",
		metric.WithDescription("Governed catalog calls that failed, by kind"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"catalog.call.duration_ms",
		metric.WithDescription("Governed catalog call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		totalCount:   totalCount,
		errorCount:   errorCount,
		durationHist: durationHist,
	}, nil
}

// RecordCall records metrics for one governed call.
func (m *metricsImpl) RecordCall(ctx context.Context, meta CallMeta, duration time.Duration, kind string) {
	attrs := []attribute.KeyValue{
		attribute.String("call.op", meta.Op),
	}
	if meta.Namespace != "" {
		attrs = append(attrs, attribute.String("call.namespace", meta.Namespace))
	}
	opt := metric.WithAttributes(attrs...)

	m.totalCount.Add(ctx, 1, opt)

	if kind != "" {
		m.errorCount.Add(ctx, 1, metric.WithAttributes(
			append(attrs, attribute.String("error.kind", kind))...,
		))
	}

	m.durationHist.Record(ctx, float64(duration.Milliseconds()), opt)
}

// NewBreakerTransitionCounter returns a hook suitable for a circuit
// breaker's OnStateChange callback. Each transition increments
// catalog.breaker.transitions labeled with the dependency and both states.
func NewBreakerTransitionCounter(meter metric.Meter, dependency string) (func(from, to string), error) {
	counter, err := meter.Int64Counter(
		"catalog.breaker.transitions",
		metric.WithDescription("Circuit breaker state transitions"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, err
	}

	return func(from, to string) {
		counter.Add(context.Background(), 1, metric.WithAttributes(
			attribute.String("call.dependency", dependency),
			attribute.String("from", from),
			attribute.String("to", to),
		))
	}, nil
}

// RegisterQuotaGauges registers observable gauges sourced from a limiter
// snapshot callback: catalog.quota.tokens and catalog.quota.daily_used.
func RegisterQuotaGauges(meter metric.Meter, dependency string, snapshot func() (tokens float64, dailyUsed int64)) error {
	tokensGauge, err := meter.Float64ObservableGauge(
		"catalog.quota.tokens",
		metric.WithDescription("Rate-limit tokens currently available"),
	)
	if err != nil {
		return err
	}

	dailyGauge, err := meter.Int64ObservableGauge(
		"catalog.quota.daily_used",
		metric.WithDescription("Calls consumed from the daily budget"),
	)
	if err != nil {
		return err
	}

	attrs := metric.WithAttributes(attribute.String("call.dependency", dependency))
	_, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		tokens, daily := snapshot()
		o.ObserveFloat64(tokensGauge, tokens, attrs)
		o.ObserveInt64(dailyGauge, daily, attrs)
		return nil
	}, tokensGauge, dailyGauge)
	return err
}

// CacheCounters holds the effectiveness counters for one cache namespace.
type CacheCounters struct {
	Hits   uint64
	Misses uint64
}

// RegisterCacheGauges registers observable gauges sourced from a cache
// stats callback: catalog.cache.hits and catalog.cache.misses, labeled per
// namespace.
func RegisterCacheGauges(meter metric.Meter, snapshot func() map[string]CacheCounters) error {
	hitsGauge, err := meter.Int64ObservableGauge(
		"catalog.cache.hits",
		metric.WithDescription("Cache hits per namespace"),
	)
	if err != nil {
		return err
	}

	missesGauge, err := meter.Int64ObservableGauge(
		"catalog.cache.misses",
		metric.WithDescription("Cache misses per namespace"),
	)
	if err != nil {
		return err
	}

	_, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		for namespace, counters := range snapshot() {
			attrs := metric.WithAttributes(attribute.String("call.namespace", namespace))
			o.ObserveInt64(hitsGauge, int64(counters.Hits), attrs)
			o.ObserveInt64(missesGauge, int64(counters.Misses), attrs)
		}
		return nil
	}, hitsGauge, missesGauge)
	return err
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

// NewNoopMetrics creates a no-op Metrics.
func NewNoopMetrics() Metrics {
	return &noopMetrics{}
}

func (m *noopMetrics) RecordCall(context.Context, CallMeta, time.Duration, string) {}
