// Package health reports the operational state of the governance layer.
//
// The governed catalog client has three components whose state matters to
// operators: the daily quota budget, the circuit breaker guarding the
// remote API, and the cache tiers. This package defines a small checker
// framework, domain checkers for those components, and HTTP handlers for
// liveness and readiness probes.
//
// # Checkers
//
// A Checker reports a Status of Healthy, Degraded, or Unhealthy together
// with a message and optional details. Domain checkers are constructed
// from callbacks so the package stays decoupled from the governance types:
//
//	quotaCheck := health.NewQuotaChecker(health.QuotaCheckerConfig{}, func() (used, limit int64) {
//	    snap := limiter.Snapshot()
//	    return snap.DailyUsed, int64(snap.DailyLimit)
//	})
//
// # Aggregation
//
// An Aggregator runs registered checkers, optionally in parallel, and
// folds their results into a single overall status. Any unhealthy check
// makes the whole aggregate unhealthy; any degraded check short of that
// makes it degraded.
//
//	agg := health.NewAggregator(health.AggregatorConfig{})
//	agg.Register("quota", quotaCheck)
//	agg.Register("breaker", breakerCheck)
//	results := agg.CheckAll(ctx)
//
// # HTTP Endpoints
//
//	mux := http.NewServeMux()
//	health.RegisterHandlers(mux, agg)
//
// registers /healthz (liveness), /readyz (readiness), and /health
// (detailed JSON) on the mux.
package health
