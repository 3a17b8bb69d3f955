// Package govern provides the call-governance layer for remote catalog
// operations.
//
// Every outbound call to the remote catalog API is routed through a single
// governed invocation point that composes three controls:
//
//   - Quota Limiter: a token bucket with a secondary fixed daily budget,
//     matching the per-second and per-day quotas imposed by the remote
//     provider.
//
//   - Circuit Breaker: stops calling a failing dependency for a cooldown
//     period, then allows a single recovery probe.
//
//   - Cache: previously computed results are returned without consulting
//     the limiter or breaker at all.
//
// # Usage
//
//	limiter := govern.NewQuotaLimiter(govern.QuotaLimiterConfig{
//	    MaxPerSecond: 0.9,
//	    MaxPerDay:    8000,
//	})
//	breaker := govern.NewCircuitBreaker(govern.CircuitBreakerConfig{
//	    FailureThreshold: 5,
//	    ResetTimeout:     time.Minute,
//	})
//	facade := govern.NewFacade(govern.FacadeConfig{
//	    Limiter: limiter,
//	    Breaker: breaker,
//	    Cache:   tiered,
//	})
//
//	result, err := facade.Execute(ctx, govern.Call{
//	    Op:        "SearchItems",
//	    Key:       fingerprint,
//	    Namespace: "search",
//	    TTL:       time.Hour,
//	}, callSearchItems)
//
// Failures crossing the facade boundary are classified: ErrQuotaExceeded and
// ErrDependencyUnavailable are local and mean "back off and retry later";
// a *RemoteError wraps the underlying cause of a failed remote call.
package govern
