package govern

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is the subset of the tiered cache consumed by the facade.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: Get never errors; it returns (nil, false) on miss. Set failures
//   are tier-internal and must not depend on the remote call outcome.
type Cache interface {
	Get(ctx context.Context, namespace, key string) ([]byte, bool)
	Set(ctx context.Context, namespace, key string, value []byte, ttl time.Duration) error
}

// RemoteFunc performs the actual remote call. It must bound its own
// execution time; the facade enforces no timeout.
type RemoteFunc func(ctx context.Context) ([]byte, error)

// Call describes one governed remote invocation.
type Call struct {
	// Op is the remote operation name, used in error messages and telemetry.
	Op string

	// Key is the logical cache key. Identical logical requests must produce
	// identical keys (see the cache package's fingerprint helpers).
	Key string

	// Namespace groups cache entries by operation family.
	Namespace string

	// TTL is the cache lifetime for a fresh result. Zero applies the cache
	// policy's namespace default.
	TTL time.Duration
}

// FacadeConfig configures the governed call facade.
type FacadeConfig struct {
	// Limiter admits calls within the provider quota. Required.
	Limiter *QuotaLimiter

	// Breaker isolates the remote dependency. Required.
	Breaker *CircuitBreaker

	// Cache stores results of successful calls. Optional; nil disables
	// caching and every Execute reaches the limiter.
	Cache Cache
}

// Facade is the single governed invocation point for a remote dependency.
// It holds one limiter, one breaker, and one cache, all by reference, and
// composes them around a caller-supplied remote call function.
type Facade struct {
	limiter *QuotaLimiter
	breaker *CircuitBreaker
	cache   Cache
	group   singleflight.Group
}

// NewFacade creates a new facade.
func NewFacade(config FacadeConfig) *Facade {
	return &Facade{
		limiter: config.Limiter,
		breaker: config.Breaker,
		cache:   config.Cache,
	}
}

// Execute runs one governed invocation:
//
//  1. Cache lookup; a hit returns immediately without consulting the
//     limiter or breaker.
//  2. Limiter admission; rejection fails with ErrQuotaExceeded before any
//     remote or breaker interaction.
//  3. Breaker admission; rejection fails with ErrDependencyUnavailable.
//  4. The remote call.
//  5. On success the outcome is recorded, the cache is populated
//     (best-effort), and the value returned. On failure the breaker records
//     it and the cause is returned wrapped in a *RemoteError.
//
// Concurrent Executes for the same (namespace, key) that miss the cache are
// coalesced into a single remote call; waiters share the winner's result and
// consume no quota of their own. Cache population always happens after the
// remote call it caches, so a concurrent reader observes either the pre-call
// miss or the fresh value, never a partial write.
func (f *Facade) Execute(ctx context.Context, call Call, fn RemoteFunc) ([]byte, error) {
	if f.cache != nil {
		if value, ok := f.cache.Get(ctx, call.Namespace, call.Key); ok {
			return value, nil
		}
	}

	v, err, _ := f.group.Do(call.Namespace+"\x00"+call.Key, func() (any, error) {
		return f.callRemote(ctx, call, fn)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (f *Facade) callRemote(ctx context.Context, call Call, fn RemoteFunc) ([]byte, error) {
	// A waiter queued behind a winner that already populated the cache
	// would otherwise trigger a second remote call.
	if f.cache != nil {
		if value, ok := f.cache.Get(ctx, call.Namespace, call.Key); ok {
			return value, nil
		}
	}

	if !f.limiter.Acquire() {
		return nil, ErrQuotaExceeded
	}
	if !f.breaker.Allow() {
		return nil, ErrDependencyUnavailable
	}

	value, err := fn(ctx)
	if err != nil {
		f.breaker.RecordFailure()
		return nil, &RemoteError{Op: call.Op, Err: err}
	}

	f.breaker.RecordSuccess()
	if f.cache != nil {
		// Tier failures are absorbed by the cache; a failed Set never
		// fails the call.
		_ = f.cache.Set(ctx, call.Namespace, call.Key, value, call.TTL)
	}
	return value, nil
}

// Limiter returns the facade's quota limiter for diagnostics.
func (f *Facade) Limiter() *QuotaLimiter {
	return f.limiter
}

// Breaker returns the facade's circuit breaker for diagnostics.
func (f *Facade) Breaker() *CircuitBreaker {
	return f.breaker
}
