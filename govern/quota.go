package govern

import (
	"sync"
	"time"
)

// QuotaLimiterConfig configures the quota limiter.
type QuotaLimiterConfig struct {
	// MaxPerSecond is the sustained call rate allowed by the provider.
	// May be fractional for sub-one-per-second pacing.
	// Default: 1
	MaxPerSecond float64

	// MaxPerDay is the fixed daily call budget.
	// Default: 8640 (one per second for a day)
	MaxPerDay int
}

// QuotaLimiter enforces the remote provider's per-second and per-day call
// quotas with a token bucket and a secondary daily counter.
//
// The bucket accrues MaxPerSecond tokens per second up to a cap of
// max(MaxPerSecond, 1), so at most one second of burst is ever available
// and a fractional rate can still hold the single whole token an admission
// costs. The daily counter resets exactly when the reset instant is crossed
// and the reset instant then advances by exactly one day.
type QuotaLimiter struct {
	config QuotaLimiterConfig
	burst  float64

	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
	dailyUsed  int
	dailyReset time.Time

	// now is the time source, overridable in tests.
	now func() time.Time
}

// NewQuotaLimiter creates a new quota limiter. The bucket starts full.
func NewQuotaLimiter(config QuotaLimiterConfig) *QuotaLimiter {
	// Apply defaults
	if config.MaxPerSecond <= 0 {
		config.MaxPerSecond = 1
	}
	if config.MaxPerDay <= 0 {
		config.MaxPerDay = 8640
	}

	// A rate below one token per second would otherwise cap the bucket
	// under the whole token an admission costs and deadlock the limiter.
	burst := config.MaxPerSecond
	if burst < 1 {
		burst = 1
	}

	now := time.Now()
	return &QuotaLimiter{
		config:     config,
		burst:      burst,
		tokens:     burst,
		lastRefill: now,
		dailyReset: now.Add(24 * time.Hour),
		now:        time.Now,
	}
}

// Acquire reports whether a call may proceed, and if so atomically consumes
// one unit of quota. It never blocks. A consumed unit is not refunded if the
// caller later abandons the call.
func (q *QuotaLimiter) Acquire() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	q.refillLocked(now)

	// Daily counter resets exactly when the reset instant is crossed.
	if !now.Before(q.dailyReset) {
		q.dailyUsed = 0
		q.dailyReset = now.Add(24 * time.Hour)
	}

	if q.dailyUsed >= q.config.MaxPerDay {
		return false
	}
	if q.tokens < 1.0 {
		return false
	}

	q.tokens -= 1.0
	q.dailyUsed++
	return true
}

func (q *QuotaLimiter) refillLocked(now time.Time) {
	elapsed := now.Sub(q.lastRefill)
	q.lastRefill = now

	q.tokens += elapsed.Seconds() * q.config.MaxPerSecond
	if q.tokens > q.burst {
		q.tokens = q.burst
	}
}

// QuotaSnapshot is a read-only view of the limiter state.
type QuotaSnapshot struct {
	// TokensAvailable is the current token count, including accrual since
	// the last acquisition. Always in [0, max(MaxPerSecond, 1)].
	TokensAvailable float64

	// DailyUsed is the number of calls admitted in the current daily window.
	DailyUsed int

	// DailyLimit is the configured daily budget.
	DailyLimit int

	// DailyResetIn is the time remaining until the daily counter resets.
	DailyResetIn time.Duration
}

// Snapshot returns a consistent read-only view of the limiter. It does not
// consume quota or advance the refill clock.
func (q *QuotaLimiter) Snapshot() QuotaSnapshot {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()

	// Project the accrued tokens without committing the refill.
	tokens := q.tokens + now.Sub(q.lastRefill).Seconds()*q.config.MaxPerSecond
	if tokens > q.burst {
		tokens = q.burst
	}

	used := q.dailyUsed
	resetIn := q.dailyReset.Sub(now)
	if resetIn < 0 {
		// The window lapsed with no intervening Acquire.
		used = 0
		resetIn = 0
	}

	return QuotaSnapshot{
		TokensAvailable: tokens,
		DailyUsed:       used,
		DailyLimit:      q.config.MaxPerDay,
		DailyResetIn:    resetIn,
	}
}
