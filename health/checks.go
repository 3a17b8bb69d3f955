package health

import (
	"context"
	"fmt"
)

// QuotaCheckerConfig configures the daily quota health checker.
type QuotaCheckerConfig struct {
	// WarningRatio is the fraction of the daily budget consumed that
	// triggers degraded status. Default: 0.90
	WarningRatio float64

	// CriticalRatio is the fraction of the daily budget consumed that
	// triggers unhealthy status. Default: 0.95
	CriticalRatio float64
}

// QuotaChecker reports health based on daily quota consumption.
type QuotaChecker struct {
	config   QuotaCheckerConfig
	snapshot func() (used, limit int64)
}

// NewQuotaChecker creates a quota checker. The snapshot callback returns
// the calls consumed so far and the daily budget.
func NewQuotaChecker(config QuotaCheckerConfig, snapshot func() (used, limit int64)) *QuotaChecker {
	if config.WarningRatio <= 0 || config.WarningRatio >= 1 {
		config.WarningRatio = 0.90
	}
	if config.CriticalRatio <= 0 || config.CriticalRatio > 1 {
		config.CriticalRatio = 0.95
	}
	if config.CriticalRatio < config.WarningRatio {
		config.CriticalRatio = config.WarningRatio
	}

	return &QuotaChecker{config: config, snapshot: snapshot}
}

// Name returns the name of this checker.
func (q *QuotaChecker) Name() string {
	return "quota"
}

// Check reports the quota state.
func (q *QuotaChecker) Check(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return Unhealthy("context cancelled", ctx.Err())
	default:
	}

	used, limit := q.snapshot()
	if limit <= 0 {
		return Healthy("no daily budget configured")
	}

	ratio := float64(used) / float64(limit)
	details := map[string]any{
		"daily_used":    used,
		"daily_limit":   limit,
		"usage_percent": ratio * 100,
	}

	switch {
	case ratio >= q.config.CriticalRatio:
		return Unhealthy(
			fmt.Sprintf("daily quota nearly exhausted: %.1f%%", ratio*100),
			ErrCheckFailed,
		).WithDetails(details)
	case ratio >= q.config.WarningRatio:
		return Degraded(
			fmt.Sprintf("daily quota running low: %.1f%%", ratio*100),
		).WithDetails(details)
	default:
		return Healthy(
			fmt.Sprintf("daily quota normal: %.1f%%", ratio*100),
		).WithDetails(details)
	}
}

// BreakerChecker reports health based on circuit breaker state.
type BreakerChecker struct {
	snapshot func() (state string, failures int)
}

// NewBreakerChecker creates a breaker checker. The snapshot callback
// returns the breaker's state name ("closed", "open", "half-open") and
// its consecutive failure count.
func NewBreakerChecker(snapshot func() (state string, failures int)) *BreakerChecker {
	return &BreakerChecker{snapshot: snapshot}
}

// Name returns the name of this checker.
func (b *BreakerChecker) Name() string {
	return "breaker"
}

// Check reports the breaker state. An open breaker means the remote
// dependency is being refused, so the component is unhealthy. Half-open
// means a probe is pending, reported as degraded.
func (b *BreakerChecker) Check(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return Unhealthy("context cancelled", ctx.Err())
	default:
	}

	state, failures := b.snapshot()
	details := map[string]any{
		"state":    state,
		"failures": failures,
	}

	switch state {
	case "open":
		return Unhealthy("circuit breaker open, remote calls refused", ErrCheckFailed).
			WithDetails(details)
	case "half-open":
		return Degraded("circuit breaker probing remote dependency").
			WithDetails(details)
	default:
		return Healthy("circuit breaker closed").WithDetails(details)
	}
}

// CacheChecker reports health of the shared cache tier via a ping callback.
type CacheChecker struct {
	ping func(ctx context.Context) error
}

// NewCacheChecker creates a cache checker. The ping callback should reach
// the shared tier; a nil callback means no shared tier is configured.
func NewCacheChecker(ping func(ctx context.Context) error) *CacheChecker {
	return &CacheChecker{ping: ping}
}

// Name returns the name of this checker.
func (c *CacheChecker) Name() string {
	return "cache"
}

// Check pings the shared tier. A failed ping is degraded rather than
// unhealthy: governed calls keep working against the local tier and the
// remote API when the shared tier is down.
func (c *CacheChecker) Check(ctx context.Context) Result {
	if c.ping == nil {
		return Healthy("local cache only, no shared tier configured")
	}

	if err := c.ping(ctx); err != nil {
		return Degraded("shared cache tier unreachable").WithDetails(map[string]any{
			"error": err.Error(),
		})
	}
	return Healthy("shared cache tier reachable")
}
