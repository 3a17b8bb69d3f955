package cache

import "time"

// Policy configures entry lifetimes.
type Policy struct {
	// DefaultTTL is the TTL applied when the caller passes none and the
	// namespace has no override. If zero, unspecified TTLs disable caching.
	DefaultTTL time.Duration

	// MaxTTL is the maximum allowed TTL. Larger TTLs are clamped.
	// If zero, no maximum is enforced.
	MaxTTL time.Duration

	// NamespaceTTL overrides DefaultTTL per namespace.
	NamespaceTTL map[string]time.Duration
}

// DefaultPolicy returns the default lifetime policy.
// DefaultTTL: 1 hour, MaxTTL: 24 hours.
func DefaultPolicy() Policy {
	return Policy{
		DefaultTTL: time.Hour,
		MaxTTL:     24 * time.Hour,
	}
}

// EffectiveTTL resolves the TTL for one entry: an explicit override wins,
// then the namespace default, then DefaultTTL, all clamped to MaxTTL.
func (p Policy) EffectiveTTL(namespace string, override time.Duration) time.Duration {
	ttl := override
	if ttl <= 0 {
		if nsTTL, ok := p.NamespaceTTL[namespace]; ok {
			ttl = nsTTL
		} else {
			ttl = p.DefaultTTL
		}
	}

	if p.MaxTTL > 0 && ttl > p.MaxTTL {
		ttl = p.MaxTTL
	}
	return ttl
}
