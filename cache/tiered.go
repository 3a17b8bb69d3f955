package cache

import (
	"context"
	"time"
)

// Config configures the tiered cache.
type Config struct {
	// Memory configures the fast tier.
	Memory MemoryConfig

	// Policy controls entry lifetimes.
	// Default: DefaultPolicy()
	Policy Policy

	// Keyer derives storage keys.
	// Default: DigestKeyer
	Keyer Keyer
}

// Tiered is the two-tier cache. The fast tier is a read-through accelerator;
// when a shared tier is configured it is the source of truth and its entries
// may outlive the fast tier's copies. All shared-tier failures are absorbed:
// the cache degrades to the fast tier alone and callers never observe the
// difference.
type Tiered struct {
	local  *MemoryCache
	shared SharedTier
	keyer  Keyer
	policy Policy
	stats  *Stats
}

// NewLocal creates a cache backed by the fast tier only.
func NewLocal(config Config) *Tiered {
	return newTiered(config, nil)
}

// NewWithShared creates a cache backed by the fast tier plus a shared layer.
// The topology is fixed here; call sites never branch on availability.
func NewWithShared(config Config, shared SharedTier) *Tiered {
	return newTiered(config, shared)
}

func newTiered(config Config, shared SharedTier) *Tiered {
	// Apply defaults
	if config.Keyer == nil {
		config.Keyer = NewDigestKeyer()
	}
	if config.Policy.DefaultTTL == 0 && config.Policy.MaxTTL == 0 && config.Policy.NamespaceTTL == nil {
		config.Policy = DefaultPolicy()
	}

	return &Tiered{
		local:  NewMemoryCache(config.Memory),
		shared: shared,
		keyer:  config.Keyer,
		policy: config.Policy,
		stats:  newStats(),
	}
}

// Get retrieves a cached value. The fast tier is consulted first; on a miss
// the shared tier (when configured) is tried, and a shared hit back-fills the
// fast tier before returning. Returns (nil, false) on miss; shared-tier
// failures count as misses.
func (t *Tiered) Get(ctx context.Context, namespace, key string) ([]byte, bool) {
	storage := t.keyer.StorageKey(namespace, key)

	if value, ok := t.local.Get(storage); ok {
		t.stats.recordLocalHit(namespace)
		return value, true
	}

	if t.shared != nil {
		value, ok, err := t.shared.Get(ctx, storage)
		switch {
		case err != nil:
			t.stats.recordSharedError()
		case ok:
			t.stats.recordSharedHit(namespace)
			t.local.Set(storage, value, t.policy.EffectiveTTL(namespace, 0))
			return value, true
		}
	}

	t.stats.recordMiss(namespace)
	return nil, false
}

// Set stores a value in both tiers. A zero TTL applies the policy's
// namespace default. The shared-tier write is best-effort: its failure is
// recorded but never returned.
func (t *Tiered) Set(ctx context.Context, namespace, key string, value []byte, ttl time.Duration) error {
	if err := ValidateNamespace(namespace); err != nil {
		return err
	}
	if err := ValidateKey(key); err != nil {
		return err
	}

	ttl = t.policy.EffectiveTTL(namespace, ttl)
	if ttl <= 0 {
		return nil
	}

	storage := t.keyer.StorageKey(namespace, key)
	t.local.Set(storage, value, ttl)
	t.stats.recordSet(namespace)

	if t.shared != nil {
		if err := t.shared.Set(ctx, storage, value, ttl); err != nil {
			t.stats.recordSharedError()
		}
	}
	return nil
}

// Delete removes a value from both tiers. Idempotent.
func (t *Tiered) Delete(ctx context.Context, namespace, key string) error {
	storage := t.keyer.StorageKey(namespace, key)
	t.local.Delete(storage)

	if t.shared != nil {
		if err := t.shared.Delete(ctx, storage); err != nil {
			t.stats.recordSharedError()
		}
	}
	return nil
}

// ClearNamespace removes every entry in a namespace from both tiers.
func (t *Tiered) ClearNamespace(ctx context.Context, namespace string) error {
	if err := ValidateNamespace(namespace); err != nil {
		return err
	}

	prefix := namespace + ":"
	t.local.DeletePrefix(prefix)

	if t.shared != nil {
		if err := t.shared.DeletePrefix(ctx, prefix); err != nil {
			t.stats.recordSharedError()
		}
	}
	return nil
}

// Stats returns the cache's hit/miss counters.
func (t *Tiered) Stats() *Stats {
	return t.stats
}

// SharedConfigured reports whether a shared tier was attached at
// construction.
func (t *Tiered) SharedConfigured() bool {
	return t.shared != nil
}

// PingShared verifies the shared tier is reachable. Returns nil when no
// shared tier is configured.
func (t *Tiered) PingShared(ctx context.Context) error {
	if t.shared == nil {
		return nil
	}
	return t.shared.Ping(ctx)
}
