package catalog

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"
)

// Cache namespaces, one per operation family.
const (
	NamespaceSearch  = "search"
	NamespaceProduct = "product"
	NamespaceBrowse  = "browse"
)

// Config configures the governed catalog client.
type Config struct {
	// AccessKey identifies the API credential pair. Required.
	AccessKey string

	// SecretKey signs outbound requests. Required.
	SecretKey string

	// PartnerTag is the partner identifier attached to every request.
	// Required.
	PartnerTag string

	// Marketplace selects the regional endpoint.
	// Default: "US"
	Marketplace string

	// MaxPerSecond is the sustained request rate. Kept under the provider's
	// 1 TPS entry quota to avoid throttling.
	// Default: 0.9
	MaxPerSecond float64

	// MaxPerDay is the daily request budget, held under the provider's
	// 8640 TPD entry quota.
	// Default: 8000
	MaxPerDay int

	// BreakerThreshold is the consecutive failure count that opens the
	// circuit breaker. Default: 5
	BreakerThreshold int

	// BreakerTimeout is how long the breaker stays open before probing.
	// Default: 60 seconds
	BreakerTimeout time.Duration

	// SearchTTL is the cache lifetime for search results. Default: 1 hour
	SearchTTL time.Duration

	// ProductTTL is the cache lifetime for product details. Default: 2 hours
	ProductTTL time.Duration

	// BrowseTTL is the cache lifetime for browse nodes. Default: 24 hours
	BrowseTTL time.Duration

	// CacheCapacity bounds the fast cache tier. Default: 1000 entries
	CacheCapacity int

	// RedisURL configures the shared cache tier. Empty means local-only.
	RedisURL string

	// HTTPTimeout bounds each remote call. Default: 10 seconds
	HTTPTimeout time.Duration

	// Transport overrides the HTTP transport, used by tests.
	Transport http.RoundTripper

	// OnBreakerStateChange is invoked on every breaker transition with the
	// state names, e.g. ("closed", "open"). Optional.
	OnBreakerStateChange func(from, to string)
}

func (c *Config) applyDefaults() {
	if c.Marketplace == "" {
		c.Marketplace = "US"
	}
	if c.MaxPerSecond <= 0 {
		c.MaxPerSecond = 0.9
	}
	if c.MaxPerDay <= 0 {
		c.MaxPerDay = 8000
	}
	if c.BreakerThreshold <= 0 {
		c.BreakerThreshold = 5
	}
	if c.BreakerTimeout <= 0 {
		c.BreakerTimeout = 60 * time.Second
	}
	if c.SearchTTL <= 0 {
		c.SearchTTL = time.Hour
	}
	if c.ProductTTL <= 0 {
		c.ProductTTL = 2 * time.Hour
	}
	if c.BrowseTTL <= 0 {
		c.BrowseTTL = 24 * time.Hour
	}
	if c.CacheCapacity <= 0 {
		c.CacheCapacity = 1000
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 10 * time.Second
	}
}

// Validate checks that required fields are set.
func (c *Config) Validate() error {
	if c.AccessKey == "" {
		return ErrMissingCredentials
	}
	if c.SecretKey == "" {
		return ErrMissingCredentials
	}
	if c.PartnerTag == "" {
		return ErrMissingPartnerTag
	}
	return nil
}

// FromEnv builds a Config from CATALOG_* environment variables. String
// values run through strict ${VAR} expansion, so a value like
// "redis://:${REDIS_PASSWORD}@localhost:6379/0" errors when the referenced
// variable is absent instead of silently expanding to an empty string.
//
// Recognized variables: CATALOG_ACCESS_KEY, CATALOG_SECRET_KEY,
// CATALOG_PARTNER_TAG, CATALOG_MARKETPLACE, CATALOG_MAX_PER_SECOND,
// CATALOG_MAX_PER_DAY, CATALOG_BREAKER_THRESHOLD, CATALOG_BREAKER_TIMEOUT,
// CATALOG_TTL_SEARCH, CATALOG_TTL_PRODUCT, CATALOG_TTL_BROWSE,
// CATALOG_CACHE_CAPACITY, CATALOG_REDIS_URL, CATALOG_HTTP_TIMEOUT.
// Durations use Go syntax ("60s", "2h"). Unset variables keep defaults.
func FromEnv() (Config, error) {
	var config Config
	var err error

	stringVars := []struct {
		key  string
		dest *string
	}{
		{"CATALOG_ACCESS_KEY", &config.AccessKey},
		{"CATALOG_SECRET_KEY", &config.SecretKey},
		{"CATALOG_PARTNER_TAG", &config.PartnerTag},
		{"CATALOG_MARKETPLACE", &config.Marketplace},
		{"CATALOG_REDIS_URL", &config.RedisURL},
	}
	for _, s := range stringVars {
		raw, ok := os.LookupEnv(s.key)
		if !ok {
			continue
		}
		*s.dest, err = expandEnvStrict(raw)
		if err != nil {
			return Config{}, fmt.Errorf("catalog: %s: %w", s.key, err)
		}
	}

	if raw, ok := os.LookupEnv("CATALOG_MAX_PER_SECOND"); ok {
		config.MaxPerSecond, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return Config{}, fmt.Errorf("catalog: CATALOG_MAX_PER_SECOND: %w", err)
		}
	}

	intVars := []struct {
		key  string
		dest *int
	}{
		{"CATALOG_MAX_PER_DAY", &config.MaxPerDay},
		{"CATALOG_BREAKER_THRESHOLD", &config.BreakerThreshold},
		{"CATALOG_CACHE_CAPACITY", &config.CacheCapacity},
	}
	for _, i := range intVars {
		raw, ok := os.LookupEnv(i.key)
		if !ok {
			continue
		}
		*i.dest, err = strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("catalog: %s: %w", i.key, err)
		}
	}

	durationVars := []struct {
		key  string
		dest *time.Duration
	}{
		{"CATALOG_BREAKER_TIMEOUT", &config.BreakerTimeout},
		{"CATALOG_TTL_SEARCH", &config.SearchTTL},
		{"CATALOG_TTL_PRODUCT", &config.ProductTTL},
		{"CATALOG_TTL_BROWSE", &config.BrowseTTL},
		{"CATALOG_HTTP_TIMEOUT", &config.HTTPTimeout},
	}
	for _, d := range durationVars {
		raw, ok := os.LookupEnv(d.key)
		if !ok {
			continue
		}
		*d.dest, err = time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("catalog: %s: %w", d.key, err)
		}
	}

	return config, nil
}
