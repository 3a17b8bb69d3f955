package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jonwraymond/catalogops/cache"
	"github.com/jonwraymond/catalogops/govern"
	"github.com/jonwraymond/catalogops/health"
	"github.com/jonwraymond/catalogops/observe"
)

const (
	dependencyName = "catalog-api"
	targetPrefix   = "com.amazon.paapi5.v1.ProductAdvertisingAPIv1."
	partnerType    = "Associates"
)

// Client is the governed catalog API client. Every operation passes the
// quota limiter, the circuit breaker, and the tiered cache before any
// bytes leave the process.
type Client struct {
	config Config
	market Marketplace
	facade *govern.Facade
	cache  *cache.Tiered
	shared *cache.RedisTier // nil when local-only
	signer *signer
	httpc  *http.Client
	mw     *observe.Middleware
}

// New creates a Client with no telemetry. Use NewWithObserver to attach
// tracing, metrics, and logging.
func New(config Config) (*Client, error) {
	return NewWithObserver(config, nil)
}

// NewWithObserver creates a Client whose governed calls are instrumented
// through the given Observer. A nil observer disables telemetry.
func NewWithObserver(config Config, obs observe.Observer) (*Client, error) {
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	market := MarketplaceFor(config.Marketplace)

	limiter := govern.NewQuotaLimiter(govern.QuotaLimiterConfig{
		MaxPerSecond: config.MaxPerSecond,
		MaxPerDay:    config.MaxPerDay,
	})

	breaker := govern.NewCircuitBreaker(govern.CircuitBreakerConfig{
		FailureThreshold: config.BreakerThreshold,
		ResetTimeout:     config.BreakerTimeout,
		OnStateChange: func(from, to govern.State) {
			if config.OnBreakerStateChange != nil {
				config.OnBreakerStateChange(from.String(), to.String())
			}
		},
	})

	cacheConfig := cache.Config{
		Memory: cache.MemoryConfig{Capacity: config.CacheCapacity},
		Policy: cache.Policy{
			DefaultTTL: config.SearchTTL,
			MaxTTL:     config.BrowseTTL,
			NamespaceTTL: map[string]time.Duration{
				NamespaceSearch:  config.SearchTTL,
				NamespaceProduct: config.ProductTTL,
				NamespaceBrowse:  config.BrowseTTL,
			},
		},
	}

	var tiered *cache.Tiered
	var shared *cache.RedisTier
	if config.RedisURL != "" {
		var err error
		shared, err = cache.NewRedisTierFromURL(config.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("catalog: shared cache tier: %w", err)
		}
		tiered = cache.NewWithShared(cacheConfig, shared)
	} else {
		tiered = cache.NewLocal(cacheConfig)
	}

	facade := govern.NewFacade(govern.FacadeConfig{
		Limiter: limiter,
		Breaker: breaker,
		Cache:   tiered,
	})

	mwConfig := observe.MiddlewareConfig{
		KindOf: func(err error) string { return govern.Classify(err).String() },
	}
	if obs != nil {
		mwConfig.Tracer = observe.NewTracer(obs.Tracer())
		mwConfig.Logger = obs.Logger()
		metrics, err := observe.NewMetrics(obs.Meter())
		if err != nil {
			return nil, fmt.Errorf("catalog: metrics: %w", err)
		}
		mwConfig.Metrics = metrics

		err = observe.RegisterQuotaGauges(obs.Meter(), dependencyName, func() (float64, int64) {
			snap := limiter.Snapshot()
			return snap.TokensAvailable, int64(snap.DailyUsed)
		})
		if err != nil {
			return nil, fmt.Errorf("catalog: quota gauges: %w", err)
		}

		err = observe.RegisterCacheGauges(obs.Meter(), func() map[string]observe.CacheCounters {
			stats := tiered.Stats().Snapshot()
			out := make(map[string]observe.CacheCounters, len(stats))
			for namespace, ns := range stats {
				out[namespace] = observe.CacheCounters{
					Hits:   ns.LocalHits + ns.SharedHits,
					Misses: ns.Misses,
				}
			}
			return out
		})
		if err != nil {
			return nil, fmt.Errorf("catalog: cache gauges: %w", err)
		}
	}

	httpc := &http.Client{Timeout: config.HTTPTimeout}
	if config.Transport != nil {
		httpc.Transport = config.Transport
	}

	return &Client{
		config: config,
		market: market,
		facade: facade,
		cache:  tiered,
		shared: shared,
		signer: newSigner(config.AccessKey, config.SecretKey, market.Region),
		httpc:  httpc,
		mw:     observe.NewMiddleware(mwConfig),
	}, nil
}

// SearchItems searches the catalog. The raw JSON response is returned and
// cached under the search namespace.
func (c *Client) SearchItems(ctx context.Context, req SearchItemsRequest) ([]byte, error) {
	if strings.TrimSpace(req.Keywords) == "" {
		return nil, ErrEmptyRequest
	}
	req.normalize()

	resources := req.Resources
	if len(resources) == 0 {
		resources = defaultSearchResources
	}

	body := searchItemsBody{
		PartnerTag:       c.config.PartnerTag,
		PartnerType:      partnerType,
		Marketplace:      "www." + c.market.Domain,
		Keywords:         req.Keywords,
		SearchIndex:      req.SearchIndex,
		ItemCount:        req.ItemCount,
		MinPrice:         req.MinPrice,
		MaxPrice:         req.MaxPrice,
		MinSavingPercent: req.MinSavingPercent,
		DeliveryFlags:    req.DeliveryFlags,
		Resources:        resources,
	}

	key := cache.Fingerprint("SearchItems", req.params())
	return c.execute(ctx, "SearchItems", NamespaceSearch, key, c.config.SearchTTL, "/paapi5/searchitems", body)
}

// GetItems fetches details for up to ten items. The raw JSON response is
// returned and cached under the product namespace.
func (c *Client) GetItems(ctx context.Context, req GetItemsRequest) ([]byte, error) {
	if len(req.ItemIDs) == 0 {
		return nil, ErrEmptyRequest
	}
	req.normalize()

	resources := req.Resources
	if len(resources) == 0 {
		resources = defaultItemResources
	}

	body := getItemsBody{
		PartnerTag:  c.config.PartnerTag,
		PartnerType: partnerType,
		Marketplace: "www." + c.market.Domain,
		ItemIDs:     req.ItemIDs,
		Resources:   resources,
	}

	key := cache.Fingerprint("GetItems", req.params())
	return c.execute(ctx, "GetItems", NamespaceProduct, key, c.config.ProductTTL, "/paapi5/getitems", body)
}

// GetBrowseNodes fetches category nodes. The raw JSON response is returned
// and cached under the browse namespace, which has the longest lifetime
// since category trees change rarely.
func (c *Client) GetBrowseNodes(ctx context.Context, req GetBrowseNodesRequest) ([]byte, error) {
	if len(req.BrowseNodeIDs) == 0 {
		return nil, ErrEmptyRequest
	}

	resources := req.Resources
	if len(resources) == 0 {
		resources = defaultBrowseResources
	}

	body := getBrowseNodesBody{
		PartnerTag:    c.config.PartnerTag,
		PartnerType:   partnerType,
		Marketplace:   "www." + c.market.Domain,
		BrowseNodeIDs: req.BrowseNodeIDs,
		Resources:     resources,
	}

	key := cache.Fingerprint("GetBrowseNodes", req.params())
	return c.execute(ctx, "GetBrowseNodes", NamespaceBrowse, key, c.config.BrowseTTL, "/paapi5/getbrowsenodes", body)
}

func (c *Client) execute(ctx context.Context, op, namespace, key string, ttl time.Duration, path string, body any) ([]byte, error) {
	meta := observe.CallMeta{
		Dependency: dependencyName,
		Op:         op,
		Namespace:  namespace,
	}

	call := govern.Call{
		Op:        op,
		Key:       key,
		Namespace: namespace,
		TTL:       ttl,
	}

	return c.mw.Wrap(ctx, meta, func(ctx context.Context) ([]byte, error) {
		return c.facade.Execute(ctx, call, func(ctx context.Context) ([]byte, error) {
			return c.post(ctx, op, path, body)
		})
	})
}

// post performs one signed HTTP call against the marketplace endpoint.
func (c *Client) post(ctx context.Context, op, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("catalog: encode %s request: %w", op, err)
	}

	url := "https://" + c.market.Host + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("catalog: build %s request: %w", op, err)
	}

	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Content-Encoding", "amz-1.0")
	req.Header.Set("X-Amz-Target", targetPrefix+op)
	c.signer.Sign(req, payload)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(data), 256),
		}
	}

	return data, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Marketplace returns the resolved marketplace configuration.
func (c *Client) Marketplace() Marketplace {
	return c.market
}

// QuotaSnapshot reports the limiter state.
func (c *Client) QuotaSnapshot() govern.QuotaSnapshot {
	return c.facade.Limiter().Snapshot()
}

// BreakerSnapshot reports the breaker state.
func (c *Client) BreakerSnapshot() govern.BreakerSnapshot {
	return c.facade.Breaker().Snapshot()
}

// CacheStats exposes the per-namespace cache counters.
func (c *Client) CacheStats() *cache.Stats {
	return c.cache.Stats()
}

// InvalidateNamespace drops all cached entries for one operation family.
func (c *Client) InvalidateNamespace(ctx context.Context, namespace string) error {
	return c.cache.ClearNamespace(ctx, namespace)
}

// RegisterHealth registers quota, breaker, and cache checkers for this
// client on the aggregator.
func (c *Client) RegisterHealth(agg *health.Aggregator) {
	agg.Register("quota", health.NewQuotaChecker(health.QuotaCheckerConfig{}, func() (int64, int64) {
		snap := c.facade.Limiter().Snapshot()
		return int64(snap.DailyUsed), int64(snap.DailyLimit)
	}))

	agg.Register("breaker", health.NewBreakerChecker(func() (string, int) {
		snap := c.facade.Breaker().Snapshot()
		return snap.State.String(), snap.Failures
	}))

	var ping func(ctx context.Context) error
	if c.cache.SharedConfigured() {
		ping = c.cache.PingShared
	}
	agg.Register("cache", health.NewCacheChecker(ping))
}

// Close releases the shared cache tier connection, if any.
func (c *Client) Close() error {
	if c.shared != nil {
		return c.shared.Close()
	}
	return nil
}
