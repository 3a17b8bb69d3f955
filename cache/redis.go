package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisConfig configures the shared Redis tier.
type RedisConfig struct {
	// Addr is the host:port of the Redis server.
	// Default: "localhost:6379"
	Addr string

	// Password authenticates the connection. Optional.
	Password string

	// DB selects the logical database.
	DB int
}

// RedisTier implements SharedTier on a Redis server, letting multiple
// process instances share one result cache.
type RedisTier struct {
	client *redis.Client
}

// NewRedisTier creates a new Redis-backed shared tier.
func NewRedisTier(config RedisConfig) *RedisTier {
	// Apply defaults
	if config.Addr == "" {
		config.Addr = "localhost:6379"
	}

	return &RedisTier{
		client: redis.NewClient(&redis.Options{
			Addr:     config.Addr,
			Password: config.Password,
			DB:       config.DB,
		}),
	}
}

// NewRedisTierFromURL creates a shared tier from a redis:// URL.
func NewRedisTierFromURL(url string) (*RedisTier, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisTier{client: redis.NewClient(opts)}, nil
}

// Get retrieves a value. A redis.Nil reply is a clean miss.
func (r *RedisTier) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

// Set stores a value with the given TTL.
func (r *RedisTier) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes a value. Idempotent.
func (r *RedisTier) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// DeletePrefix removes every key with the given prefix, scanning in batches
// to avoid blocking the server the way KEYS would.
func (r *RedisTier) DeletePrefix(ctx context.Context, prefix string) error {
	iter := r.client.Scan(ctx, 0, prefix+"*", 100).Iterator()

	batch := make([]string, 0, 100)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := r.client.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return r.client.Del(ctx, batch...).Err()
	}
	return nil
}

// Ping verifies the server is reachable.
func (r *RedisTier) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the client's connections.
func (r *RedisTier) Close() error {
	return r.client.Close()
}

// Ensure RedisTier implements SharedTier
var _ SharedTier = (*RedisTier)(nil)
