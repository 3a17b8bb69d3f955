package cache

import (
	"context"
	"errors"
	"strings"
	"time"
)

// MaxKeyLength is the maximum allowed length for a logical cache key.
const MaxKeyLength = 512

// Sentinel errors for cache operations.
var (
	ErrInvalidKey       = errors.New("cache: key is invalid")
	ErrKeyTooLong       = errors.New("cache: key exceeds max length")
	ErrInvalidNamespace = errors.New("cache: namespace is invalid")
)

// SharedTier is the optional second cache layer, typically Redis. All methods
// may fail; the tiered cache absorbs those failures and degrades to the fast
// tier alone.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: methods must honor cancellation/deadlines.
type SharedTier interface {
	// Get retrieves a value by storage key. Returns (nil, false, nil) on a
	// clean miss and a non-nil error when the tier is unreachable.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value. Idempotent.
	Delete(ctx context.Context, key string) error

	// DeletePrefix removes every key with the given prefix.
	DeletePrefix(ctx context.Context, prefix string) error

	// Ping verifies the tier is reachable.
	Ping(ctx context.Context) error
}

// ValidateKey checks that a logical key is usable for caching.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	return nil
}

// ValidateNamespace checks that a namespace is usable. Namespaces become key
// prefixes, so the separator character is rejected.
func ValidateNamespace(namespace string) error {
	if strings.TrimSpace(namespace) == "" {
		return ErrInvalidNamespace
	}
	if strings.Contains(namespace, ":") {
		return ErrInvalidNamespace
	}
	return nil
}
