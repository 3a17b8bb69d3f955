package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Keyer derives storage keys from a namespace and a logical key.
//
// Contract:
// - Determinism: the same (namespace, key) pair must always produce the same
//   storage key.
// - Concurrency: implementations must be safe for concurrent use.
type Keyer interface {
	// StorageKey returns the effective storage key for a logical request.
	StorageKey(namespace, key string) string
}

// DigestKeyer content-addresses logical keys.
// Format: <namespace>:<hash> where hash is the first 8 bytes of
// SHA-256(namespace || 0x00 || key), hex encoded.
type DigestKeyer struct{}

// NewDigestKeyer creates a new digest keyer.
func NewDigestKeyer() *DigestKeyer {
	return &DigestKeyer{}
}

// StorageKey derives the namespaced, content-addressed storage key.
func (k *DigestKeyer) StorageKey(namespace, key string) string {
	h := sha256.New()
	h.Write([]byte(namespace))
	h.Write([]byte{0})
	h.Write([]byte(key))
	return namespace + ":" + hex.EncodeToString(h.Sum(nil)[:8])
}

// Fingerprint builds a deterministic logical key from an operation name and
// its idempotent parameters. Parameters are sorted by name, so two requests
// with the same parameters always fingerprint identically regardless of the
// caller's argument ordering.
func Fingerprint(op string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(op)
	for _, name := range names {
		b.WriteByte('&')
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(params[name])
	}
	return b.String()
}

// Ensure DigestKeyer implements Keyer
var _ Keyer = (*DigestKeyer)(nil)
