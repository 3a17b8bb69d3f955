package cache

import (
	"container/list"
	"strings"
	"sync"
	"time"
)

// MemoryConfig configures the fast in-process tier.
type MemoryConfig struct {
	// Capacity is the maximum number of entries before the least recently
	// used entry is evicted.
	// Default: 1000
	Capacity int
}

// MemoryCache is the fast tier: a bounded LRU map with per-entry expiry.
// Expired entries are reaped lazily on access; capacity eviction is
// independent of TTL.
type MemoryCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front = most recently used
}

type memoryEntry struct {
	key       string
	value     []byte
	expiresAt time.Time
}

// NewMemoryCache creates a new fast tier.
func NewMemoryCache(config MemoryConfig) *MemoryCache {
	// Apply defaults
	if config.Capacity <= 0 {
		config.Capacity = 1000
	}

	return &MemoryCache{
		capacity: config.Capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get retrieves a value by storage key. Returns (nil, false) on miss or
// expiry. A hit marks the entry most recently used.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	entry := elem.Value.(*memoryEntry)
	if time.Now().After(entry.expiresAt) {
		c.removeLocked(elem)
		return nil, false
	}

	c.order.MoveToFront(elem)
	return entry.value, true
}

// Set stores a value with the given TTL. TTL <= 0 means no caching. When the
// tier is full the least recently used entry is evicted.
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := time.Now().Add(ttl)
	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.value = value
		entry.expiresAt = expiresAt
		c.order.MoveToFront(elem)
		return
	}

	elem := c.order.PushFront(&memoryEntry{key: key, value: value, expiresAt: expiresAt})
	c.entries[key] = elem

	if c.order.Len() > c.capacity {
		c.removeLocked(c.order.Back())
	}
}

// Delete removes a value. Idempotent.
func (c *MemoryCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.removeLocked(elem)
	}
}

// DeletePrefix removes every entry whose storage key has the given prefix.
func (c *MemoryCache) DeletePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, elem := range c.entries {
		if strings.HasPrefix(key, prefix) {
			c.removeLocked(elem)
		}
	}
}

// Len returns the current number of entries, including any not yet reaped.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *MemoryCache) removeLocked(elem *list.Element) {
	if elem == nil {
		return
	}
	entry := elem.Value.(*memoryEntry)
	delete(c.entries, entry.key)
	c.order.Remove(elem)
}
