package cache

import (
	"bytes"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemoryCache_GetSetDelete(t *testing.T) {
	c := NewMemoryCache(MemoryConfig{Capacity: 10})

	if _, ok := c.Get("missing"); ok {
		t.Error("Get on empty cache should miss")
	}

	c.Set("k", []byte("v"), time.Minute)
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("Get after Set should hit")
	}
	if !bytes.Equal(got, []byte("v")) {
		t.Errorf("Get = %q, want %q", got, "v")
	}

	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("Get after Delete should miss")
	}

	// Idempotent.
	c.Delete("k")
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(MemoryConfig{Capacity: 10})

	c.Set("k", []byte("v"), 10*time.Millisecond)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("Get before expiry should hit")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("Get after TTL elapsed should miss")
	}
	if c.Len() != 0 {
		t.Errorf("Len after lazy reap = %d, want 0", c.Len())
	}
}

func TestMemoryCache_ZeroTTLNotCached(t *testing.T) {
	c := NewMemoryCache(MemoryConfig{Capacity: 10})

	c.Set("k", []byte("v"), 0)
	if _, ok := c.Get("k"); ok {
		t.Error("zero TTL entries must not be stored")
	}
}

func TestMemoryCache_LRUEviction(t *testing.T) {
	c := NewMemoryCache(MemoryConfig{Capacity: 3})

	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("k%d", i), []byte("v"), time.Minute)
	}

	// Touch k0 so k1 becomes least recently used.
	if _, ok := c.Get("k0"); !ok {
		t.Fatal("k0 should be present")
	}

	c.Set("k3", []byte("v"), time.Minute)

	if _, ok := c.Get("k1"); ok {
		t.Error("k1 should have been evicted as least recently used")
	}
	for _, key := range []string{"k0", "k2", "k3"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("%s should have survived eviction", key)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len = %d, want 3 (capacity)", c.Len())
	}
}

func TestMemoryCache_UpdateRefreshesEntry(t *testing.T) {
	c := NewMemoryCache(MemoryConfig{Capacity: 2})

	c.Set("a", []byte("1"), time.Minute)
	c.Set("b", []byte("2"), time.Minute)
	c.Set("a", []byte("3"), time.Minute) // update, not insert
	c.Set("c", []byte("4"), time.Minute) // evicts b, the LRU

	if got, ok := c.Get("a"); !ok || !bytes.Equal(got, []byte("3")) {
		t.Errorf("Get(a) = %q, %v, want updated value", got, ok)
	}
	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
}

func TestMemoryCache_DeletePrefix(t *testing.T) {
	c := NewMemoryCache(MemoryConfig{Capacity: 10})

	c.Set("search:a", []byte("1"), time.Minute)
	c.Set("search:b", []byte("2"), time.Minute)
	c.Set("product:a", []byte("3"), time.Minute)

	c.DeletePrefix("search:")

	if _, ok := c.Get("search:a"); ok {
		t.Error("search:a should have been cleared")
	}
	if _, ok := c.Get("search:b"); ok {
		t.Error("search:b should have been cleared")
	}
	if _, ok := c.Get("product:a"); !ok {
		t.Error("product:a should have survived")
	}
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	c := NewMemoryCache(MemoryConfig{Capacity: 100})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", j%20)
				c.Set(key, []byte("v"), time.Minute)
				c.Get(key)
				if j%10 == 0 {
					c.Delete(key)
				}
			}
		}(i)
	}
	wg.Wait()

	if c.Len() > 100 {
		t.Errorf("Len = %d, want <= capacity", c.Len())
	}
}
