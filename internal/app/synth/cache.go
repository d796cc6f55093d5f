package synth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// DefaultCacheTTL is how long synthesized audio stays cached.
const DefaultCacheTTL = 30 * time.Minute

// cacheEntry holds synthesized audio with its creation time.
type cacheEntry struct {
	audio     []byte
	createdAt time.Time
}

// Cache is an in-memory audio cache shared across requests on one server
// instance. It is bounded by TTL only, not by entry count; expired entries
// are swept lazily on each access rather than by a background timer.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewCache creates a cache with the given TTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// CacheKey computes the stable cache key for a synthesis request. Identical
// inputs always produce the same key.
func CacheKey(voice string, rate, pitch float64, text string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%g:%g:%s", voice, rate, pitch, text)))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached audio for the key if a non-expired entry exists.
// Every lookup also sweeps expired entries.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if now.Sub(e.createdAt) >= c.ttl {
			delete(c.entries, k)
		}
	}

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.audio, true
}

// Put stores audio for the key. Concurrent identical requests are not
// deduplicated; a later write simply overwrites the entry.
func (c *Cache) Put(key string, audio []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &cacheEntry{audio: audio, createdAt: c.now()}
}

// Len returns the number of entries currently held, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
