package synth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKey(t *testing.T) {
	key := CacheKey("nova", 1.0, 1.0, "hallo")

	assert.Len(t, key, 64, "key is a hex encoded sha256 digest")
	assert.Equal(t, key, CacheKey("nova", 1.0, 1.0, "hallo"), "identical inputs give identical keys")

	assert.NotEqual(t, key, CacheKey("daan", 1.0, 1.0, "hallo"), "voice changes the key")
	assert.NotEqual(t, key, CacheKey("nova", 1.2, 1.0, "hallo"), "rate changes the key")
	assert.NotEqual(t, key, CacheKey("nova", 1.0, 0.9, "hallo"), "pitch changes the key")
	assert.NotEqual(t, key, CacheKey("nova", 1.0, 1.0, "hallo!"), "text changes the key")
}

func TestCache_GetPut(t *testing.T) {
	c := NewCache(time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Put("k", []byte("audio"))
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("audio"), got)
}

func TestCache_TTLExpiry(t *testing.T) {
	c := NewCache(30 * time.Minute)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Put("k", []byte("audio"))

	now = now.Add(29 * time.Minute)
	_, ok := c.Get("k")
	assert.True(t, ok, "entry is still fresh just inside the TTL")

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok, "entry expires past the TTL")
	assert.Equal(t, 0, c.Len(), "expired entries are swept on lookup")
}

func TestCache_SweepRemovesAllExpired(t *testing.T) {
	c := NewCache(10 * time.Minute)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Put("old1", []byte("a"))
	c.Put("old2", []byte("b"))
	now = now.Add(11 * time.Minute)
	c.Put("fresh", []byte("c"))

	// A lookup on any key sweeps every expired entry.
	_, ok := c.Get("fresh")
	assert.True(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestCache_PutOverwrites(t *testing.T) {
	c := NewCache(time.Minute)

	c.Put("k", []byte("first"))
	c.Put("k", []byte("second"))

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("second"), got)
	assert.Equal(t, 1, c.Len())
}
