// Package forecastcache memoizes generated forecast series and their metrics.
// Forecasts are pure functions of (model version, periods, discount rate), so
// a cached entry stays valid until the model changes.
package forecastcache

import (
	"strings"
	"sync"
	"time"
)

// Key identifies one forecast computation. ModelID should incorporate the
// model version (for example "model-1:v3") so stale entries are never served
// after an assumption edit.
type Key struct {
	ModelID      string
	Periods      int
	DiscountRate float64
}

// Entry is a cached computation result. The cache stores values opaquely;
// callers type-assert on retrieval.
type Entry struct {
	Value    any
	storedAt time.Time
}

// Cache is a concurrency-safe in-memory forecast cache with optional expiry.
// A zero TTL disables expiry.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]Entry
	ttl     time.Duration
	now     func() time.Time
}

// New returns an empty cache. ttl <= 0 means entries never expire.
func New(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[Key]Entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached value for key, or false when absent or expired.
func (c *Cache) Get(key Key) (any, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(entry.storedAt) > c.ttl {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.Value, true
}

// Put stores value under key, replacing any previous entry.
func (c *Cache) Put(key Key, value any) {
	c.mu.Lock()
	c.entries[key] = Entry{Value: value, storedAt: c.now()}
	c.mu.Unlock()
}

// Invalidate removes the given keys.
func (c *Cache) Invalidate(keys ...Key) {
	c.mu.Lock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	c.mu.Unlock()
}

// InvalidateModel removes every entry whose ModelID matches modelID exactly
// or carries it as a version-qualified prefix ("<modelID>:").
func (c *Cache) InvalidateModel(modelID string) {
	prefix := modelID + ":"
	c.mu.Lock()
	for key := range c.entries {
		if key.ModelID == modelID || strings.HasPrefix(key.ModelID, prefix) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

// Len reports the number of stored entries, including any not yet expired.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
