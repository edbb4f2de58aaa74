// Package resource provides the client-side data layer: a keyed read-through
// cache with single-flight revalidation, and a mutation wrapper with lifecycle
// callbacks and notification surfacing.
package resource

import (
	"sync"
	"time"
)

// Cache is the injected cache service used by resources and mutations. Keys
// are URL strings; a key identifies both a cached read result and its
// revalidation scope.
type Cache interface {
	// Get returns the cached value for key and whether one is present.
	Get(key string) (interface{}, bool)

	// Set stores a value for key and notifies subscribers.
	Set(key string, value interface{})

	// Invalidate drops the entry for key and notifies subscribers.
	Invalidate(key string)

	// Subscribe registers fn to run on every Set or Invalidate of key, and
	// returns an unsubscribe func.
	Subscribe(key string, fn func()) func()
}

type cacheEntry struct {
	value     interface{}
	fetchedAt time.Time
}

// MemoryCache is an in-memory Cache with optional TTL expiry. A zero TTL
// means entries never expire.
type MemoryCache struct {
	mu          sync.RWMutex
	entries     map[string]*cacheEntry
	subscribers map[string]map[int]func()
	nextSub     int
	ttl         time.Duration
}

var _ Cache = (*MemoryCache)(nil)

// NewMemoryCache creates a new in-memory cache with the given TTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries:     make(map[string]*cacheEntry),
		subscribers: make(map[string]map[int]func()),
		ttl:         ttl,
	}
}

// Get returns the cached value for key. Expired entries are treated as absent.
func (c *MemoryCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.ttl > 0 && time.Since(entry.fetchedAt) >= c.ttl {
		return nil, false
	}
	return entry.value, true
}

// Set stores a value for key.
func (c *MemoryCache) Set(key string, value interface{}) {
	c.mu.Lock()
	c.entries[key] = &cacheEntry{value: value, fetchedAt: time.Now()}
	fns := c.subscriberList(key)
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Invalidate drops the entry for key.
func (c *MemoryCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	fns := c.subscriberList(key)
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Subscribe registers fn for key changes.
func (c *MemoryCache) Subscribe(key string, fn func()) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.subscribers[key] == nil {
		c.subscribers[key] = make(map[int]func())
	}
	id := c.nextSub
	c.nextSub++
	c.subscribers[key][id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers[key], id)
	}
}

// subscriberList snapshots the callbacks for key. Callers must hold mu.
func (c *MemoryCache) subscriberList(key string) []func() {
	subs := c.subscribers[key]
	if len(subs) == 0 {
		return nil
	}
	fns := make([]func(), 0, len(subs))
	for _, fn := range subs {
		fns = append(fns, fn)
	}
	return fns
}

// CleanupExpired removes expired entries. No-op when TTL is zero.
func (c *MemoryCache) CleanupExpired() {
	if c.ttl == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, entry := range c.entries {
		if now.Sub(entry.fetchedAt) >= c.ttl {
			delete(c.entries, key)
		}
	}
}

// CacheStats represents cache statistics
type CacheStats struct {
	TotalEntries   int           `json:"total_entries"`
	ValidEntries   int           `json:"valid_entries"`
	ExpiredEntries int           `json:"expired_entries"`
	TTL            time.Duration `json:"ttl"`
}

// Stats returns cache statistics.
func (c *MemoryCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var valid, expired int
	now := time.Now()
	for _, entry := range c.entries {
		if c.ttl == 0 || now.Sub(entry.fetchedAt) < c.ttl {
			valid++
		} else {
			expired++
		}
	}

	return CacheStats{
		TotalEntries:   len(c.entries),
		ValidEntries:   valid,
		ExpiredEntries: expired,
		TTL:            c.ttl,
	}
}
