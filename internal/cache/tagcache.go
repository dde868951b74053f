// Package cache implements the tag-invalidation registry behind the
// cached quote reads: entries subscribe to tags, mutations invalidate
// by tag, and dependent reads go back to the server.
package cache

import (
	"sync"
	"sync/atomic"
	"time"
)

// TagCache is a concurrent-safe LRU cache with TTL expiration where
// every entry carries a set of tags. Invalidating a tag drops every
// entry subscribed to it.
type TagCache struct {
	mu         sync.Mutex
	entries    map[string]*tagCacheEntry
	byTag      map[string]map[string]struct{} // tag -> keys
	order      []string                       // LRU order: front=oldest, back=newest
	maxEntries int
	ttl        time.Duration
	hits       atomic.Int64
	misses     atomic.Int64
}

type tagCacheEntry struct {
	value     any
	tags      []string
	createdAt time.Time
}

// Stats contains cache performance statistics.
type Stats struct {
	Entries    int     `json:"entries"`
	MaxEntries int     `json:"max_entries"`
	Hits       int64   `json:"hits"`
	Misses     int64   `json:"misses"`
	HitRate    float64 `json:"hit_rate"`
}

// New creates a TagCache with the given capacity and TTL.
func New(maxEntries int, ttl time.Duration) *TagCache {
	return &TagCache{
		entries:    make(map[string]*tagCacheEntry),
		byTag:      make(map[string]map[string]struct{}),
		maxEntries: maxEntries,
		ttl:        ttl,
	}
}

// Get retrieves a cached value. Returns nil and false on miss or
// expiration.
func (c *TagCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, found := c.entries[key]
	if !found {
		c.misses.Add(1)
		return nil, false
	}

	if time.Since(entry.createdAt) > c.ttl {
		c.evict(key)
		c.misses.Add(1)
		return nil, false
	}

	// Move to back (most recently used).
	c.removeFromOrder(key)
	c.order = append(c.order, key)
	c.hits.Add(1)
	return entry.value, true
}

// Put stores a value under the given tags, evicting the oldest entry
// when at capacity.
func (c *TagCache) Put(key string, value any, tags ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, found := c.entries[key]; found {
		c.evict(key)
	}

	for len(c.entries) >= c.maxEntries && len(c.order) > 0 {
		c.evict(c.order[0])
	}

	c.entries[key] = &tagCacheEntry{value: value, tags: tags, createdAt: time.Now()}
	c.order = append(c.order, key)
	for _, tag := range tags {
		keys, found := c.byTag[tag]
		if !found {
			keys = make(map[string]struct{})
			c.byTag[tag] = keys
		}
		keys[key] = struct{}{}
	}
}

// Invalidate removes every entry subscribed to any of the given tags.
func (c *TagCache) Invalidate(tags ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, tag := range tags {
		for key := range c.byTag[tag] {
			c.evict(key)
		}
	}
}

// Len returns the number of live entries.
func (c *TagCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// GetStats returns cache performance statistics.
func (c *TagCache) GetStats() Stats {
	c.mu.Lock()
	entries := len(c.entries)
	maxEntries := c.maxEntries
	c.mu.Unlock()

	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Entries:    entries,
		MaxEntries: maxEntries,
		Hits:       hits,
		Misses:     misses,
		HitRate:    hitRate,
	}
}

// evict removes one key from the entries, the tag index, and the LRU
// order. Caller holds the lock.
func (c *TagCache) evict(key string) {
	entry, found := c.entries[key]
	if !found {
		return
	}
	delete(c.entries, key)
	for _, tag := range entry.tags {
		if keys, tagged := c.byTag[tag]; tagged {
			delete(keys, key)
			if len(keys) == 0 {
				delete(c.byTag, tag)
			}
		}
	}
	c.removeFromOrder(key)
}

func (c *TagCache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
