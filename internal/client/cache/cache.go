// Package cache implements a small in-memory query cache keyed by string.
//
// Services store fetched results under hierarchical keys ("documents",
// "qa/question/<id>", ...) and invalidate the prefixes their mutations
// dirty. Logout clears the whole cache, since any entry may hold data
// scoped to the terminated session.
package cache

import (
	"strings"
	"sync"
	"time"
)

type entry struct {
	value    any
	storedAt time.Time
}

type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Set stores value under key, replacing any previous entry.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, storedAt: c.now()}
}

// Get returns the value stored under key, if any.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// GetFresh returns the value stored under key only when it is younger
// than maxAge.
func (c *Cache) GetFresh(key string, maxAge time.Duration) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.storedAt) > maxAge {
		return nil, false
	}
	return e.value, true
}

// Invalidate removes every entry whose key equals one of the given prefixes
// or starts with "<prefix>/".
func (c *Cache) Invalidate(prefixes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		for _, p := range prefixes {
			if key == p || strings.HasPrefix(key, p+"/") {
				delete(c.entries, key)
				break
			}
		}
	}
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
