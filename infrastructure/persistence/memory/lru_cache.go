// Package memory provides the in-process cache tier for insight
// bundles. Eviction is always safe because a cache key fully
// determines its bundle.
package memory

import (
	"container/list"
	"sync"

	"stellium-backend/domain/insights"
)

// LRUBundleCache is a bounded in-memory cache for insight bundles.
// The least recently used entry is evicted when capacity is exceeded.
type LRUBundleCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	entries  map[string]*list.Element
}

type lruEntry struct {
	key    string
	bundle *insights.InsightBundle
}

// NewLRUBundleCache creates a cache holding at most capacity bundles
func NewLRUBundleCache(capacity int) *LRUBundleCache {
	if capacity < 1 {
		capacity = 1
	}
	return &LRUBundleCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

// Get retrieves a bundle and marks it as recently used
func (c *LRUBundleCache) Get(key string) (*insights.InsightBundle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*lruEntry).bundle, true
}

// Set stores a bundle, evicting the least recently used entry when
// the cache is full
func (c *LRUBundleCache) Set(key string, bundle *insights.InsightBundle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		elem.Value.(*lruEntry).bundle = bundle
		c.order.MoveToFront(elem)
		return
	}

	elem := c.order.PushFront(&lruEntry{key: key, bundle: bundle})
	c.entries[key] = elem

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*lruEntry).key)
		}
	}
}

// Len returns the number of cached bundles
func (c *LRUBundleCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
