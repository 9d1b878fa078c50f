package store

import (
	"sync"

	"github.com/petalworks/storefront/internal/order"
)

// Cache is an in-process key-value cache of order records, keyed "order_<id>".
// It exists so an order stays re-displayable when the document store is
// unreachable. It is a read-through fallback only: the remote write is the
// confirmation of success, never the cache.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]order.Order
}

// NewCache creates an empty order cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]order.Order)}
}

// Put stores a copy of the order. Call it only after the remote write succeeded.
func (c *Cache) Put(o *order.Order) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(o.ID)] = *o
}

// Get returns a copy of the cached order and whether it was present.
func (c *Cache) Get(id string) (*order.Order, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	o, ok := c.entries[cacheKey(id)]
	if !ok {
		return nil, false
	}
	return &o, true
}

func cacheKey(id string) string {
	return "order_" + id
}
