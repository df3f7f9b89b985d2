package region

import (
	"sync"

	"napsync/internal/model"
)

// Cache resolved region/zone per cluster, owned by one workflow invocation.
type Cache struct {
	mu      sync.Mutex
	entries map[string]model.RegionZone
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{entries: make(map[string]model.RegionZone)}
}

// Get cached value of a cluster
func (c *Cache) Get(cluster string) (model.RegionZone, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rz, ok := c.entries[cluster]
	return rz, ok
}

// Put stores the resolved value of a cluster
func (c *Cache) Put(cluster string, rz model.RegionZone) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cluster] = rz
}

// Len number of cached clusters
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
