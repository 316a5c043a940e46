// Package cache provides the in-process TTL cache fronting hot,
// read-mostly Scheduling lookups (airship reads when scheduling a flight).
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache wraps go-cache with a fixed default TTL and cleanup interval.
type Cache struct {
	inner *gocache.Cache
}

func New(ttl time.Duration) *Cache {
	return &Cache{inner: gocache.New(ttl, 2*ttl)}
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.inner.Get(key)
}

func (c *Cache) Set(key string, value interface{}) {
	c.inner.SetDefault(key, value)
}

func (c *Cache) Delete(key string) {
	c.inner.Delete(key)
}
