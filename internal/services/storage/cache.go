package storage

import (
	"sync"

	"github.com/phambaophuc/pdf-watermark/internal/models"
)

// CacheStats counts lookups of a PageCache.
type CacheStats struct {
	Hits   int `json:"hits"`
	Misses int `json:"misses"`
}

// PageCache memoises one value per page size. It lives for the processing
// of a single document and is never shared between documents.
type PageCache[V any] struct {
	mu      sync.Mutex
	entries map[models.Rect]V
	stats   CacheStats
}

func NewPageCache[V any]() *PageCache[V] {
	return &PageCache[V]{entries: make(map[models.Rect]V)}
}

// GetOrCreate returns the value stored for size, calling produce on the
// first request. A failed produce call stores nothing, so the next request
// for the same size tries again.
func (c *PageCache[V]) GetOrCreate(size models.Rect, produce func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.entries[size]; ok {
		c.stats.Hits++
		return v, nil
	}

	c.stats.Misses++
	v, err := produce()
	if err != nil {
		var zero V
		return zero, err
	}
	c.entries[size] = v
	return v, nil
}

// Lookup returns the stored value without producing one.
func (c *PageCache[V]) Lookup(size models.Rect) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[size]
	return v, ok
}

func (c *PageCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *PageCache[V]) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
