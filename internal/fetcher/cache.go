package fetcher

import (
	"context"
	"sync"

	"github.com/qepting91/dex-ai/internal/domain"
)

// Cache maps reference URL to resolved record. One per view session.
type Cache struct {
	mu      sync.RWMutex
	records map[string]domain.Record
}

func NewCache() *Cache {
	return &Cache{records: make(map[string]domain.Record)}
}

func (c *Cache) Get(url string) (domain.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.records[url]
	return r, ok
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Reset drops every entry.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = make(map[string]domain.Record)
}

// Merge adds entries without evicting. It refuses to write once ctx is
// done, so a canceled invocation can never land data after a Reset.
func (c *Cache) Merge(ctx context.Context, entries map[string]domain.Record) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ctx.Err() != nil {
		return false
	}
	for url, r := range entries {
		c.records[url] = r
	}
	return true
}

// Records returns cached records for urls in input order, skipping misses.
func (c *Cache) Records(urls []string) []domain.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Record, 0, len(urls))
	for _, u := range urls {
		if r, ok := c.records[u]; ok {
			out = append(out, r)
		}
	}
	return out
}

func (c *Cache) lookup(urls []string) (hits map[string]domain.Record, missing []string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	hits = make(map[string]domain.Record)
	seen := make(map[string]bool)
	for _, u := range urls {
		if r, ok := c.records[u]; ok {
			hits[u] = r
			continue
		}
		if !seen[u] {
			seen[u] = true
			missing = append(missing, u)
		}
	}
	return hits, missing
}
