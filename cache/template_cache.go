package cache

import (
	"sync"
	"sync/atomic"

	"github.com/Konsultn-Engineering/ejsql/ast"
)

// TemplateCache stores compiled templates by name. Implementations must be
// safe for concurrent use; inserts are atomic per key.
type TemplateCache interface {
	Get(key string) (*ast.Template, bool)
	Put(key string, t *ast.Template)
	// GetOrPut stores t unless key is already present and returns the
	// stored template. The first write for a key wins.
	GetOrPut(key string, t *ast.Template) *ast.Template
	Len() int
	Purge()
	Stats() Stats
}

// Stats counts lookups made through Get.
type Stats struct {
	Hits   uint64
	Misses uint64
}

type counters struct {
	hits   atomic.Uint64
	misses atomic.Uint64
}

func (c *counters) record(hit bool) {
	if hit {
		c.hits.Add(1)
		return
	}
	c.misses.Add(1)
}

func (c *counters) snapshot() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

type memTemplateCache struct {
	mu   sync.RWMutex
	data map[string]*ast.Template
	counters
}

// NewMemoryCache returns an unbounded cache. Entries live until Purge.
func NewMemoryCache() TemplateCache {
	return &memTemplateCache{
		data: make(map[string]*ast.Template, 64),
	}
}

func (c *memTemplateCache) Get(key string) (*ast.Template, bool) {
	c.mu.RLock()
	t, ok := c.data[key]
	c.mu.RUnlock()
	c.record(ok)
	return t, ok
}

func (c *memTemplateCache) Put(key string, t *ast.Template) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = t
}

func (c *memTemplateCache) GetOrPut(key string, t *ast.Template) *ast.Template {
	c.mu.RLock()
	if existing, ok := c.data[key]; ok {
		c.mu.RUnlock()
		return existing
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if existing, ok := c.data[key]; ok {
		return existing
	}
	c.data[key] = t
	return t
}

func (c *memTemplateCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

func (c *memTemplateCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.data)
}

func (c *memTemplateCache) Stats() Stats {
	return c.snapshot()
}
