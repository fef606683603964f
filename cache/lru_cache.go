package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Konsultn-Engineering/ejsql/ast"
)

// LRUCache bounds the number of compiled templates, evicting the least
// recently used entry once full.
type LRUCache struct {
	cache *lru.Cache[string, *ast.Template]
	counters
}

func NewLRUCache(size int) (*LRUCache, error) {
	c, err := lru.New[string, *ast.Template](size)
	if err != nil {
		return nil, fmt.Errorf("template cache size %d: %w", size, err)
	}
	return &LRUCache{cache: c}, nil
}

func (c *LRUCache) Get(key string) (*ast.Template, bool) {
	t, ok := c.cache.Get(key)
	c.record(ok)
	return t, ok
}

func (c *LRUCache) Put(key string, t *ast.Template) {
	c.cache.Add(key, t)
}

// GetOrPut relies on PeekOrAdd, which checks and inserts under the
// cache's own lock.
func (c *LRUCache) GetOrPut(key string, t *ast.Template) *ast.Template {
	existing, ok, _ := c.cache.PeekOrAdd(key, t)
	if ok {
		c.cache.Get(key) // bump recency
		return existing
	}
	return t
}

func (c *LRUCache) Len() int {
	return c.cache.Len()
}

func (c *LRUCache) Purge() {
	c.cache.Purge()
}

func (c *LRUCache) Stats() Stats {
	return c.snapshot()
}
