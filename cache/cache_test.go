package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konsultn-Engineering/ejsql/ast"
)

func tmpl(src string) *ast.Template {
	return ast.NewTemplate(src, []ast.Node{ast.NewLiteral(src)})
}

func newCaches(t *testing.T) map[string]TemplateCache {
	t.Helper()
	lruCache, err := NewLRUCache(16)
	require.NoError(t, err)
	return map[string]TemplateCache{
		"memory": NewMemoryCache(),
		"lru":    lruCache,
	}
}

func TestTemplateCache_GetPut(t *testing.T) {
	for name, c := range newCaches(t) {
		t.Run(name, func(t *testing.T) {
			_, ok := c.Get("intest")
			assert.False(t, ok)

			a := tmpl("SELECT 1")
			c.Put("intest", a)

			got, ok := c.Get("intest")
			require.True(t, ok)
			assert.Same(t, a, got)
			assert.Equal(t, 1, c.Len())

			assert.Equal(t, Stats{Hits: 1, Misses: 1}, c.Stats())

			c.Purge()
			assert.Equal(t, 0, c.Len())
		})
	}
}

func TestTemplateCache_GetOrPutFirstWriteWins(t *testing.T) {
	for name, c := range newCaches(t) {
		t.Run(name, func(t *testing.T) {
			first := tmpl("SELECT 1")
			second := tmpl("SELECT 2")

			assert.Same(t, first, c.GetOrPut("k", first))
			assert.Same(t, first, c.GetOrPut("k", second))

			got, _ := c.Get("k")
			assert.Same(t, first, got)
			assert.Equal(t, Stats{Hits: 1}, c.Stats(), "only Get is counted")
		})
	}
}

func TestTemplateCache_ConcurrentGetOrPut(t *testing.T) {
	for name, c := range newCaches(t) {
		t.Run(name, func(t *testing.T) {
			const workers = 32
			results := make([]*ast.Template, workers)

			var wg sync.WaitGroup
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					results[i] = c.GetOrPut("shared", tmpl(fmt.Sprintf("SELECT %d", i)))
				}(i)
			}
			wg.Wait()

			stored, ok := c.Get("shared")
			require.True(t, ok)
			for _, r := range results {
				assert.Same(t, stored, r)
			}
			assert.Equal(t, 1, c.Len())
		})
	}
}

func TestLRUCache_Evicts(t *testing.T) {
	c, err := NewLRUCache(2)
	require.NoError(t, err)

	c.Put("a", tmpl("a"))
	c.Put("b", tmpl("b"))
	_, _ = c.Get("a")
	c.Put("c", tmpl("c"))

	_, ok := c.Get("b")
	assert.False(t, ok, "least recently used entry is evicted")
	_, ok = c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestNewLRUCache_InvalidSize(t *testing.T) {
	_, err := NewLRUCache(0)
	assert.Error(t, err)
}
