// Package engine ties the compiler, the template cache and the SQL
// visitor together behind a single Render call.
package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Konsultn-Engineering/ejsql/ast"
	"github.com/Konsultn-Engineering/ejsql/cache"
	"github.com/Konsultn-Engineering/ejsql/compiler"
	"github.com/Konsultn-Engineering/ejsql/dialect"
	"github.com/Konsultn-Engineering/ejsql/visitor"
)

// Engine renders SQL templates. It is safe for concurrent use; the cache
// is its only shared mutable state.
type Engine struct {
	cache   cache.TemplateCache
	dialect dialect.Dialect
	logger  *slog.Logger
	debug   bool
}

type Option func(*Engine)

// WithCache replaces the engine's template cache.
func WithCache(c cache.TemplateCache) Option {
	return func(e *Engine) { e.cache = c }
}

func WithDialect(d dialect.Dialect) Option {
	return func(e *Engine) { e.dialect = d }
}

// WithLogger enables logging. Engines discard logs by default.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithDebug turns on debug errors for every render, regardless of the
// EvalConfig passed in.
func WithDebug(debug bool) Option {
	return func(e *Engine) { e.debug = debug }
}

// New returns a Postgres engine with its own unbounded template cache.
func New(opts ...Option) *Engine {
	e := &Engine{
		cache:   cache.NewMemoryCache(),
		dialect: dialect.NewPostgresDialect(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewFromConfig builds an engine from cfg; opts are applied afterwards and
// override it.
func NewFromConfig(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d, _ := dialect.ByName(cfg.Dialect)
	var c cache.TemplateCache = cache.NewMemoryCache()
	if cfg.CacheSize > 0 {
		lruCache, err := cache.NewLRUCache(cfg.CacheSize)
		if err != nil {
			return nil, err
		}
		c = lruCache
	}

	base := []Option{WithDialect(d), WithCache(c), WithDebug(cfg.Debug)}
	return New(append(base, opts...)...), nil
}

func (e *Engine) Cache() cache.TemplateCache { return e.cache }

func (e *Engine) Dialect() dialect.Dialect { return e.dialect }

// Render compiles text, or fetches it from the cache, and evaluates it
// against data.
func (e *Engine) Render(text string, data any, rc RenderConfig, ec EvalConfig) (string, error) {
	t, err := e.Template(text, rc)
	if err != nil {
		return "", err
	}
	return e.Execute(t, data, ec)
}

// Template returns the compiled form of text. With rc.Cache set, a
// template already stored under rc.Filename is returned as is, even when
// text differs from the source it was compiled from.
func (e *Engine) Template(text string, rc RenderConfig) (*ast.Template, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	if !rc.Cache {
		return e.compile(text)
	}

	if t, ok := e.cache.Get(rc.Filename); ok {
		e.logger.Debug("template cache hit", slog.String("filename", rc.Filename))
		e.checkSource(rc.Filename, t, text)
		return t, nil
	}

	t, err := e.compile(text)
	if err != nil {
		return nil, err
	}
	stored := e.cache.GetOrPut(rc.Filename, t)
	if stored != t {
		// Another goroutine stored the key first; use its template.
		e.checkSource(rc.Filename, stored, text)
	}
	e.logger.Debug("template cached",
		slog.String("filename", rc.Filename),
		slog.Int("segments", len(stored.Segments)))
	return stored, nil
}

// Execute evaluates a compiled template against data.
func (e *Engine) Execute(t *ast.Template, data any, ec EvalConfig) (string, error) {
	v := visitor.NewSQLVisitor(e.dialect, data, ec.Debug || e.debug)
	defer v.Release()

	out, err := v.Build(t)
	if err != nil {
		return "", fmt.Errorf("rendering template: %w", err)
	}
	return out, nil
}

func (e *Engine) compile(text string) (*ast.Template, error) {
	start := time.Now()
	t, err := compiler.Compile(text)
	if err != nil {
		return nil, fmt.Errorf("compiling template: %w", err)
	}
	e.logger.Debug("template compiled",
		slog.Int("bytes", len(text)),
		slog.Int("expressions", len(t.Expressions())),
		slog.Duration("elapsed", time.Since(start)))
	return t, nil
}

// checkSource warns when a cache key is reused for different text.
func (e *Engine) checkSource(filename string, cached *ast.Template, text string) {
	if cached.Source == text {
		return
	}
	e.logger.Warn("cached template differs from supplied text; using cached template",
		slog.String("filename", filename),
		slog.Uint64("cached_fingerprint", cached.Fingerprint()))
}
