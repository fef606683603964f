// Package ejsql renders SQL templates with typed interpolation markers.
//
//	<%= path %>  quoted scalar:  'O''Brien', 42, TRUE, NULL
//	<%~ path %>  quoted list:    ('a', 'b'); an empty list renders (NULL)
//	<%- path %>  raw text:       inserted as is, for trusted identifiers only
//
// Paths are dotted lookups into the data value, which may be a map, a
// struct or any nesting of the two:
//
//	sql, err := ejsql.Render(
//		"SELECT * FROM users WHERE user_id IN <%~ ids %>",
//		map[string]any{"ids": []string{"motojouya", "nick"}},
//		ejsql.WithCache("users-by-id"),
//	)
//
// Package-level functions share one process-wide engine whose template
// cache is unbounded. Build a dedicated engine with engine.New for an
// isolated cache, another dialect or logging.
package ejsql

import (
	"github.com/Konsultn-Engineering/ejsql/dialect"
	"github.com/Konsultn-Engineering/ejsql/engine"
	"github.com/Konsultn-Engineering/ejsql/errs"
)

type (
	RenderConfig = engine.RenderConfig
	EvalConfig   = engine.EvalConfig
	Identifier   = dialect.Identifier
)

var (
	ErrSyntax       = errs.ErrSyntax
	ErrMissingField = errs.ErrMissingField
	ErrTypeMismatch = errs.ErrTypeMismatch
	ErrConfig       = errs.ErrConfig
)

var defaultEngine = engine.New()

// Default returns the engine behind the package-level functions.
func Default() *engine.Engine {
	return defaultEngine
}

// Ident marks name as an identifier: a quoted-scalar marker renders it
// as "name" (Postgres) rather than as a string literal.
func Ident(name string) Identifier {
	return Identifier(name)
}

type options struct {
	render RenderConfig
	eval   EvalConfig
}

type Option func(*options)

// WithCache caches the compiled template under filename.
func WithCache(filename string) Option {
	return func(o *options) {
		o.render.Cache = true
		o.render.Filename = filename
	}
}

// WithDebug adds marker and template context to evaluation errors.
func WithDebug() Option {
	return func(o *options) { o.eval.Debug = true }
}

func WithRenderConfig(rc RenderConfig) Option {
	return func(o *options) { o.render = rc }
}

func WithEvalConfig(ec EvalConfig) Option {
	return func(o *options) { o.eval = ec }
}

// Render renders text against data with the default engine.
func Render(text string, data any, opts ...Option) (string, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return defaultEngine.Render(text, data, o.render, o.eval)
}

// MustRender is like Render but panics on error.
func MustRender(text string, data any, opts ...Option) string {
	out, err := Render(text, data, opts...)
	if err != nil {
		panic(err)
	}
	return out
}
