// Package query manages a set of named SQL templates, such as the .sql
// files of an embedded directory, rendered through one engine.
package query

import (
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"github.com/Konsultn-Engineering/ejsql/engine"
	"github.com/Konsultn-Engineering/ejsql/errs"
)

// Set maps template names to their source text. Every template is
// compiled when added and cached in the engine under its name, so later
// renders never recompile.
type Set struct {
	engine *engine.Engine
	debug  bool

	mu      sync.RWMutex
	sources map[string]string
}

type SetOption func(*Set)

// WithDebug renders every template of the set in debug mode.
func WithDebug() SetOption {
	return func(s *Set) { s.debug = true }
}

func NewSet(e *engine.Engine, opts ...SetOption) *Set {
	s := &Set{
		engine:  e,
		sources: make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add compiles text and registers it under name. Re-adding identical text
// is a no-op; reusing a name for different text is a ConfigError, since
// the engine cache would keep serving the first template.
func (s *Set) Add(name, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.sources[name]; ok {
		if existing == text {
			return nil
		}
		return &errs.ConfigError{Field: "name", Message: fmt.Sprintf("template %q already registered with different text", name)}
	}

	if _, err := s.engine.Template(text, s.renderConfig(name)); err != nil {
		return fmt.Errorf("template %s: %w", name, err)
	}
	s.sources[name] = text
	return nil
}

// LoadFS adds every file of fsys matching pattern, named by its path.
func (s *Set) LoadFS(fsys fs.FS, pattern string) error {
	const errCtx = "loading templates"

	paths, err := fs.Glob(fsys, pattern)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("%s: no files match %q", errCtx, pattern)
	}

	for _, path := range paths {
		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}
		if err := s.Add(path, string(content)); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}
	}
	return nil
}

// Render renders the template registered under name.
func (s *Set) Render(name string, data any) (string, error) {
	s.mu.RLock()
	text, ok := s.sources[name]
	s.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("template %q not found", name)
	}
	return s.engine.Render(text, data, s.renderConfig(name), engine.EvalConfig{Debug: s.debug})
}

// Names lists registered templates in sorted order.
func (s *Set) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.sources))
	for name := range s.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fields lists the data paths the named template reads.
func (s *Set) Fields(name string) ([]string, error) {
	s.mu.RLock()
	text, ok := s.sources[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}

	t, err := s.engine.Template(text, s.renderConfig(name))
	if err != nil {
		return nil, err
	}
	return t.Paths(), nil
}

func (s *Set) renderConfig(name string) engine.RenderConfig {
	return engine.RenderConfig{Cache: true, Filename: name}
}
