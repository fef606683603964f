// Package errs defines the error kinds raised while compiling and rendering
// SQL templates. Each concrete type matches its sentinel through errors.Is,
// so callers can branch on the kind without type assertions.
package errs

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrSyntax       = errors.New("template syntax error")
	ErrMissingField = errors.New("missing field")
	ErrTypeMismatch = errors.New("type mismatch")
	ErrConfig       = errors.New("invalid configuration")
)

// DebugContext is attached to evaluation errors when debug mode is on.
type DebugContext struct {
	Marker     string // the marker as written, e.g. "<%= user.id %>"
	Context    string // template text around the marker
	Suggestion string // a nearby key that does exist, if any
}

func (d *DebugContext) String() string {
	if d == nil {
		return ""
	}
	s := fmt.Sprintf(" in %s near %q", d.Marker, d.Context)
	if d.Suggestion != "" {
		s += fmt.Sprintf(" (did you mean %q?)", d.Suggestion)
	}
	return s
}

// ContextWindow is how many bytes of template text on each side of a
// marker are kept in a DebugContext.
const ContextWindow = 32

// NewDebugContext captures the marker at offset in source together with
// up to ContextWindow bytes either side, cut on rune boundaries.
func NewDebugContext(source string, offset int, marker string) *DebugContext {
	start := offset - ContextWindow
	if start < 0 {
		start = 0
	}
	for start > 0 && start < len(source) && !utf8.RuneStart(source[start]) {
		start++
	}

	end := offset + len(marker) + ContextWindow
	if end > len(source) {
		end = len(source)
	}
	for end < len(source) && !utf8.RuneStart(source[end]) {
		end--
	}

	return &DebugContext{
		Marker:  marker,
		Context: source[start:end],
	}
}

// SyntaxError reports a malformed or unterminated marker.
type SyntaxError struct {
	Message string
	Offset  int
	Line    int
	Column  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("template syntax error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }

// NewSyntaxError builds a SyntaxError for the byte offset in source.
// Lines and columns are 1-based; columns count runes.
func NewSyntaxError(source string, offset int, format string, args ...any) *SyntaxError {
	if offset > len(source) {
		offset = len(source)
	}
	prefix := source[:offset]
	line := strings.Count(prefix, "\n") + 1
	lineStart := strings.LastIndexByte(prefix, '\n') + 1

	return &SyntaxError{
		Message: fmt.Sprintf(format, args...),
		Offset:  offset,
		Line:    line,
		Column:  utf8.RuneCountInString(prefix[lineStart:]) + 1,
	}
}

// MissingFieldError reports a path that does not resolve in the data.
type MissingFieldError struct {
	Kind  string
	Path  string
	Debug *DebugContext
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q for %s marker%s", e.Path, e.Kind, e.Debug.String())
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

// TypeMismatchError reports a value whose shape does not fit its marker,
// such as a scalar given to a list marker.
type TypeMismatchError struct {
	Kind     string
	Path     string
	Expected string
	Actual   string
	Debug    *DebugContext
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch for %q: %s marker expects %s, got %s%s",
		e.Path, e.Kind, e.Expected, e.Actual, e.Debug.String())
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// ConfigError reports an invalid render or engine configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }
