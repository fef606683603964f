// Package compiler turns SQL template text into an ast.Template.
//
// Three markers are recognized, each closed by "%>":
//
//	<%= path %>   quoted scalar
//	<%~ path %>   quoted, parenthesized list
//	<%- path %>   raw, unescaped
//
// "<%%" is an escaped opener and yields the literal text "<%".
package compiler

import (
	"strings"
	"unicode"

	"github.com/Konsultn-Engineering/ejsql/ast"
	"github.com/Konsultn-Engineering/ejsql/errs"
)

const (
	openDelim  = "<%"
	closeDelim = "%>"
	escapeChar = '%'
)

// Compile scans source left to right and returns the compiled template.
// It has no side effects and always yields an equivalent template for the
// same input.
func Compile(source string) (*ast.Template, error) {
	s := scanner{src: source}
	if err := s.run(); err != nil {
		return nil, err
	}
	return ast.NewTemplate(source, s.segments), nil
}

// MustCompile is like Compile but panics on error. Intended for templates
// fixed at build time.
func MustCompile(source string) *ast.Template {
	t, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return t
}

type scanner struct {
	src      string
	pos      int
	lit      strings.Builder
	segments []ast.Node
}

func (s *scanner) run() error {
	for {
		i := strings.Index(s.src[s.pos:], openDelim)
		if i < 0 {
			s.lit.WriteString(s.src[s.pos:])
			s.flush()
			return nil
		}

		start := s.pos + i
		s.lit.WriteString(s.src[s.pos:start])

		if start+len(openDelim) >= len(s.src) {
			return errs.NewSyntaxError(s.src, start, "unterminated marker")
		}

		sigil := s.src[start+len(openDelim)]
		if sigil == escapeChar {
			s.lit.WriteString(openDelim)
			s.pos = start + len(openDelim) + 1
			continue
		}

		if err := s.marker(start, sigil); err != nil {
			return err
		}
	}
}

// marker consumes one expression marker beginning at start.
func (s *scanner) marker(start int, sigil byte) error {
	kind, ok := ast.KindForSigil(sigil)
	if !ok {
		return errs.NewSyntaxError(s.src, start, "unrecognized marker sigil %q", sigil)
	}

	bodyStart := start + len(openDelim) + 1
	end := strings.Index(s.src[bodyStart:], closeDelim)
	if end < 0 {
		return errs.NewSyntaxError(s.src, start, "unterminated marker %q", s.src[start:bodyStart])
	}
	body := s.src[bodyStart : bodyStart+end]

	if j := strings.Index(body, openDelim); j >= 0 {
		return errs.NewSyntaxError(s.src, bodyStart+j, "nested marker inside %q", s.src[start:bodyStart])
	}

	path := strings.TrimSpace(body)
	if msg := checkPath(path); msg != "" {
		return errs.NewSyntaxError(s.src, bodyStart, "%s in marker %q", msg, s.src[start:bodyStart+end+len(closeDelim)])
	}

	s.flush()
	markerEnd := bodyStart + end + len(closeDelim)
	s.segments = append(s.segments, ast.NewExpression(kind, path, s.src[start:markerEnd], start))
	s.pos = markerEnd
	return nil
}

func (s *scanner) flush() {
	if s.lit.Len() == 0 {
		return
	}
	s.segments = append(s.segments, ast.NewLiteral(s.lit.String()))
	s.lit.Reset()
}

// checkPath validates a dotted field path and returns a description of
// the first problem, or "" when the path is well formed.
func checkPath(path string) string {
	if path == "" {
		return "empty expression"
	}
	for _, part := range strings.Split(path, ".") {
		if part == "" {
			return "empty path segment"
		}
		for _, r := range part {
			if !isPathRune(r) {
				return "invalid character " + quoteRune(r) + " in path"
			}
		}
	}
	return ""
}

func isPathRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func quoteRune(r rune) string {
	return "'" + string(r) + "'"
}
