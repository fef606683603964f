package ast

import (
	"strings"

	"github.com/Konsultn-Engineering/ejsql/utils"
)

// Template is a compiled template: literal text interleaved with
// expression slots, in source order. A Template is never mutated after
// NewTemplate returns, so it may be shared between goroutines.
type Template struct {
	Source   string
	Segments []Node

	fingerprint uint64
}

func NewTemplate(source string, segments []Node) *Template {
	return &Template{
		Source:      source,
		Segments:    segments,
		fingerprint: utils.FingerprintString(source),
	}
}

// Fingerprint identifies the source text the template was compiled from.
func (t *Template) Fingerprint() uint64 {
	return t.fingerprint
}

// Accept walks every segment in order, stopping at the first error.
func (t *Template) Accept(v Visitor) error {
	for _, seg := range t.Segments {
		if err := seg.Accept(v); err != nil {
			return err
		}
	}
	return nil
}

// Expressions returns the expression slots in source order.
func (t *Template) Expressions() []*Expression {
	var out []*Expression
	for _, seg := range t.Segments {
		if e, ok := seg.(*Expression); ok {
			out = append(out, e)
		}
	}
	return out
}

// Paths returns the distinct field paths the template reads.
func (t *Template) Paths() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range t.Expressions() {
		if _, ok := seen[e.Path]; ok {
			continue
		}
		seen[e.Path] = struct{}{}
		out = append(out, e.Path)
	}
	return out
}

// String reassembles the template in canonical marker form.
func (t *Template) String() string {
	var sb strings.Builder
	sb.Grow(len(t.Source))
	for _, seg := range t.Segments {
		switch n := seg.(type) {
		case *Literal:
			sb.WriteString(strings.ReplaceAll(n.Text, "<%", "<%%"))
		case *Expression:
			sb.WriteString("<%")
			sb.WriteByte(n.Kind.Sigil())
			sb.WriteByte(' ')
			sb.WriteString(n.Path)
			sb.WriteString(" %>")
		}
	}
	return sb.String()
}
