package ast

import (
	"strings"

	"github.com/Konsultn-Engineering/ejsql/utils"
)

// ExprKind selects the escaping rule applied to an expression's value.
type ExprKind uint8

const (
	ScalarQuoted ExprKind = iota // <%= path %>
	ListQuoted                   // <%~ path %>
	Raw                          // <%- path %>
)

func (k ExprKind) String() string {
	switch k {
	case ScalarQuoted:
		return "scalar"
	case ListQuoted:
		return "list"
	case Raw:
		return "raw"
	default:
		return "unknown"
	}
}

// Sigil returns the character that follows "<%" for this kind.
func (k ExprKind) Sigil() byte {
	switch k {
	case ListQuoted:
		return '~'
	case Raw:
		return '-'
	default:
		return '='
	}
}

// KindForSigil maps a marker sigil to its expression kind.
func KindForSigil(c byte) (ExprKind, bool) {
	switch c {
	case '=':
		return ScalarQuoted, true
	case '~':
		return ListQuoted, true
	case '-':
		return Raw, true
	}
	return 0, false
}

// Expression is a marker slot. Path is the trimmed dotted field path,
// Parts its pre-split segments. Marker and Offset locate the marker in
// the template source for diagnostics.
type Expression struct {
	Kind   ExprKind
	Path   string
	Parts  []string
	Marker string
	Offset int
}

func NewExpression(kind ExprKind, path, marker string, offset int) *Expression {
	return &Expression{
		Kind:   kind,
		Path:   path,
		Parts:  strings.Split(path, "."),
		Marker: marker,
		Offset: offset,
	}
}

func (e *Expression) Type() NodeType           { return NodeExpression }
func (e *Expression) Accept(vis Visitor) error { return vis.VisitExpression(e) }
func (e *Expression) Fingerprint() uint64 {
	return utils.Mix64(utils.FingerprintString("expr:"+e.Kind.String()), utils.FingerprintString(e.Path))
}
