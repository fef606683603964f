// Package visitor renders compiled templates into SQL text.
package visitor

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/Konsultn-Engineering/ejsql/ast"
	"github.com/Konsultn-Engineering/ejsql/dialect"
	"github.com/Konsultn-Engineering/ejsql/errs"
	"github.com/Konsultn-Engineering/ejsql/schema"
)

var visitorPool = sync.Pool{
	New: func() any {
		return &SQLVisitor{}
	},
}

// SQLVisitor evaluates template segments against one data value and
// accumulates the output. It is not safe for concurrent use; obtain one
// per render with NewSQLVisitor and Release it afterwards.
type SQLVisitor struct {
	sb      strings.Builder
	dialect dialect.Dialect
	data    any
	debug   bool
	source  string
}

var _ ast.Visitor = (*SQLVisitor)(nil)

func NewSQLVisitor(d dialect.Dialect, data any, debug bool) *SQLVisitor {
	v := visitorPool.Get().(*SQLVisitor)
	v.dialect = d
	v.data = data
	v.debug = debug
	v.sb.Reset()
	return v
}

func (v *SQLVisitor) Release() {
	v.dialect = nil
	v.data = nil
	v.source = ""
	v.sb.Reset()
	visitorPool.Put(v)
}

// Build renders t. On error the partial output is discarded and "" is
// returned.
func (v *SQLVisitor) Build(t *ast.Template) (string, error) {
	v.sb.Reset()
	v.sb.Grow(len(t.Source))
	v.source = t.Source

	if err := t.Accept(v); err != nil {
		v.sb.Reset()
		return "", err
	}
	return v.sb.String(), nil
}

func (v *SQLVisitor) VisitLiteral(l *ast.Literal) error {
	v.sb.WriteString(l.Text)
	return nil
}

func (v *SQLVisitor) VisitExpression(e *ast.Expression) error {
	res := schema.ResolveParts(v.data, e.Parts)
	if !res.Found {
		return v.missing(e)
	}

	switch e.Kind {
	case ast.ScalarQuoted:
		return v.writeScalar(e, res.Value)
	case ast.ListQuoted:
		return v.writeList(e, res.Value)
	case ast.Raw:
		return v.writeRaw(e, res.Value)
	}
	return fmt.Errorf("unknown expression kind %v for %q", e.Kind, e.Path)
}

// writeScalar quotes strings and renders other scalars as bare literals.
func (v *SQLVisitor) writeScalar(e *ast.Expression, val schema.Value) error {
	switch val.Kind() {
	case schema.KindNull, schema.KindScalar:
	default:
		return v.mismatch(e, "a scalar", val)
	}

	lit, err := v.dialect.RenderValue(val.Interface())
	if err != nil {
		return fmt.Errorf("rendering %q: %w", e.Path, err)
	}
	v.sb.WriteString(lit)
	return nil
}

// writeList renders "(a, b, c)" with each element quoted as a scalar.
func (v *SQLVisitor) writeList(e *ast.Expression, val schema.Value) error {
	if val.Kind() != schema.KindList {
		return v.mismatch(e, "a list", val)
	}

	n := val.Len()
	if n == 0 {
		v.sb.WriteString(v.dialect.EmptyList())
		return nil
	}

	v.sb.WriteByte('(')
	for i := 0; i < n; i++ {
		if i > 0 {
			v.sb.WriteString(", ")
		}
		elem := val.Index(i)
		switch elem.Kind() {
		case schema.KindNull, schema.KindScalar:
		default:
			return v.mismatch(e, "a list of scalars", elem)
		}
		lit, err := v.dialect.RenderValue(elem.Interface())
		if err != nil {
			return fmt.Errorf("rendering %q[%d]: %w", e.Path, i, err)
		}
		v.sb.WriteString(lit)
	}
	v.sb.WriteByte(')')
	return nil
}

// writeRaw appends the value's plain string form. No quoting or escaping
// is applied, so raw markers must only carry trusted text.
func (v *SQLVisitor) writeRaw(e *ast.Expression, val schema.Value) error {
	switch val.Kind() {
	case schema.KindNull:
		return nil
	case schema.KindScalar:
		v.sb.WriteString(rawString(val.Interface()))
		return nil
	}
	return v.mismatch(e, "a scalar", val)
}

func rawString(x any) string {
	switch s := x.(type) {
	case string:
		return s
	case dialect.Identifier:
		return string(s)
	case []byte:
		return string(s)
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case fmt.Stringer:
		return s.String()
	case driver.Valuer:
		if inner, err := s.Value(); err == nil {
			if _, again := inner.(driver.Valuer); !again {
				return rawString(inner)
			}
		}
	case nil:
		return ""
	}
	return fmt.Sprint(x)
}

func (v *SQLVisitor) missing(e *ast.Expression) error {
	err := &errs.MissingFieldError{Kind: e.Kind.String(), Path: e.Path}
	if v.debug {
		err.Debug = errs.NewDebugContext(v.source, e.Offset, e.Marker)
		err.Debug.Suggestion = schema.Suggest(v.data, e.Parts)
	}
	return err
}

func (v *SQLVisitor) mismatch(e *ast.Expression, expected string, got schema.Value) error {
	err := &errs.TypeMismatchError{
		Kind:     e.Kind.String(),
		Path:     e.Path,
		Expected: expected,
		Actual:   got.Kind().String(),
	}
	if v.debug {
		err.Actual = got.TypeName()
		err.Debug = errs.NewDebugContext(v.source, e.Offset, e.Marker)
	}
	return err
}
