package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konsultn-Engineering/ejsql/ast"
	"github.com/Konsultn-Engineering/ejsql/errs"
)

func TestCompile_Segments(t *testing.T) {
	tmpl, err := Compile("SELECT * FROM <%- table %> WHERE id = <%= id %> AND tag IN <%~ tags %>;")
	require.NoError(t, err)
	require.Len(t, tmpl.Segments, 7)

	assert.Equal(t, &ast.Literal{Text: "SELECT * FROM "}, tmpl.Segments[0])

	table := tmpl.Segments[1].(*ast.Expression)
	assert.Equal(t, ast.Raw, table.Kind)
	assert.Equal(t, "table", table.Path)
	assert.Equal(t, "<%- table %>", table.Marker)
	assert.Equal(t, 14, table.Offset)

	id := tmpl.Segments[3].(*ast.Expression)
	assert.Equal(t, ast.ScalarQuoted, id.Kind)
	assert.Equal(t, "id", id.Path)

	tags := tmpl.Segments[5].(*ast.Expression)
	assert.Equal(t, ast.ListQuoted, tags.Kind)
	assert.Equal(t, "tags", tags.Path)

	assert.Equal(t, &ast.Literal{Text: ";"}, tmpl.Segments[6])
}

func TestCompile_NoMarkers(t *testing.T) {
	for _, src := range []string{"", "SELECT 1", "SELECT '%>' AS x", "a < % b"} {
		tmpl, err := Compile(src)
		require.NoError(t, err)
		assert.Equal(t, src, tmpl.Source)
		assert.Empty(t, tmpl.Expressions())
		if src == "" {
			assert.Empty(t, tmpl.Segments)
		} else {
			assert.Equal(t, []ast.Node{&ast.Literal{Text: src}}, tmpl.Segments)
		}
	}
}

func TestCompile_WhitespaceAndDottedPaths(t *testing.T) {
	tmpl, err := Compile("<%=user.address.city%><%~\n\tfilter.ids\n%><%-   t_1.$col   %>")
	require.NoError(t, err)

	exprs := tmpl.Expressions()
	require.Len(t, exprs, 3)
	assert.Equal(t, "user.address.city", exprs[0].Path)
	assert.Equal(t, []string{"user", "address", "city"}, exprs[0].Parts)
	assert.Equal(t, "filter.ids", exprs[1].Path)
	assert.Equal(t, "t_1.$col", exprs[2].Path)
	assert.Equal(t, []string{"t_1", "$col"}, exprs[2].Parts)
}

func TestCompile_EscapedOpener(t *testing.T) {
	tmpl, err := Compile("SELECT '<%%' || <%= a %>")
	require.NoError(t, err)
	require.Len(t, tmpl.Segments, 2)
	assert.Equal(t, &ast.Literal{Text: "SELECT '<%' || "}, tmpl.Segments[0])
}

func TestCompile_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		line    int
		column  int
		message string
	}{
		{"unterminated", "SELECT <%= a", 1, 8, "unterminated marker"},
		{"opener at end", "SELECT <%", 1, 8, "unterminated marker"},
		{"unknown sigil", "SELECT <%# a %>", 1, 8, "unrecognized marker sigil"},
		{"bare opener", "SELECT <% a %>", 1, 8, "unrecognized marker sigil"},
		{"nested", "SELECT <%= a <%= b %> %>", 1, 14, "nested marker"},
		{"empty", "SELECT <%=   %>", 1, 11, "empty expression"},
		{"empty segment", "SELECT <%= a..b %>", 1, 11, "empty path segment"},
		{"trailing dot", "SELECT <%= a. %>", 1, 11, "empty path segment"},
		{"space in path", "SELECT <%= a b %>", 1, 11, "invalid character ' ' in path"},
		{"operator in path", "SELECT <%= a+1 %>", 1, 11, "invalid character '+' in path"},
		{"second line", "SELECT 1\nWHERE x = <%~ ids", 2, 11, "unterminated marker"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Compile(tt.src)
			require.Error(t, err)
			assert.Nil(t, tmpl)
			assert.ErrorIs(t, err, errs.ErrSyntax)

			var se *errs.SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.line, se.Line)
			assert.Equal(t, tt.column, se.Column)
			assert.Contains(t, se.Message, tt.message)
		})
	}
}

func TestCompile_Deterministic(t *testing.T) {
	src := "SELECT <%- col %> FROM t WHERE id IN <%~ ids %>"
	a, err := Compile(src)
	require.NoError(t, err)
	b, err := Compile(src)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestTemplateString_RoundTrip(t *testing.T) {
	src := "SELECT '<%%' AS lit, <%-col%> FROM t WHERE a = <%=  a %> AND b IN <%~b%>"
	tmpl := MustCompile(src)

	canonical := tmpl.String()
	assert.Equal(t, "SELECT '<%%' AS lit, <%- col %> FROM t WHERE a = <%= a %> AND b IN <%~ b %>", canonical)

	again := MustCompile(canonical)
	assert.Equal(t, len(tmpl.Segments), len(again.Segments))
	for i := range tmpl.Segments {
		assert.Equal(t, tmpl.Segments[i].Fingerprint(), again.Segments[i].Fingerprint())
	}
}

func TestMustCompile_Panics(t *testing.T) {
	assert.Panics(t, func() { MustCompile("<%= a") })
}

func BenchmarkCompile(b *testing.B) {
	src := strings.Repeat("SELECT <%- col %> FROM t WHERE id = <%= id %> AND tag IN <%~ tags %>\n", 20)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Compile(src); err != nil {
			b.Fatal(err)
		}
	}
}
