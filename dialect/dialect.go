// Package dialect renders Go values as SQL literals for a target database.
package dialect

import "strings"

type Dialect interface {
	// Name is the identifier used in configuration, e.g. "postgres".
	Name() string
	// QuoteIdentifier quotes a possibly dotted identifier such as "public.users".
	QuoteIdentifier(name string) string
	// QuoteString renders s as a single-quoted SQL string literal.
	QuoteString(s string) string
	// RenderValue renders a scalar as a SQL literal: strings quoted,
	// numbers bare, booleans as TRUE/FALSE and nil as NULL.
	RenderValue(v any) (string, error)
	// EmptyList is the rendering of a list marker over an empty list.
	EmptyList() string
}

// Identifier marks a value as a SQL identifier. A quoted-scalar marker
// renders it through Dialect.QuoteIdentifier instead of as a string literal.
type Identifier string

// EmptyList is valid after IN and matches no row.
const EmptyList = "(NULL)"

// ByName returns the dialect registered under name. An empty name selects
// Postgres.
func ByName(name string) (Dialect, bool) {
	switch strings.ToLower(name) {
	case "", "postgres", "postgresql", "pg":
		return NewPostgresDialect(), true
	case "mysql", "mariadb":
		return NewMySQLDialect(), true
	case "tidb":
		return NewTiDBDialect(), true
	}
	return nil, false
}

// Names lists the dialect names accepted by ByName.
func Names() []string {
	return []string{"postgres", "mysql", "tidb"}
}
