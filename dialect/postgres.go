package dialect

import (
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

type Postgres struct{}

func NewPostgresDialect() Dialect {
	return &Postgres{}
}

func (p Postgres) Name() string {
	return "postgres"
}

// QuoteIdentifier quotes each dot-separated part with pgx's sanitizer,
// doubling embedded double quotes.
func (p Postgres) QuoteIdentifier(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}

// QuoteString assumes standard_conforming_strings, so only the single
// quote needs escaping.
func (p Postgres) QuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func (p Postgres) RenderValue(v any) (string, error) {
	return renderScalar(p, v)
}

func (p Postgres) EmptyList() string {
	return EmptyList
}

func (p Postgres) bytesLiteral(b []byte) string {
	return fmt.Sprintf("'\\x%x'::bytea", b)
}

func (p Postgres) timeLiteral(t time.Time) string {
	return "'" + t.Format("2006-01-02 15:04:05.999999Z07:00") + "'"
}
