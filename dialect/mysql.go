package dialect

import (
	"fmt"
	"strings"
	"time"
)

type MySQL struct{}

func NewMySQLDialect() Dialect {
	return &MySQL{}
}

func (m MySQL) Name() string {
	return "mysql"
}

func (m MySQL) QuoteIdentifier(name string) string {
	parts := strings.Split(name, ".")
	for i, part := range parts {
		parts[i] = "`" + strings.ReplaceAll(part, "`", "``") + "`"
	}
	return strings.Join(parts, ".")
}

// mysqlEscaper covers the default sql_mode, where backslash is an escape
// character inside string literals.
var mysqlEscaper = strings.NewReplacer(`\`, `\\`, `'`, `''`, "\x00", `\0`)

func (m MySQL) QuoteString(s string) string {
	return "'" + mysqlEscaper.Replace(s) + "'"
}

func (m MySQL) RenderValue(v any) (string, error) {
	return renderScalar(m, v)
}

func (m MySQL) EmptyList() string {
	return EmptyList
}

func (m MySQL) bytesLiteral(b []byte) string {
	return fmt.Sprintf("X'%x'", b)
}

func (m MySQL) timeLiteral(t time.Time) string {
	return "'" + t.Format("2006-01-02 15:04:05.999999") + "'"
}
