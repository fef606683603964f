package dialect

import (
	"database/sql/driver"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// literals holds the parts of value rendering that differ per dialect.
type literals interface {
	QuoteIdentifier(name string) string
	QuoteString(s string) string
	bytesLiteral(b []byte) string
	timeLiteral(t time.Time) string
}

// renderScalar implements RenderValue for every dialect.
func renderScalar(l literals, v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case string:
		return l.QuoteString(val), nil
	case Identifier:
		return l.QuoteIdentifier(string(val)), nil
	case bool:
		if val {
			return "TRUE", nil
		}
		return "FALSE", nil
	case int:
		return strconv.FormatInt(int64(val), 10), nil
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(val).Int(), 10), nil
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(val).Uint(), 10), nil
	case float32:
		return formatFloat(l, float64(val), 32), nil
	case float64:
		return formatFloat(l, val, 64), nil
	case []byte:
		if val == nil {
			return "NULL", nil
		}
		return l.bytesLiteral(val), nil
	case time.Time:
		return l.timeLiteral(val), nil
	case *time.Time:
		if val == nil {
			return "NULL", nil
		}
		return l.timeLiteral(*val), nil
	case uuid.UUID:
		return l.QuoteString(val.String()), nil
	case ulid.ULID:
		return l.QuoteString(val.String()), nil
	case driver.Valuer:
		return renderValuer(l, val)
	case fmt.Stringer:
		return l.QuoteString(val.String()), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return l.QuoteString(rv.String()), nil
	case reflect.Bool:
		return renderScalar(l, rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return formatFloat(l, rv.Float(), rv.Type().Bits()), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "NULL", nil
		}
		return renderScalar(l, rv.Elem().Interface())
	}

	return "", fmt.Errorf("cannot render %T as a SQL literal", v)
}

// renderValuer unwraps driver.Valuer implementations such as sql.NullString.
func renderValuer(l literals, v driver.Valuer) (string, error) {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return "NULL", nil
	}
	inner, err := v.Value()
	if err != nil {
		return "", fmt.Errorf("driver value for %T: %w", v, err)
	}
	if _, again := inner.(driver.Valuer); again {
		return "", fmt.Errorf("driver value for %T returned another valuer", v)
	}
	return renderScalar(l, inner)
}

func formatFloat(l literals, f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return l.QuoteString("NaN")
	case math.IsInf(f, 1):
		return l.QuoteString("Infinity")
	case math.IsInf(f, -1):
		return l.QuoteString("-Infinity")
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}
