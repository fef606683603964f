package schema

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"time"
)

// Kind classifies a resolved value by the markers that can render it.
type Kind uint8

const (
	KindNull Kind = iota
	KindScalar
	KindList
	KindMap
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unsupported"
	}
}

// Value is a tagged view over a value taken from the data mapping.
// Scalars keep their original Go value so dialects can render them with
// full type information; lists expose indexed access.
type Value struct {
	kind  Kind
	iface any
	rv    reflect.Value
}

// Of classifies v. Types with their own SQL representation (time.Time,
// driver.Valuer, fmt.Stringer) are scalars even when their underlying
// kind is an array or struct.
func Of(v any) Value {
	switch x := v.(type) {
	case nil:
		return Value{kind: KindNull}
	case string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64, time.Time:
		return Value{kind: KindScalar, iface: v}
	case []byte:
		if x == nil {
			return Value{kind: KindNull}
		}
		return Value{kind: KindScalar, iface: v}
	case []any:
		return Value{kind: KindList, iface: v, rv: reflect.ValueOf(x)}
	case []string:
		return Value{kind: KindList, iface: v, rv: reflect.ValueOf(x)}
	case map[string]any:
		return Value{kind: KindMap, iface: v, rv: reflect.ValueOf(x)}
	case driver.Valuer, fmt.Stringer:
		if isNilPointer(v) {
			return Value{kind: KindNull}
		}
		return Value{kind: KindScalar, iface: v}
	}
	return ofReflect(v)
}

func ofReflect(v any) Value {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Value{kind: KindNull}
		}
		return Of(rv.Elem().Interface())
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Value{kind: KindScalar, iface: rv.Bytes()}
		}
		return Value{kind: KindList, iface: v, rv: rv}
	case reflect.Array:
		return Value{kind: KindList, iface: v, rv: rv}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Value{kind: KindUnsupported, iface: v}
		}
		return Value{kind: KindMap, iface: v, rv: rv}
	case reflect.Struct:
		return Value{kind: KindMap, iface: v, rv: rv}
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return Value{kind: KindScalar, iface: v}
	}
	return Value{kind: KindUnsupported, iface: v}
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func (v Value) Kind() Kind { return v.kind }

// Interface returns the underlying Go value; nil for KindNull.
func (v Value) Interface() any { return v.iface }

// Len is the element count of a list and 0 for every other kind.
func (v Value) Len() int {
	if v.kind != KindList {
		return 0
	}
	return v.rv.Len()
}

// Index returns the i-th element of a list.
func (v Value) Index(i int) Value {
	return Of(v.rv.Index(i).Interface())
}

// TypeName describes the value for error messages.
func (v Value) TypeName() string {
	if v.iface == nil {
		return "null"
	}
	return fmt.Sprintf("%T", v.iface)
}
