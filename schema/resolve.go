// Package schema resolves dotted field paths against caller data.
//
// Data may be any mix of maps with string keys, structs, slices and
// pointers. Struct fields are addressed by db tag, json tag, Go name, or
// the snake_case and camelCase forms of the Go name; slice elements by
// decimal index. Lookups never modify the data.
package schema

import (
	"reflect"
	"strconv"
	"strings"
)

// Result is the outcome of a path lookup. When Found is false, Depth is
// the index of the first path segment that did not resolve.
type Result struct {
	Value Value
	Found bool
	Depth int
}

// Resolve looks up a dotted path such as "user.address.city".
func Resolve(data any, path string) Result {
	return ResolveParts(data, strings.Split(path, "."))
}

// ResolveParts is Resolve over a pre-split path.
func ResolveParts(data any, parts []string) Result {
	cur := data
	for i, part := range parts {
		next, ok := child(cur, part)
		if !ok {
			return Result{Depth: i}
		}
		cur = next
	}
	return Result{Value: Of(cur), Found: true, Depth: len(parts)}
}

// child returns the member of container named key.
func child(container any, key string) (any, bool) {
	switch m := container.(type) {
	case nil:
		return nil, false
	case map[string]any:
		v, ok := m[key]
		return v, ok
	case map[string]string:
		v, ok := m[key]
		return v, ok
	}

	rv := reflect.ValueOf(container)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		keyType := rv.Type().Key()
		if keyType.Kind() != reflect.String {
			return nil, false
		}
		v := rv.MapIndex(reflect.ValueOf(key).Convert(keyType))
		if !v.IsValid() {
			return nil, false
		}
		return v.Interface(), true

	case reflect.Struct:
		index, ok := introspect(rv.Type()).fields[key]
		if !ok {
			return nil, false
		}
		f, err := rv.FieldByIndexErr(index)
		if err != nil || !f.CanInterface() {
			return nil, false
		}
		return f.Interface(), true

	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= rv.Len() {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	}

	return nil, false
}

// Suggest proposes a path that does resolve when parts does not, by trying
// singular/plural and case variants of the first missing segment. It
// returns "" when parts resolves or no variant does.
func Suggest(data any, parts []string) string {
	res := ResolveParts(data, parts)
	if res.Found {
		return ""
	}

	parent := data
	if res.Depth > 0 {
		p := ResolveParts(data, parts[:res.Depth])
		parent = p.Value.Interface()
	}

	for _, variant := range nameVariants(parts[res.Depth]) {
		if _, ok := child(parent, variant); !ok {
			continue
		}
		fixed := make([]string, 0, len(parts))
		fixed = append(fixed, parts[:res.Depth]...)
		fixed = append(fixed, variant)
		fixed = append(fixed, parts[res.Depth+1:]...)
		return strings.Join(fixed, ".")
	}
	return ""
}
