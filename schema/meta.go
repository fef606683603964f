package schema

import (
	"reflect"
	"sync"
)

// structMeta maps every key a struct can be addressed by to a field index.
type structMeta struct {
	fields map[string][]int
}

var metaCache sync.Map // map[reflect.Type]*structMeta

// introspect returns the cached key table for struct type t.
func introspect(t reflect.Type) *structMeta {
	if meta, ok := metaCache.Load(t); ok {
		return meta.(*structMeta)
	}
	meta, _ := metaCache.LoadOrStore(t, buildMeta(t))
	return meta.(*structMeta)
}

// buildMeta registers, per exported field, its tag name, its Go name, and
// its snake_case and camelCase forms. Earlier registrations win, so an
// explicit tag is never shadowed by a derived name.
func buildMeta(t reflect.Type) *structMeta {
	meta := &structMeta{fields: make(map[string][]int)}
	add := func(key string, index []int) {
		if key == "" {
			return
		}
		if _, exists := meta.fields[key]; exists {
			return
		}
		meta.fields[key] = index
	}

	type derivedName struct {
		name  string
		index []int
	}
	var derived []derivedName
	for _, f := range reflect.VisibleFields(t) {
		if f.Anonymous && indirectType(f.Type).Kind() == reflect.Struct {
			continue
		}
		if !f.IsExported() {
			continue
		}
		tag := parseFieldTag(f)
		if tag.Skip {
			continue
		}
		add(tag.Name, f.Index)
		add(f.Name, f.Index)
		derived = append(derived, derivedName{f.Name, f.Index})
	}
	for _, d := range derived {
		add(toSnakeCase(d.name), d.index)
		add(toCamelCase(d.name), d.index)
	}
	return meta
}

func indirectType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
