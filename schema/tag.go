package schema

import (
	"reflect"
	"strings"
)

// fieldTag is the key a struct field is addressed by, taken from its
// db tag. Supported forms:
//
//	`db:"user_id"`              // plain name
//	`db:"column:user_id;index"` // explicit column among other options
//	`db:"-"`                    // never addressable
type fieldTag struct {
	Name string
	Skip bool
}

func parseFieldTag(field reflect.StructField) fieldTag {
	tagValue := field.Tag.Get("db")
	if tagValue == "" {
		return fieldTag{Name: jsonName(field)}
	}
	if tagValue == "-" {
		return fieldTag{Skip: true}
	}

	// Simple column name (most common case)
	if !strings.ContainsAny(tagValue, ";:") {
		return fieldTag{Name: tagValue}
	}

	var parsed fieldTag
	for _, option := range strings.Split(tagValue, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(option), ":")
		if ok && strings.TrimSpace(key) == "column" {
			parsed.Name = strings.TrimSpace(value)
		}
	}
	return parsed
}

// jsonName honours encoding/json names for structs that were not written
// with db tags in mind.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}
