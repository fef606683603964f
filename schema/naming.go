package schema

import (
	"strings"
	"unicode"

	pluralizer "github.com/gertd/go-pluralize"
)

// pluralizeClient is a singleton instance for consistent pluralization behavior.
var pluralizeClient = pluralizer.NewClient()

// =========================================================================
// Case Conversion
// =========================================================================

// toSnakeCase converts any naming convention to snake_case.
// Acronym runs stay together: UserID -> user_id, HTTPServer -> http_server.
func toSnakeCase(name string) string {
	if name == "" {
		return ""
	}

	// If already snake_case (contains underscores and no uppercase), return as-is
	if strings.Contains(name, "_") && !hasUpperCase(name) {
		return name
	}

	var result strings.Builder
	result.Grow(len(name) + 4)

	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			// aB -> a_b, a1B -> a1_b, ABc -> a_bc
			if unicode.IsLower(prev) || unicode.IsDigit(prev) ||
				(unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])) {
				result.WriteByte('_')
			}
		}
		result.WriteRune(unicode.ToLower(r))
	}

	return result.String()
}

// toCamelCase converts any naming convention to camelCase.
func toCamelCase(name string) string {
	parts := strings.Split(toSnakeCase(name), "_")

	var result strings.Builder
	result.Grow(len(name))
	first := true
	for _, part := range parts {
		if part == "" {
			continue
		}
		if first {
			result.WriteString(part)
			first = false
			continue
		}
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		result.WriteString(string(runes))
	}
	return result.String()
}

// hasUpperCase returns true if the string contains any uppercase letters.
func hasUpperCase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// =========================================================================
// Pluralization
// =========================================================================

func pluralize(name string) string {
	if name == "" {
		return ""
	}
	return pluralizeClient.Plural(name)
}

func singularize(name string) string {
	if name == "" {
		return ""
	}
	return pluralizeClient.Singular(name)
}

// nameVariants lists alternative spellings of key a template author may
// have meant, in preference order, without duplicates or key itself.
func nameVariants(key string) []string {
	candidates := []string{
		pluralize(key),
		singularize(key),
		toSnakeCase(key),
		toCamelCase(key),
		strings.ToLower(key),
	}

	out := candidates[:0]
	seen := map[string]bool{key: true}
	for _, c := range candidates {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
