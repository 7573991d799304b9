package commerce

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CamelCaseKeys rewrites snake_case map keys to camelCase at every depth
func CamelCaseKeys(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[camelCase(key)] = CamelCaseKeys(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = CamelCaseKeys(item)
		}
		return out
	}
	return value
}

func camelCase(key string) string {
	parts := strings.Split(key, "_")
	var b strings.Builder
	b.Grow(len(key))

	first := true
	for _, part := range parts {
		if part == "" {
			continue
		}
		if first {
			r, size := utf8.DecodeRuneInString(part)
			b.WriteRune(unicode.ToLower(r))
			b.WriteString(part[size:])
			first = false
			continue
		}
		r, size := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(part[size:])
	}
	return b.String()
}
