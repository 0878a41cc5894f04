package loader

import (
	"strconv"
	"strings"
	"unicode"
)

// normalizeHeader turns a CSV header into a snake_case column name:
// "Customer ID" -> customer_id, "pricePerUnit" -> price_per_unit.
func normalizeHeader(s string) string {
	s = strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))

	var b strings.Builder
	var prev rune
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			b.WriteRune('_')
		}
		b.WriteRune(r)
		prev = r
	}

	s = strings.ToLower(b.String())
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, s)
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return strings.Trim(s, "_")
}

// normalizeHeaders normalizes every header and makes duplicates unique by suffix.
func normalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	seen := make(map[string]int, len(headers))
	for i, h := range headers {
		name := normalizeHeader(h)
		if name == "" {
			name = "column"
		}
		if n := seen[name]; n > 0 {
			seen[name] = n + 1
			name = name + "_" + strconv.Itoa(n+1)
		} else {
			seen[name] = 1
		}
		out[i] = name
	}
	return out
}
