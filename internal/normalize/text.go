package normalize

import (
	"regexp"
	"strings"
)

var multiSpace = regexp.MustCompile(`\s+`)

// Category lowercases, collapses internal whitespace, and trims a raw
// categorical value (sex, smoker, region). Returns "" for blank input.
func Category(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	return multiSpace.ReplaceAllString(s, " ")
}

// ColumnName canonicalizes a header cell: trim, lowercase, spaces to
// underscores. A UTF-8 BOM on the first header cell is stripped.
func ColumnName(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, " ", "_")
}
