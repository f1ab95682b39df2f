package utils

import (
	"strings"
)

// NormalizeQuery trims a search term and collapses inner whitespace,
// so "  vintage   camera " and "vintage camera" build the same URL.
func NormalizeQuery(q string) string {
	return strings.Join(strings.Fields(q), " ")
}
