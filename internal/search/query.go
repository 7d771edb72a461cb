package search

import (
	"strings"
	"unicode"
)

// Normalize trims the input and collapses runs of whitespace into a single
// space. Case and punctuation are preserved since matching is done with
// case-insensitive substring operators on the database side.
func Normalize(input string) string {
	return strings.Join(strings.FieldsFunc(input, unicode.IsSpace), " ")
}

// IsBlank reports whether the input has no searchable characters.
func IsBlank(input string) bool {
	return strings.TrimFunc(input, unicode.IsSpace) == ""
}

// CacheKeyPart is the form of a query used in cache keys.
func CacheKeyPart(input string) string {
	return strings.ToLower(Normalize(input))
}
