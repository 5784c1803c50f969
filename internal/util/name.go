package util

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Category names may contain letters (accented forms included) and spaces.
var nameRe = regexp.MustCompile(`^[\p{L} ]+$`)

// NormalizeName trims a display name and normalizes its case: first letter
// upper, the rest lower. Returns "" for blank input.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + strings.ToLower(name[size:])
}

// ValidName reports whether a normalized name is acceptable for a category.
func ValidName(name string) bool {
	return name != "" && nameRe.MatchString(name)
}
