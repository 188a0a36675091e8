package slug

import (
	"strconv"
	"strings"
	"unicode"
)

// Make converts an arbitrary string into a URL-safe slug: lowercase,
// alphanumeric runs joined by single hyphens.
func Make(s string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen

	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// MakeUnique derives a slug from base and appends an incrementing numeric
// suffix (-1, -2, ...) until exists reports false.
func MakeUnique(base string, exists func(string) bool) string {
	candidate := Make(base)
	if candidate == "" {
		candidate = "item"
	}

	slug := candidate
	for counter := 1; exists(slug); counter++ {
		slug = candidate + "-" + strconv.Itoa(counter)
	}
	return slug
}
