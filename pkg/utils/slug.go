package utils

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// GenerateSlug builds a URL-safe slug from a title. Unicode letters and
// digits are kept so Arabic titles produce Arabic slugs; combining marks
// are stripped and every other run of characters collapses to a single
// hyphen.
func GenerateSlug(text string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	text, _, _ = transform.String(t, text)

	text = strings.ToLower(text)

	var b strings.Builder
	lastHyphen := true
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteRune('-')
			lastHyphen = true
		}
	}

	return strings.Trim(b.String(), "-")
}

// UniqueSlug appends an incrementing numeric suffix until taken reports the
// candidate as free. The base value itself is tried first.
func UniqueSlug(base string, taken func(string) bool) string {
	if base == "" {
		base = "lesson"
	}
	candidate := base
	for counter := 1; taken(candidate); counter++ {
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
	return candidate
}
