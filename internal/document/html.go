package document

import (
	"regexp"
	"strings"
)

var (
	tagRegex        = regexp.MustCompile(`<[^>]*>`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// EscapeHTML escapes the five characters that are unsafe in both element
// content and attribute values.
func EscapeHTML(value string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(value)
}

func escapeAttribute(value string) string {
	return EscapeHTML(value)
}

// StripHTML reduces stored markup to plain text: tags become spaces,
// non-breaking spaces become spaces, and runs of whitespace collapse.
func StripHTML(value string) string {
	value = tagRegex.ReplaceAllString(value, " ")
	value = strings.ReplaceAll(value, "&nbsp;", " ")
	value = whitespaceRegex.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}
