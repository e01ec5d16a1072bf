package render

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// anchorSlug builds a stable fragment identifier from heading text. Unlike
// lesson slugs it keeps the heading's own spaces as single hyphens and never
// returns an empty string, so TOC links always have a target.
func anchorSlug(text string) string {
	decomposed := norm.NFKD.String(strings.ToLower(text))

	var sb strings.Builder
	for _, r := range decomposed {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == ' ' || r == '-' {
			sb.WriteRune(r)
		}
	}

	slug := strings.Join(strings.Fields(sb.String()), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "section"
	}
	return slug
}
