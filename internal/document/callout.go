package document

import (
	"strings"

	"lessonwiki-backend/internal/models"
)

// DeriveCalloutVariant inspects the leading prefix of a callout's text.
// The match is case-insensitive; anything without a recognized prefix is an
// info callout.
func DeriveCalloutVariant(text string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	switch {
	case strings.HasPrefix(normalized, "tip:"):
		return models.VariantTip
	case strings.HasPrefix(normalized, "warning:"):
		return models.VariantWarning
	default:
		return models.VariantInfo
	}
}

// StripVariantPrefix removes the variant's authoring prefix and any
// whitespace that immediately follows it. Text without the prefix is only
// trimmed.
func StripVariantPrefix(text, variant string) string {
	prefix := variant + ":"
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(strings.ToLower(trimmed), prefix) {
		return trimmed
	}
	return strings.TrimLeft(trimmed[len(prefix):], " \t\n\r")
}
