package lang

import (
	"fmt"
	"strings"
)

// Locale identifies one of the two authoring languages carried by every
// lesson record.
type Locale string

const (
	// English is the fallback locale used when no explicit locale is
	// requested or the requested one is unknown.
	English Locale = "en"
	Arabic  Locale = "ar"
)

// Default is the locale assumed when a request carries none.
const Default = English

// Supported returns the locales the platform stores content for, default
// first.
func Supported() []Locale {
	return []Locale{English, Arabic}
}

// Normalize validates a locale code and returns its canonical form. Region
// subtags are tolerated and stripped ("ar-SA" resolves to "ar").
func Normalize(code string) (Locale, error) {
	trimmed := strings.ToLower(strings.TrimSpace(code))
	if trimmed == "" {
		return "", fmt.Errorf("locale code cannot be empty")
	}
	if idx := strings.IndexAny(trimmed, "-_"); idx > 0 {
		trimmed = trimmed[:idx]
	}
	switch Locale(trimmed) {
	case English:
		return English, nil
	case Arabic:
		return Arabic, nil
	}
	return "", fmt.Errorf("unsupported locale %q", code)
}

// NormalizeOrDefault resolves a locale code, falling back to the default
// instead of failing.
func NormalizeOrDefault(code string) Locale {
	locale, err := Normalize(code)
	if err != nil {
		return Default
	}
	return locale
}

// Other returns the opposite pane's locale.
func (l Locale) Other() Locale {
	if l == Arabic {
		return English
	}
	return Arabic
}

// Direction returns the writing direction for HTML dir attributes.
func (l Locale) Direction() string {
	if l == Arabic {
		return "rtl"
	}
	return "ltr"
}

func (l Locale) String() string {
	return string(l)
}

// Pick chooses the locale's value, falling back to the other language when
// it is empty. Used wherever a display string must never be blank for a
// lesson that has at least one translation.
func Pick(locale Locale, en, ar string) string {
	primary, secondary := en, ar
	if locale == Arabic {
		primary, secondary = ar, en
	}
	if strings.TrimSpace(primary) != "" {
		return primary
	}
	return secondary
}
