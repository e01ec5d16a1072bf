package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
)

var slugRegex = regexp.MustCompile(`^[\p{L}\p{N}]+(?:-[\p{L}\p{N}]+)*$`)

func Init() {
	validate = validator.New()

	// Lesson markup carries inline styles for text color and highlights,
	// so the UGC policy is widened for span/mark style attributes.
	sanitizer = bluemonday.UGCPolicy()
	sanitizer.AllowAttrs("style").OnElements("span", "mark")
	sanitizer.AllowAttrs("target", "rel").OnElements("a")

	registerCustomValidations(validate)

	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerCustomValidations(engine)
	}
}

func registerCustomValidations(v *validator.Validate) {
	v.RegisterValidation("slug", validateSlug)
	v.RegisterValidation("locale", validateLocale)
}

func Validate(s interface{}) error {
	return validate.Struct(s)
}

// SanitizeHTML cleans stored block markup before it is served to readers.
func SanitizeHTML(html string) string {
	return sanitizer.Sanitize(html)
}

// SanitizeString strips all markup, leaving plain text.
func SanitizeString(s string) string {
	return bluemonday.StrictPolicy().Sanitize(s)
}

func validateSlug(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return false
	}
	return slugRegex.MatchString(value)
}

func validateLocale(fl validator.FieldLevel) bool {
	switch strings.ToLower(strings.TrimSpace(fl.Field().String())) {
	case "en", "ar":
		return true
	}
	return false
}
