package services

import (
	"strings"
	"unicode"

	"storefront/pkg/apperrors"
)

// Slugify lower-cases s and joins its letter and digit runs with hyphens.
func Slugify(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// slugFor normalises a supplied slug, deriving it from name when none was
// given. The result is empty when neither has a letter or digit.
func slugFor(supplied, name string) string {
	if strings.TrimSpace(supplied) == "" {
		return Slugify(name)
	}
	return Slugify(supplied)
}

func invalidSlug(message string) error {
	return apperrors.Invalid(message, apperrors.FieldError{
		Field: "slug", Tag: "slug", Message: "slug must contain a letter or digit",
	})
}
