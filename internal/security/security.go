// Package security provides input sanitization and validation helpers
// applied at the boundary before data reaches storage.
package security

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// MaxSlugLength is the maximum allowed slug length in characters.
const MaxSlugLength = 100

// ErrInvalidSlug is returned when a slug fails validation.
var ErrInvalidSlug = errors.New("invalid slug")

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Sanitize trims surrounding whitespace, strips control characters
// (U+0000-U+001F and U+007F-U+009F) and truncates the result to maxLen
// characters. Sanitization never fails; overlong input is silently cut.
func Sanitize(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	s = strings.Map(func(r rune) rune {
		if r <= 0x1f || (r >= 0x7f && r <= 0x9f) {
			return -1
		}
		return r
	}, s)

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}

	return s
}

// ValidateSlug checks that a slug is URL-safe: only lowercase letters,
// digits and hyphens, no leading or trailing hyphen, no consecutive hyphens,
// at most MaxSlugLength characters. The slug is never mutated; callers must
// supply it in canonical form already.
func ValidateSlug(s string) error {
	if s == "" {
		return fmt.Errorf("%w: slug cannot be empty", ErrInvalidSlug)
	}

	if len(s) > MaxSlugLength {
		return fmt.Errorf("%w: slug cannot exceed %d characters", ErrInvalidSlug, MaxSlugLength)
	}

	if !slugPattern.MatchString(s) {
		return fmt.Errorf("%w: slug must contain only lowercase letters, numbers, and hyphens", ErrInvalidSlug)
	}

	if strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") {
		return fmt.Errorf("%w: slug cannot start or end with a hyphen", ErrInvalidSlug)
	}

	if strings.Contains(s, "--") {
		return fmt.Errorf("%w: slug cannot contain consecutive hyphens", ErrInvalidSlug)
	}

	return nil
}
