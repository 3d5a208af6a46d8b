// Package slug maps glossary term names to canonical URL-safe tokens and
// recognizes the Term Store's native identifier shape.
package slug

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	invalidChars = regexp.MustCompile(`[^\w\s-]`)
	separators   = regexp.MustCompile(`[\s_-]+`)
)

// Slugify lower-cases and trims the name, strips characters outside the
// word/space/hyphen class, and collapses separator runs into single hyphens.
// It is deterministic and idempotent; empty input yields an empty token.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = invalidChars.ReplaceAllString(s, "")
	s = separators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// IsOpaqueID reports whether the token has the store's native primary-key
// shape (a 36-character hyphenated hexadecimal UUID), distinguishing
// lookup-by-id from lookup-by-slug.
func IsOpaqueID(token string) bool {
	if len(token) != 36 {
		return false
	}
	_, err := uuid.Parse(token)
	return err == nil
}
