// Package slugs generates URL slugs for boards. Generation is deterministic
// given a title; uniqueness within an organization is handled by the caller
// with a collision probe plus a random suffix.
package slugs

import (
	"crypto/rand"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/erfnk/kanban-board-api/internal/constants"
)

const suffixCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Generate lowercases the title, strips diacritics and non-alphanumerics,
// hyphenates whitespace and caps the result at 60 characters. An empty
// result falls back to "board".
func Generate(title string) string {
	lowered := strings.ToLower(title)

	stripped, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		stripped = lowered
	}

	var b strings.Builder
	for _, r := range stripped {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	slug := strings.Join(strings.Fields(b.String()), "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	slug = strings.Trim(slug, "-")

	if len(slug) > constants.SlugMaxLength {
		slug = strings.Trim(slug[:constants.SlugMaxLength], "-")
	}
	if slug == "" {
		return constants.SlugFallback
	}
	return slug
}

// RandomSuffix returns a 4-character lowercase alphanumeric suffix appended
// to a slug on collision within an organization.
func RandomSuffix() (string, error) {
	bytes := make([]byte, 4)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	for i, b := range bytes {
		bytes[i] = suffixCharset[int(b)%len(suffixCharset)]
	}
	return string(bytes), nil
}
