package sanitizer

import (
	"regexp"
	"strings"
)

var (
	dotRegex        = regexp.MustCompile(`\.{2,}`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// NormalizeEmail lowercases and trims an email address so that lookups and
// uniqueness checks are case-insensitive. Consecutive dots in the local part
// are consolidated and leading/trailing dots removed.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	email = strings.ToLower(email)

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}

	local := parts[0]
	domain := parts[1]

	local = dotRegex.ReplaceAllString(local, ".")
	local = strings.Trim(local, ".")

	return local + "@" + domain
}

// NormalizeName trims a person name and collapses internal whitespace runs
// into single spaces.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	return whitespaceRegex.ReplaceAllString(name, " ")
}
