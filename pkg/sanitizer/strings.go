// Package sanitizer normalizes user-supplied strings before validation
// and storage.
package sanitizer

import (
	"regexp"
	"strings"
)

var consecutiveDots = regexp.MustCompile(`\.{2,}`)

// NormalizeEmail trims, lower-cases and cleans up an email address.
// Strings that do not look like an email are returned trimmed and
// lower-cased so validation can reject them with a useful message.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}

	local := consecutiveDots.ReplaceAllString(parts[0], ".")
	local = strings.Trim(local, ".")

	return local + "@" + parts[1]
}

// TrimName collapses inner whitespace runs and trims a person or display
// name.
func TrimName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
