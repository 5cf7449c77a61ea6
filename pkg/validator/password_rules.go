package validator

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	uppercaseRegex   = regexp.MustCompile(`[A-Z]`)
	lowercaseRegex   = regexp.MustCompile(`[a-z]`)
	digitRegex       = regexp.MustCompile(`[0-9]`)
	specialCharRegex = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?~` + "`" + `]`)

	// Frequently compromised passwords rejected regardless of strength
	// score.
	commonPasswords = map[string]bool{
		"password":    true,
		"password1":   true,
		"password123": true,
		"123456":      true,
		"12345678":    true,
		"123456789":   true,
		"1234567890":  true,
		"qwerty":      true,
		"qwerty123":   true,
		"qwertyuiop":  true,
		"abc123":      true,
		"letmein":     true,
		"welcome":     true,
		"iloveyou":    true,
		"admin":       true,
		"admin123":    true,
		"root":        true,
		"guest":       true,
		"secret":      true,
		"dragon":      true,
		"sunshine":    true,
		"princess":    true,
		"football":    true,
		"monkey":      true,
		"trustno1":    true,
	}
)

// PasswordStrengthConfig defines password strength requirements.
type PasswordStrengthConfig struct {
	MinLength      int
	MaxLength      int
	MinCharClasses int // out of: upper, lower, digit, special
}

// DefaultPasswordStrength requires only two character classes, trading a
// little entropy for much better UX on mobile keyboards.
var DefaultPasswordStrength = PasswordStrengthConfig{
	MinLength:      8,
	MaxLength:      128,
	MinCharClasses: 2,
}

// StrongPassword validates password length and character class diversity.
func StrongPassword(field, value string, cfg PasswordStrengthConfig) Rule {
	return Rule{
		Check: func() bool {
			if len(value) < cfg.MinLength || len(value) > cfg.MaxLength {
				return false
			}

			classes := 0
			for _, re := range []*regexp.Regexp{uppercaseRegex, lowercaseRegex, digitRegex, specialCharRegex} {
				if re.MatchString(value) {
					classes++
				}
			}
			return classes >= cfg.MinCharClasses
		},
		Error: ValidationError{
			Field: field,
			Message: fmt.Sprintf(
				"must be %d-%d characters with at least %d of: uppercase, lowercase, digits, special characters",
				cfg.MinLength, cfg.MaxLength, cfg.MinCharClasses,
			),
		},
	}
}

// NotCommonPassword rejects passwords found on breach lists.
func NotCommonPassword(field, value string) Rule {
	return Rule{
		Check: func() bool { return !commonPasswords[strings.ToLower(value)] },
		Error: ValidationError{Field: field, Message: "is too common; choose a more unique password"},
	}
}
