package validators

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func IsEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// IsPhone accepts digits with common separators, at least 7 digits.
func IsPhone(s string) bool {
	digits := 0
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' || r == '-' || r == '(' || r == ')' || r == ' ' || r == '.':
		default:
			return false
		}
	}
	return digits >= 7
}

// IsContact reports whether s is usable as a customer contact: an email
// address or a phone number.
func IsContact(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	return IsEmail(s) || IsPhone(s)
}
