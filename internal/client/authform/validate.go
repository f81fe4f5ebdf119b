package authform

import (
	"regexp"
	"strings"
)

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z\s\-']+$`)
	phoneRe = regexp.MustCompile(`^0\d{10}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidName accepts trimmed names of at least two letters, spaces, hyphens,
// or apostrophes.
func ValidName(name string) bool {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 2 {
		return false
	}
	return nameRe.MatchString(name)
}

// ValidPhone accepts the Nigerian format: 11 digits with a leading zero.
func ValidPhone(phone string) bool { return phoneRe.MatchString(phone) }

func ValidEmail(email string) bool { return emailRe.MatchString(email) }

func ValidPassword(password string) bool { return len(password) >= 7 }
