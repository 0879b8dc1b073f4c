package services

import (
	"regexp"
	"strings"
)

const mobileDigits = 10

var mobilePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)

// NormalizePhone reduces a phone number to its ten digit national form.
// Non-digits are dropped, a leading 91 country code is removed when more
// than ten digits remain, or a single trunk 0 when exactly eleven remain.
// Anything still longer keeps its last ten digits.
//
// Example:
//
//	services.NormalizePhone("+91 98765-43210") // "9876543210"
//	services.NormalizePhone("09876543210")     // "9876543210"
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case len(digits) > mobileDigits && strings.HasPrefix(digits, "91"):
		digits = digits[2:]
	case len(digits) == mobileDigits+1 && strings.HasPrefix(digits, "0"):
		digits = digits[1:]
	}

	if len(digits) > mobileDigits {
		digits = digits[len(digits)-mobileDigits:]
	}
	return digits
}

// IsValidMobile reports whether a normalized number is a ten digit Indian
// mobile number starting with 6, 7, 8 or 9.
func IsValidMobile(normalized string) bool {
	return mobilePattern.MatchString(normalized)
}
