// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "US"

// Digits strips all non-digit characters from a phone number.
func Digits(input string) string {
	var b strings.Builder
	for _, r := range input {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeE164 formats a phone number to E.164. If parsing fails, it returns
// the digits-only form of the input.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return Digits(trimmed)
	}

	if !phonenumbers.IsValidNumber(number) {
		return Digits(trimmed)
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

// FormatNational renders a stored number for display, e.g. (555) 123-4567.
// Unparseable input is returned unchanged.
func FormatNational(input string) string {
	number, err := phonenumbers.Parse(input, defaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return input
	}
	return phonenumbers.Format(number, phonenumbers.NATIONAL)
}
