// Package phone canonicalizes South African phone numbers.
//
// Every store in the system keys records on the canonical local form
// produced by Normalize, so the same subscriber line maps to a single
// record no matter how the number was typed or reported by the platform
// call log ("+27 82 123 4567", "27821234567", "0821234567", "821234567").
package phone

import "strings"

// Normalize reduces raw input to the canonical local-format digit string.
// Input that does not resolve to a clean SA number is passed through
// after digit-stripping; malformed input is never an error.
func Normalize(raw string) string {
	digits := stripNonDigits(raw)

	// Country calling code 27 collapses to the local leading zero.
	if strings.HasPrefix(digits, "27") {
		digits = "0" + digits[2:]
	}

	// Subscriber number typed without the leading zero or country code.
	if len(digits) == 9 && !strings.HasPrefix(digits, "0") {
		digits = "0" + digits
	}

	return digits
}

// Format renders a number for display, grouped 3-3-4 ("082 123 4567").
// Anything that does not normalize to 10 digits is returned unchanged.
func Format(raw string) string {
	normalized := Normalize(raw)
	if len(normalized) != 10 {
		return raw
	}
	return normalized[:3] + " " + normalized[3:6] + " " + normalized[6:]
}

func stripNonDigits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
