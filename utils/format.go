package utils

import "strings"

// digitsOnly strips everything but ASCII digits from user input.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCardNumber normalizes card number input into its display form:
// digits only, capped at 16, grouped in chunks of 4 joined by single spaces,
// e.g. "1234 5678 9012 3456".
func FormatCardNumber(input string) string {
	digits := digitsOnly(input)
	if len(digits) > 16 {
		digits = digits[:16]
	}
	var groups []string
	for i := 0; i < len(digits); i += 4 {
		end := i + 4
		if end > len(digits) {
			end = len(digits)
		}
		groups = append(groups, digits[i:end])
	}
	return strings.Join(groups, " ")
}

// FormatExpiry normalizes expiry input as the user types: digits only,
// capped at 4, auto-punctuated as MM/YY once 2 or more digits are present.
func FormatExpiry(input string) string {
	digits := digitsOnly(input)
	if len(digits) > 4 {
		digits = digits[:4]
	}
	if len(digits) < 2 {
		return digits
	}
	return digits[:2] + "/" + digits[2:]
}
