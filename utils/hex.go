package utils

import "strings"

// HasHexPrefix reports whether s starts with 0x or 0X.
func HasHexPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// RemoveHexPrefix strips a single leading 0x or 0X.
func RemoveHexPrefix(s string) string {
	if HasHexPrefix(s) {
		return s[2:]
	}
	return s
}

// AddHexPrefix makes sure s carries exactly one 0x prefix.
func AddHexPrefix(s string) string {
	return "0x" + RemoveHexPrefix(s)
}

// AddHexPadding left pads the digits of value with zeros up to targetLength nibbles.
// Input with or without the prefix is accepted and prefix decides whether the output
// carries one. A value already longer than targetLength is returned untouched:
// padding never truncates.
func AddHexPadding(value string, targetLength int, prefix bool) string {
	p := ""
	if prefix {
		p = "0x"
	}
	digits := RemoveHexPrefix(value)
	if len(digits) >= targetLength {
		return value
	}
	return p + strings.Repeat("0", targetLength-len(digits)) + digits
}
