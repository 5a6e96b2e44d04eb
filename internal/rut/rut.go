// Package rut normalizes and validates Chilean national identity numbers
// (RUT). The canonical form has no separators and an upper-case check
// character, e.g. "12345678K". All comparisons in the sync engine are done
// on canonical values.
package rut

import "strings"

// Canonicalize strips dots, dashes and surrounding whitespace and upper-cases
// the check character. It reports false when the input does not have the
// shape of a RUT (numeric body followed by a digit or 'K'). It does not check
// the checksum; see ValidateChecksum.
func Canonicalize(raw string) (string, bool) {
	s := strip(raw)
	if len(s) < 2 {
		return "", false
	}
	body, check := s[:len(s)-1], s[len(s)-1]
	for i := 0; i < len(body); i++ {
		if body[i] < '0' || body[i] > '9' {
			return "", false
		}
	}
	if check != 'K' && (check < '0' || check > '9') {
		return "", false
	}
	return s, true
}

// ValidateChecksum reports whether the check character of raw matches the
// modulo-11 checksum of its numeric body. Malformed input is simply invalid.
func ValidateChecksum(raw string) bool {
	s, ok := Canonicalize(raw)
	if !ok {
		return false
	}
	want := ComputeCheckDigit(s[:len(s)-1])
	return s[len(s)-1] == want
}

// ComputeCheckDigit returns the modulo-11 check character for a numeric body:
// digits are weighted right-to-left with a multiplier cycling 2..7, and
// 11 - (sum mod 11) maps to {11: '0', 10: 'K', n: '0'+n}.
func ComputeCheckDigit(body string) byte {
	sum := 0
	mul := 2
	for i := len(body) - 1; i >= 0; i-- {
		sum += int(body[i]-'0') * mul
		mul++
		if mul > 7 {
			mul = 2
		}
	}
	switch d := 11 - (sum % 11); d {
	case 11:
		return '0'
	case 10:
		return 'K'
	default:
		return byte('0' + d)
	}
}

// FormatForDisplay renders a RUT with thousands dots and the check-digit
// dash, e.g. "12.345.678-5". Input that does not canonicalize is returned
// as typed (trimmed) so the UI can echo it back; this function never panics.
func FormatForDisplay(raw string) string {
	s, ok := Canonicalize(raw)
	if !ok {
		return strings.TrimSpace(raw)
	}
	body, check := s[:len(s)-1], s[len(s)-1:]

	var b strings.Builder
	for i, c := range body {
		if i > 0 && (len(body)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	return b.String() + "-" + check
}

func strip(raw string) string {
	var b strings.Builder
	for _, c := range strings.TrimSpace(raw) {
		switch c {
		case '.', '-', ' ':
		case 'k':
			b.WriteRune('K')
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}
