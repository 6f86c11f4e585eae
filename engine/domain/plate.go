package domain

import (
	"regexp"
	"strings"
)

// Finnish plate after normalization: two or three letters followed by one
// to three digits, e.g. ABC123. Diplomatic and vanity plates fall outside
// this pattern, which is why validation is advisory only.
var plateRe = regexp.MustCompile(`^[A-ZÅÄÖ]{2,3}[0-9]{1,3}$`)

// plateToken finds a plate-shaped token inside free text. The scan is
// looser than ValidPlate (up to four digits, optional hyphen) so that a
// mistyped plate is still detected and answered with a format hint instead
// of falling through to keyword rules. A bare space is not accepted as the
// separator: Finnish chat messages are full of "klo 16" style tokens.
// Boundaries are spelled out instead of \b, which is ASCII-only and would
// split a plate starting with Å, Ä or Ö one rune in.
var plateTokenRe = regexp.MustCompile(`(?i)(?:^|[^0-9A-ZÅÄÖ])([A-ZÅÄÖ]{2,3})-?([0-9]{1,4})(?:$|[^0-9A-ZÅÄÖ])`)

// NormalizePlate strips whitespace and hyphens and uppercases the input.
// Normalization is idempotent; the result is the cache key for the plate.
func NormalizePlate(reg string) string {
	var b strings.Builder
	for _, r := range reg {
		switch r {
		case ' ', '\t', '\n', '-':
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

// ValidPlate reports whether a normalized plate matches the standard
// Finnish format. Callers log a warning on mismatch but proceed anyway.
func ValidPlate(normalized string) bool {
	return plateRe.MatchString(normalized)
}

// FindPlate extracts the first plate-shaped token from free text, returning
// its normalized form, or "" when the text contains none.
func FindPlate(text string) string {
	m := plateTokenRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return NormalizePlate(m[1] + m[2])
}
