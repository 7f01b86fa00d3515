package stringutil

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Fold returns the case-folded form of s, suitable for case-insensitive comparison. Pure ASCII strings
// take a fast path that only lowercases A-Z and returns s unchanged when it's already lowercase. Other
// strings are folded with Unicode full case folding.
func Fold(s string) string {
	upper := -1
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b >= utf8.RuneSelf {
			// A cases.Caser is stateful, a new one is needed for each call.
			return cases.Fold().String(s)
		}
		if upper < 0 && 'A' <= b && b <= 'Z' {
			upper = i
		}
	}

	if upper < 0 {
		return s
	}

	buf := make([]byte, len(s))
	copy(buf, s[:upper])
	for i := upper; i < len(s); i++ {
		buf[i] = ToLowerASCII(s[i])
	}
	return string(buf)
}

// ToLowerASCII converts an ASCII uppercase letter (A-Z) to lowercase (a-z).
// All other bytes are returned unchanged. Does not validate ASCII range;
func ToLowerASCII(b byte) byte {
	if 'A' <= b && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
