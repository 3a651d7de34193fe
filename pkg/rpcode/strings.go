package rpcode

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// decodeText converts a raw byte slice to a Go string following the
// fallback chain ASCII -> CP-1252 -> ISO-8859-1. Well-formed ASCII is the
// fast path; valid UTF-8 that happens to be pure ASCII passes straight
// through. Producers that emit accented characters or curly quotes in
// IDENT/ASCII fields use Windows-1252; ISO-8859-1 is the last resort
// because it maps every byte value and therefore never fails.
func decodeText(data []byte) (string, bool) {
	if isASCII(data) {
		return string(data), true
	}
	if s, err := charmap.Windows1252.NewDecoder().String(string(data)); err == nil && utf8.ValidString(s) {
		return s, true
	}
	if s, err := charmap.ISO8859_1.NewDecoder().String(string(data)); err == nil {
		return s, true
	}
	return "", false
}

func isASCII(data []byte) bool {
	for _, b := range data {
		if b > 0x7F {
			return false
		}
	}
	return true
}
