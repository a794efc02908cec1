package translate

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// zero-width and invisible formatting marks that Thai input methods and
// copy-paste commonly introduce.
var zeroWidthMarks = map[rune]struct{}{
	'\u200b': {}, // zero width space
	'\u200c': {}, // zero width non-joiner
	'\u200d': {}, // zero width joiner
	'\u2060': {}, // word joiner
	'\ufeff': {}, // BOM / zero width no-break space
}

// Normalize canonicalises a raw token or sentence: Unicode NFC, zero-width
// mark removal, trimming and internal whitespace collapse. Tokens are
// compared by exact string equality after normalization, and Normalize is
// idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = norm.NFC.String(s)

	var b strings.Builder
	b.Grow(len(s))
	lastSpace := false
	for _, r := range s {
		if _, drop := zeroWidthMarks[r]; drop {
			continue
		}
		if unicode.IsSpace(r) {
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return strings.TrimSpace(b.String())
}

// NormalizeAll normalizes each element, discarding tokens that normalize to
// the empty string.
func NormalizeAll(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		n := Normalize(t)
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}

// isDigits reports whether s is a non-empty pure digit string. Thai digits
// (U+0E50..U+0E59) count the same as ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
