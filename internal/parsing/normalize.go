// Package parsing provides text canonicalization for embedding and scoring.
package parsing

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// accentedKeep lists accented characters preserved as-is when they survive
// decomposition (keeps French text readable if a mark is not separable).
const accentedKeep = "àâäãçéèêëîïôöùûüñ"

// NormalizeText canonicalizes free text for embedding: lowercase, strip
// diacritics via NFD decomposition, replace anything outside the allowed
// charset with a space, then collapse whitespace. Pure and deterministic.
func NormalizeText(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = norm.NFD.String(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Mn, r):
			// Combining mark left over from decomposition: drop it.
		case isAllowedRune(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

func isAllowedRune(r rune) bool {
	if r >= 'a' && r <= 'z' {
		return true
	}
	if r >= '0' && r <= '9' {
		return true
	}
	if r == '\'' || r == ' ' {
		return true
	}
	return strings.ContainsRune(accentedKeep, r)
}

// CountWords counts whitespace-separated words in a string.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
