// Package textstat turns a plain-text document into per-word term frequency
// and single-document inverse frequency statistics.
package textstat

import "strings"

// Punctuation is the ASCII punctuation set removed by Normalize.
// Non-ASCII punctuation (full-width comma, em dash, guillemets) is kept.
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// isPunct reports whether r belongs to Punctuation.
func isPunct(r rune) bool {
	return r < 0x80 && strings.ContainsRune(Punctuation, r)
}

// Normalize lower-cases text, strips ASCII punctuation and splits the rest on
// runs of whitespace. Tokens keep document order and duplicates. An input
// without words yields a nil slice.
func Normalize(text string) []string {
	text = strings.ToLower(text)
	text = strings.Map(func(r rune) rune {
		if isPunct(r) {
			return -1
		}
		return r
	}, text)
	return strings.Fields(text)
}
