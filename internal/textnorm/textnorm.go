// Package textnorm canonicalizes extracted text before tokenization.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize lowercases text, collapses whitespace runs to a single space and drops every
// rune that is neither a word character nor a space. It never fails.
//
// Stripping punctuation that sat between two spaces ("a - b") would leave a double space,
// so whitespace is collapsed once more at the end; the output is single-spaced and
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	// A Caser keeps state and must not be shared between goroutines.
	lower := cases.Lower(language.Und).String(text)
	return collapseSpace(stripNonWord(collapseSpace(lower)))
}

// IsWordRune reports whether r is a letter, a number or an underscore.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func collapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

func stripNonWord(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || IsWordRune(r) {
			return r
		}
		return -1
	}, s)
}
