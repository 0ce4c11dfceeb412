package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeSpace collapses runs of whitespace to a single space and trims
// the ends.
func NormalizeSpace(s string) string {
	s = strings.Trim(s, " \n\t")
	return whitespaceRegex.ReplaceAllString(s, " ")
}

// RuneLen counts logical characters. Reading reconciliation arithmetic
// must never count bytes, kanji are 3 bytes each in utf-8.
func RuneLen(s string) int {
	return len([]rune(s))
}
