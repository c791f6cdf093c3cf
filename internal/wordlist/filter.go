// Package wordlist provides word list filtering helpers.
package wordlist

import (
	"strings"

	"github.com/samber/lo"
)

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForLang returns a language-specific filter for word lists.
// Words outside printable ASCII are never kept since they cannot be typed.
func FilterForLang(lang string) FilterFunc {
	switch strings.ToLower(lang) {
	case "en":
		return filterEnglishASCII
	default:
		return filterPrintableASCII
	}
}

// Filter returns the words accepted by keep.
func Filter(words []string, keep FilterFunc) []string {
	return lo.Filter(words, func(word string, _ int) bool {
		return keep(word)
	})
}

func filterEnglishASCII(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}

func filterPrintableASCII(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch <= ' ' || ch > '~' {
			return false
		}
	}
	return true
}
