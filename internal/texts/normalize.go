package texts

import (
	"strings"
	"unicode"
)

var punctReplacer = strings.NewReplacer(
	"‘", "'", "’", "'",
	"“", `"`, "”", `"`,
	"–", "-", "—", "-",
	"…", "...",
)

// Normalize turns arbitrary text into a single typable line of printable ASCII.
// Texts longer than maxLen are cut at the last word boundary; maxLen <= 0 disables the cut.
func Normalize(text string, maxLen int) string {
	text = punctReplacer.Replace(text)
	text = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return ' '
		case r < 0x20 || r > 0x7e:
			return -1
		default:
			return r
		}
	}, text)
	text = strings.Join(strings.Fields(text), " ")
	return truncate(text, maxLen)
}

// truncate expects ASCII input.
func truncate(text string, maxLen int) string {
	if maxLen <= 0 || len(text) <= maxLen {
		return text
	}
	if text[maxLen] == ' ' {
		return text[:maxLen]
	}
	cut := text[:maxLen]
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ")
}
