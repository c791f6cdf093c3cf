package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typetest/internal/typing"
)

const wrongSpace = '•'

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledRunes styles every target rune from the snapshot: typed runes by
// correctness, the word under the cursor highlighted, the cursor underlined.
func buildStyledRunes(snap typing.Snapshot) []styledRune {
	cursor := -1
	if snap.Phase != typing.PhaseCompleted && len(snap.Typed) < len(snap.Target) {
		cursor = len(snap.Typed)
	}
	wordStart, wordEnd := currentWord(snap.Target, cursor)

	out := make([]styledRune, 0, len(snap.Target))
	for i, target := range snap.Target {
		displayed := target
		style := pendingStyle
		switch {
		case i < len(snap.Typed):
			typed := snap.Typed[i]
			switch {
			case typed == target:
				style = correctStyle
			case target == ' ':
				displayed = wrongSpace
				style = incorrectStyle
			default:
				style = incorrectStyle
			}
		case target != ' ' && i >= wordStart && i < wordEnd:
			style = currentWordStyle
		}
		if i == cursor {
			style = style.Underline(true)
		}
		out = append(out, styledRune{
			s:       style.Render(string(displayed)),
			width:   runewidth.RuneWidth(displayed),
			isSpace: target == ' ',
		})
	}
	return out
}

// currentWord returns the [start, end) range of the word at or after cursor.
func currentWord(target []rune, cursor int) (int, int) {
	if cursor < 0 {
		return 0, 0
	}
	start := cursor
	for start < len(target) && target[start] == ' ' {
		start++
	}
	for start > 0 && target[start-1] != ' ' {
		start--
	}
	end := start
	for end < len(target) && target[end] != ' ' {
		end++
	}
	return start, end
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks lines at spaces so that no line exceeds width cells.
// The breaking space is dropped; words wider than a line are split.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var lines []string
	lineStart, lineWidth, lastSpace := 0, 0, -1
	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && i > lineStart {
			switch {
			case item.isSpace:
				lines = append(lines, renderStyledRunes(runes[lineStart:i]))
				i++
				lineStart = i
			case lastSpace >= lineStart:
				lines = append(lines, renderStyledRunes(runes[lineStart:lastSpace]))
				lineStart = lastSpace + 1
			default:
				lines = append(lines, renderStyledRunes(runes[lineStart:i]))
				lineStart = i
			}
			lineWidth = widthOf(runes[lineStart:i])
			lastSpace = -1
			continue
		}
		lineWidth += item.width
		if item.isSpace {
			lastSpace = i
		}
		i++
	}
	if lineStart < len(runes) || len(lines) == 0 {
		lines = append(lines, renderStyledRunes(runes[lineStart:]))
	}
	return strings.Join(lines, "\n")
}

func widthOf(runes []styledRune) int {
	total := 0
	for _, item := range runes {
		total += item.width
	}
	return total
}
