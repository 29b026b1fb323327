// Package render lays out tag text in fixed-width terminal cells.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// Sanitize drops control characters other than tab and invalid UTF-8 bytes
// from tag text, and turns non-breaking spaces into spaces.
func Sanitize(s string) string {
	if utf8.ValidString(s) && strings.IndexFunc(s, unclean) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\u00a0':
			return ' '
		case unclean(r):
			return -1
		}
		return r
	}, strings.ToValidUTF8(s, ""))
}

func unclean(r rune) bool {
	return r == '\u00a0' || (r != '\t' && unicode.IsControl(r))
}

// Cell fits s into exactly width cells, truncating with an ellipsis.
// Wide characters count as two cells.
func Cell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = Sanitize(s)
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, ellipsis)
	}
	return runewidth.FillRight(s, width)
}

// Center places s in the middle of width cells. Text wider than width is
// shortened instead.
func Center(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return Cell(s, width)
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

// Row pushes right to the far edge of width, keeping at least one space
// after left.
func Row(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}
