// Package overlay draws a box over an already rendered view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Center places box in the middle of a width x height base view.
func Center(base, box string, width, height int) string {
	placed := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
	return Compose(base, placed, width)
}

// Compose overlays content on top of a base view. The visible span of each
// overlay line, from its first to its last non-space column, replaces the
// base at the same columns. Styled text is handled.
func Compose(base, overlay string, width int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")

	for i, overlayLine := range overlayLines {
		if i >= len(baseLines) {
			break
		}

		plain := ansi.Strip(overlayLine)
		trimmed := strings.TrimRight(plain, " ")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		startCol := ansi.StringWidth(plain) - ansi.StringWidth(strings.TrimLeft(plain, " "))
		endCol := ansi.StringWidth(trimmed)

		baseLine := baseLines[i]
		if w := ansi.StringWidth(baseLine); w < width {
			baseLine += strings.Repeat(" ", width-w)
		}

		line := ansi.Cut(baseLine, 0, startCol) + ansi.Cut(overlayLine, startCol, endCol)
		if endCol < width {
			line += ansi.Cut(baseLine, endCol, width)
		}
		baseLines[i] = line
	}

	return strings.Join(baseLines, "\n")
}
