// Package styles holds the colors and text styles of the terminal UI.
package styles

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of interface colors.
type Palette struct {
	Accent    lipgloss.Color // logo start, playing row, filled progress
	Highlight lipgloss.Color // logo end, sung lyric line
	Text      lipgloss.Color
	Dim       lipgloss.Color
	Faint     lipgloss.Color
	Selection lipgloss.Color // cursor row background
	Frame     lipgloss.Color
	Focus     lipgloss.Color // frame of the focused panel
	Playing   lipgloss.Color
	Paused    lipgloss.Color
	Failure   lipgloss.Color
}

// Styles are the text styles derived from a Palette.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Playing lipgloss.Style
	Cursor  lipgloss.Style
	Lyric   lipgloss.Style
	Active  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// P is the palette in use.
var P = Palette{
	Accent:    "#5eead4",
	Highlight: "#fbbf24",
	Text:      "#d4d4d4",
	Dim:       "#8a8a8a",
	Faint:     "#5c5c5c",
	Selection: "#2e3440",
	Frame:     "#4b5563",
	Focus:     "#5eead4",
	Playing:   "#4ade80",
	Paused:    "#fbbf24",
	Failure:   "#f87171",
}

var shared = sync.OnceValue(func() *Styles { return newStyles(P) })

// S returns the styles built from P.
func S() *Styles { return shared() }

func newStyles(p Palette) *Styles {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	return &Styles{
		Base:    fg(p.Text),
		Muted:   fg(p.Dim),
		Subtle:  fg(p.Faint),
		Playing: fg(p.Accent).Bold(true),
		Cursor:  fg(p.Text).Background(p.Selection),
		Lyric:   fg(p.Faint),
		Active:  fg(p.Highlight).Bold(true),
		Success: fg(p.Playing),
		Warning: fg(p.Paused),
		Error:   fg(p.Failure),
	}
}
