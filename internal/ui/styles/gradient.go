package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// ApplyBoldGradient renders text in bold with its foreground blended from
// one color to the other, one step per grapheme cluster. Colors that are
// not #rrggbb render the whole text in from.
func ApplyBoldGradient(text string, from, to lipgloss.Color) string {
	if text == "" {
		return ""
	}
	bold := lipgloss.NewStyle().Bold(true)
	clusters := graphemes(text)
	stops, ok := gradientStops(len(clusters), from, to)
	if !ok {
		return bold.Foreground(from).Render(text)
	}
	var b strings.Builder
	for i, c := range clusters {
		b.WriteString(bold.Foreground(lipgloss.Color(stops[i])).Render(c))
	}
	return b.String()
}

// gradientStops returns n hex colors from from to to, blended in HCL so the
// steps look even. It reports false for fewer than two stops or non-hex
// colors.
func gradientStops(n int, from, to lipgloss.Color) ([]string, bool) {
	start, err := colorful.Hex(string(from))
	if err != nil || n < 2 {
		return nil, false
	}
	end, err := colorful.Hex(string(to))
	if err != nil {
		return nil, false
	}
	stops := make([]string, n)
	for i := range stops {
		stops[i] = start.BlendHcl(end, float64(i)/float64(n-1)).Clamped().Hex()
	}
	stops[0], stops[n-1] = start.Hex(), end.Hex()
	return stops, true
}

func graphemes(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}
