package styles

import "github.com/charmbracelet/lipgloss"

// PanelStyle returns the rounded panel frame, drawn in the focus color for
// the active panel.
func PanelStyle(active bool) lipgloss.Style {
	frame := P.Frame
	if active {
		frame = P.Focus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(frame)
}

// Logo renders the application name with the accent gradient.
func Logo() string {
	return ApplyBoldGradient("zeedle", P.Accent, P.Highlight)
}
