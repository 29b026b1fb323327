package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/zeedle/internal/ui/styles"
)

func barStyle() lipgloss.Style {
	return styles.PanelStyle(false).Padding(0, 1)
}

func titleStyle() lipgloss.Style { return styles.S().Playing }

func artistStyle() lipgloss.Style { return styles.S().Muted }

func statusStyle(paused bool) lipgloss.Style {
	if paused {
		return styles.S().Warning
	}
	return styles.S().Success
}

func barFilledStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.P.Accent)
}

func barEmptyStyle() lipgloss.Style { return styles.S().Subtle }
