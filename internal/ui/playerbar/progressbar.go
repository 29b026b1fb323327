package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/zeedle/internal/catalog"
	"github.com/llehouerou/zeedle/internal/ui"
)

const (
	filledBlock = "━"
	emptyBlock  = "─"
	playSymbol  = "▶"
	pauseSymbol = "⏸"
)

// RenderProgressBar renders a line-style progress bar.
// Format: ▶  01:23  ━━━━━─────  04:56
func RenderProgressBar(position, duration time.Duration, width int, playing bool) string {
	status := playSymbol
	if !playing {
		status = pauseSymbol
	}

	posStr := catalog.FormatDuration(position)
	durStr := catalog.FormatDuration(duration)

	fixedWidth := lipgloss.Width(status) + 2 + lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr)
	barWidth := width - fixedWidth

	if barWidth < ui.MinProgressBarWidth {
		return status + "  " + posStr + " / " + durStr
	}

	filled := barWidth * Fill(position, duration) / 1000
	bar := barFilledStyle().Render(strings.Repeat(filledBlock, filled)) +
		barEmptyStyle().Render(strings.Repeat(emptyBlock, barWidth-filled))

	return status + "  " + posStr + "  " + bar + "  " + durStr
}

// Fill returns how much of duration position covers, in thousandths,
// clamped to [0, 1000].
func Fill(position, duration time.Duration) int {
	if duration <= 0 || position <= 0 {
		return 0
	}
	if position >= duration {
		return 1000
	}
	return int(position * 1000 / duration)
}

// PositionAt maps a column of a bar of the given width back to a track
// position, for dragging the playhead with the mouse.
func PositionAt(col, width int, duration time.Duration) time.Duration {
	if width <= 0 || duration <= 0 {
		return 0
	}
	col = min(max(col, 0), width)
	return duration * time.Duration(col) / time.Duration(width)
}
