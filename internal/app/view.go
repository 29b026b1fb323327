package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/zeedle/internal/catalog"
	"github.com/llehouerou/zeedle/internal/i18n"
	"github.com/llehouerou/zeedle/internal/ui"
	"github.com/llehouerou/zeedle/internal/ui/overlay"
	"github.com/llehouerou/zeedle/internal/ui/playerbar"
	"github.com/llehouerou/zeedle/internal/ui/render"
	"github.com/llehouerou/zeedle/internal/ui/styles"
)

const (
	headerHeight = 1
	footerHeight = 1
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	parts := []string{m.renderHeader(), m.renderBody(), m.renderBar(), m.renderFooter()}
	out := lipgloss.JoinVertical(lipgloss.Left, parts...)

	if m.showHelp {
		out = overlay.Center(out, m.renderHelp(), m.width, m.height)
	}
	return out
}

func (m Model) renderHeader() string {
	s := styles.S()
	p := m.printer

	left := styles.Logo() + "  " +
		s.Muted.Render(p.Sprintf(i18n.TrackCount, len(m.snap.Catalog))) + s.Subtle.Render(" · ") +
		s.Muted.Render(p.Sprintf(i18n.SortedBy, p.Sprintf(sortKeyName(m.snap.SortKey))))
	if !m.snap.Ascending {
		left += s.Muted.Render(" ↓")
	}
	if m.rescanning {
		left += " " + m.spinner.View()
	}
	right := s.Subtle.Render(render.Sanitize(m.snap.LibraryRoot))
	return render.Row(left, right, m.width)
}

func (m Model) renderBody() string {
	listW := m.listWidth()
	h := m.bodyHeight()

	var list string
	if len(m.snap.Catalog) == 0 {
		msg := m.printer.Sprintf(i18n.EmptyLibrary, m.snap.LibraryRoot)
		list = lipgloss.Place(max(listW-2, 0), max(h-2, 0), lipgloss.Center, lipgloss.Center,
			styles.S().Muted.Render(msg))
	} else {
		list = m.tracks.View()
	}
	list = styles.PanelStyle(true).Render(list)

	if listW == m.width {
		return list
	}
	lyr := styles.PanelStyle(false).Render(m.lyrics.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, list, lyr)
}

func (m Model) renderBar() string {
	return playerbar.Render(playerbar.NewState(m.snap, m.view, m.printer), m.width)
}

func (m Model) renderFooter() string {
	s := styles.S()
	if m.errText != "" {
		return s.Error.Render(render.Cell(m.errText, m.width))
	}
	return s.Subtle.Render(render.Cell(m.printer.Sprintf(i18n.Help), m.width))
}

func (m Model) renderHelp() string {
	rows := m.keys.Help()
	body := strings.Join(rows, "\n")
	return styles.PanelStyle(true).Padding(0, 1).Render(body)
}

// layout sizes the panels for the current window.
func (m *Model) layout() {
	h := max(m.bodyHeight()-ui.BorderHeight, 0)
	listW := m.listWidth()
	m.tracks.SetSize(max(listW-2, 0), h)
	m.lyrics.SetSize(max(m.width-listW-2, 0), h)
}

func (m Model) bodyHeight() int {
	return max(m.height-headerHeight-footerHeight-playerbar.Height, 0)
}

// listWidth is the outer width of the catalog panel.
func (m Model) listWidth() int {
	if m.width < ui.MinSplitWidth {
		return m.width
	}
	return m.width / ui.CatalogWidthDivisor
}

// listTop is the screen row of the first track.
func (m Model) listTop() int {
	return headerHeight + 1
}

// barRow is the screen row of the progress bar.
func (m Model) barRow() int {
	return headerHeight + m.bodyHeight() + playerbar.Height - 2
}

// barGeometry returns the first column and the width of the progress bar's
// track, matching playerbar.RenderProgressBar.
func (m Model) barGeometry() (start, width int) {
	inner := max(m.width-4, 0)
	// "▶  MM:SS  " before the bar and "  MM:SS" after it.
	const before, after = 1 + 2 + 5 + 2, 2 + 5
	return 2 + before, max(inner-before-after, 0)
}

// sortKeyName returns the message key naming k.
func sortKeyName(k catalog.SortKey) string {
	switch k {
	case catalog.SortByArtist:
		return i18n.SortArtist
	case catalog.SortByDuration:
		return i18n.SortDuration
	default:
		return i18n.SortTitle
	}
}
