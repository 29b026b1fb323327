// Package lyrics renders the scrolling lyric panel. The poller decides which
// line is active and where the window starts; this package only draws it.
package lyrics

import (
	"strings"

	"github.com/llehouerou/zeedle/internal/lyrics"
	"github.com/llehouerou/zeedle/internal/ui"
	"github.com/llehouerou/zeedle/internal/ui/render"
	"github.com/llehouerou/zeedle/internal/ui/styles"
)

const activeMarker = "▶ "

// Model is the lyric panel.
type Model struct {
	ui.Base
	lines  []lyrics.Line
	active int
	offset int
	empty  string
}

// New creates a panel that shows empty when there are no lines.
func New(empty string) Model {
	return Model{active: -1, empty: empty}
}

// SetLines replaces the lyric. Lines are shared, not copied.
func (m *Model) SetLines(lines []lyrics.Line) {
	m.lines = lines
	m.active = -1
	m.offset = 0
}

// SetEmptyText sets what is shown for a track without lyrics.
func (m *Model) SetEmptyText(s string) {
	m.empty = s
}

// SetPosition moves the highlight to active and the window start to offset.
func (m *Model) SetPosition(active, offset int) {
	m.active = active
	m.offset = min(max(offset, 0), max(len(m.lines)-1, 0))
}

// Active returns the highlighted line, or -1.
func (m Model) Active() int { return m.active }

// Offset returns the first visible line.
func (m Model) Offset() int { return m.offset }

// View renders exactly Height rows of Width cells.
func (m Model) View() string {
	w, h := m.Size()
	if w == 0 || h == 0 {
		return ""
	}
	s := styles.S()

	rows := make([]string, 0, h)
	if len(m.lines) == 0 {
		for i := range h {
			if i == h/2 {
				rows = append(rows, s.Muted.Render(render.Center(m.empty, w)))
				continue
			}
			rows = append(rows, strings.Repeat(" ", w))
		}
		return strings.Join(rows, "\n")
	}

	for i := m.offset; i < m.offset+h; i++ {
		if i >= len(m.lines) {
			rows = append(rows, strings.Repeat(" ", w))
			continue
		}
		text := m.lines[i].Text
		if i == m.active {
			rows = append(rows, s.Active.Render(render.Cell(activeMarker+text, w)))
		} else {
			rows = append(rows, s.Lyric.Render(render.Cell("  "+text, w)))
		}
	}
	return strings.Join(rows, "\n")
}

// Len returns the number of lyric lines.
func (m Model) Len() int { return len(m.lines) }
