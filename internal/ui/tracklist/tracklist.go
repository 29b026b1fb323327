// Package tracklist renders the catalog as a scrollable list with a cursor
// and a marker on the playing track.
package tracklist

import (
	"fmt"
	"strings"

	"github.com/llehouerou/zeedle/internal/catalog"
	"github.com/llehouerou/zeedle/internal/ui"
	"github.com/llehouerou/zeedle/internal/ui/render"
	"github.com/llehouerou/zeedle/internal/ui/styles"
)

// durationWidth fits "MM:SS" plus a leading space.
const durationWidth = 6

// Model is the catalog list. Height is the number of visible rows.
type Model struct {
	ui.Base
	tracks  []catalog.Track
	pos     int
	offset  int
	margin  int
	playing string
}

// New creates an empty list.
func New() Model {
	return Model{margin: ui.ScrollMargin}
}

// SetTracks replaces the list and keeps the cursor on the same path when it
// is still present.
func (m *Model) SetTracks(tracks []catalog.Track) {
	var keep string
	if t, ok := m.Selected(); ok {
		keep = t.Path
	}
	m.tracks = tracks
	m.pos = 0
	for i, t := range tracks {
		if t.Path == keep {
			m.pos = i
			break
		}
	}
	m.ensureVisible()
}

// SetPlaying marks the track with path as playing.
func (m *Model) SetPlaying(path string) {
	m.playing = path
}

// SetSize sets the list dimensions and keeps the cursor visible.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.ensureVisible()
}

// Len returns the number of tracks.
func (m Model) Len() int { return len(m.tracks) }

// Pos returns the cursor position.
func (m Model) Pos() int { return m.pos }

// Offset returns the first visible row.
func (m Model) Offset() int { return m.offset }

// Selected returns the track under the cursor.
func (m Model) Selected() (catalog.Track, bool) {
	if m.pos < 0 || m.pos >= len(m.tracks) {
		return catalog.Track{}, false
	}
	return m.tracks[m.pos], true
}

// Move moves the cursor by delta, clamped to the list.
func (m *Model) Move(delta int) {
	m.Jump(m.pos + delta)
}

// Jump puts the cursor on i, clamped to the list.
func (m *Model) Jump(i int) {
	if len(m.tracks) == 0 {
		return
	}
	m.pos = min(max(i, 0), len(m.tracks)-1)
	m.ensureVisible()
}

// JumpStart moves to the first track.
func (m *Model) JumpStart() { m.Jump(0) }

// JumpEnd moves to the last track.
func (m *Model) JumpEnd() { m.Jump(len(m.tracks) - 1) }

// JumpToPlaying moves the cursor to the playing track, if listed.
func (m *Model) JumpToPlaying() {
	for i, t := range m.tracks {
		if t.Path == m.playing {
			m.Jump(i)
			return
		}
	}
}

// IndexAt returns the track shown on visible row y, or -1.
func (m Model) IndexAt(y int) int {
	if y < 0 || y >= m.Height() {
		return -1
	}
	if i := m.offset + y; i < len(m.tracks) {
		return i
	}
	return -1
}

func (m *Model) ensureVisible() {
	h := m.Height()
	if h <= 0 || len(m.tracks) == 0 {
		m.offset = 0
		return
	}
	margin := min(m.margin, (h-1)/2)
	if m.pos < m.offset+margin {
		m.offset = m.pos - margin
	}
	if m.pos >= m.offset+h-margin {
		m.offset = m.pos - h + margin + 1
	}
	m.offset = min(max(m.offset, 0), max(len(m.tracks)-h, 0))
}

// View renders Height rows: a marker, the title, the artist and the
// duration of each visible track.
func (m Model) View() string {
	w, h := m.Size()
	if w == 0 || h == 0 {
		return ""
	}
	s := styles.S()

	textWidth := max(w-2-durationWidth, 0)
	titleWidth := textWidth * 3 / 5
	artistWidth := textWidth - titleWidth

	rows := make([]string, 0, h)
	for y := range h {
		i := m.offset + y
		if i >= len(m.tracks) {
			rows = append(rows, strings.Repeat(" ", w))
			continue
		}
		t := m.tracks[i]

		marker := "  "
		style := s.Base
		if t.Path == m.playing {
			marker = "♪ "
			style = s.Playing
		}
		row := marker +
			render.Cell(t.Title, titleWidth) +
			render.Cell(t.Artist, artistWidth) +
			fmt.Sprintf("%*s", durationWidth, t.Duration)
		row = render.Cell(row, w)
		if i == m.pos {
			style = style.Inherit(s.Cursor)
		}
		rows = append(rows, style.Render(row))
	}
	return strings.Join(rows, "\n")
}
