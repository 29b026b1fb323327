// Package playerbar renders the bottom bar: the current track, the play
// state and mode, and the progress bar.
package playerbar

import (
	"time"

	"golang.org/x/text/message"

	"github.com/llehouerou/zeedle/internal/i18n"
	"github.com/llehouerou/zeedle/internal/playback"
	"github.com/llehouerou/zeedle/internal/progress"
	"github.com/llehouerou/zeedle/internal/ui"
	"github.com/llehouerou/zeedle/internal/ui/render"
)

// Height is the bar height including its border.
const Height = ui.PlayerBarHeight

// State holds everything needed to render the player bar.
type State struct {
	Loaded   bool
	Paused   bool
	Title    string
	Artist   string
	Status   string
	Mode     string
	Elapsed  time.Duration
	Duration time.Duration
}

// NewState builds the bar state from a snapshot and the poller's view.
func NewState(snap *playback.Snapshot, v progress.View, p *message.Printer) State {
	s := State{
		Mode:     p.Sprintf(ModeKey(snap.Mode)),
		Elapsed:  v.Elapsed,
		Duration: v.Duration,
		Status:   p.Sprintf(i18n.Stopped),
	}
	cur := snap.Playback.Current
	if cur == nil {
		return s
	}
	s.Loaded = true
	s.Paused = snap.Playback.Paused
	s.Title = cur.Title
	s.Artist = cur.Artist
	if s.Paused {
		s.Status = p.Sprintf(i18n.Paused)
	} else {
		s.Status = p.Sprintf(i18n.Playing)
	}
	return s
}

// ModeKey returns the message key naming m.
func ModeKey(m playback.PlayMode) string {
	switch m {
	case playback.Random:
		return i18n.ModeRandom
	case playback.Recursive:
		return i18n.ModeRepeat
	default:
		return i18n.ModeInOrder
	}
}

// Render returns the bordered bar for the given outer width.
func Render(s State, width int) string {
	inner := max(width-4, 0)

	var left string
	if s.Loaded {
		left = titleStyle().Render(render.Sanitize(s.Title)) + "  " + artistStyle().Render(render.Sanitize(s.Artist))
	}
	right := statusStyle(s.Paused || !s.Loaded).Render(s.Status) + " · " + artistStyle().Render(s.Mode)
	top := render.Row(left, right, inner)

	bottom := RenderProgressBar(s.Elapsed, s.Duration, inner, s.Loaded && !s.Paused)

	return barStyle().Width(max(width-2, 0)).Render(top + "\n" + bottom)
}
