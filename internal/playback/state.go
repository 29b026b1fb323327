package playback

import (
	"time"

	"github.com/llehouerou/zeedle/internal/catalog"
	"github.com/llehouerou/zeedle/internal/lyrics"
	"github.com/llehouerou/zeedle/internal/tags"
)

// State represents the playback state.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// PlaybackState is what the presentation layer shows about the current
// track. Paused is true whenever Current is nil.
type PlaybackState struct {
	Current       *catalog.Track
	Elapsed       time.Duration
	Duration      time.Duration
	Paused        bool
	UserListening bool
	// Dragging is owned by the presentation layer; the service never sets it.
	Dragging bool
}

// State derives the coarse state.
func (p PlaybackState) State() State {
	switch {
	case p.Current == nil:
		return StateStopped
	case p.Paused:
		return StatePaused
	default:
		return StatePlaying
	}
}

// HistoryView is a read-only copy of the history.
type HistoryView struct {
	// Entries are oldest first, with IDs resolved against the snapshot's
	// catalog. Entries whose file left the catalog have ID -1.
	Entries []catalog.Track
	Pointer int
}

// Snapshot is the immutable state published after every committed command.
type Snapshot struct {
	// Seq increases by one per publication.
	Seq uint64

	Playback PlaybackState
	History  HistoryView
	Catalog  []catalog.Track

	LibraryRoot string
	Mode        PlayMode
	SortKey     catalog.SortKey
	Ascending   bool
	Locale      string

	// Lyrics of the current track; empty when there is none.
	Lyrics []lyrics.Line
	Cover  *tags.Picture
}

// emptyPlayback is the state with no track.
func emptyPlayback() PlaybackState {
	return PlaybackState{Paused: true}
}
