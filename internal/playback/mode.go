package playback

import (
	"fmt"
	"strings"
)

// PlayMode decides what Next plays at the live edge of the history.
type PlayMode int

const (
	// InOrder plays the following catalog entry, wrapping at the end.
	InOrder PlayMode = iota
	// Random plays a uniformly chosen catalog entry.
	Random
	// Recursive replays the current track.
	Recursive
)

// String returns the mode name.
func (m PlayMode) String() string {
	switch m {
	case InOrder:
		return "in_order"
	case Random:
		return "random"
	case Recursive:
		return "recursive"
	default:
		return "unknown"
	}
}

// Cycle returns the mode after m, in declaration order.
func (m PlayMode) Cycle() PlayMode {
	return (m + 1) % (Recursive + 1)
}

// ParsePlayMode parses the names produced by PlayMode.String.
func ParsePlayMode(s string) (PlayMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in_order", "inorder", "":
		return InOrder, nil
	case "random":
		return Random, nil
	case "recursive":
		return Recursive, nil
	}
	return InOrder, fmt.Errorf("unknown play mode %q", s)
}

// Trigger records why a track was played. It decides how the history
// changes.
type Trigger int

const (
	// UserSelected is a direct pick. It appends to the history and returns
	// to the live edge.
	UserSelected Trigger = iota
	// SteppedForward comes from Next.
	SteppedForward
	// SteppedBack comes from Prev.
	SteppedBack
)

// String returns the trigger name.
func (t Trigger) String() string {
	switch t {
	case UserSelected:
		return "user_selected"
	case SteppedForward:
		return "stepped_forward"
	case SteppedBack:
		return "stepped_back"
	default:
		return "unknown"
	}
}
