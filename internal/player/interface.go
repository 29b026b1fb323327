package player

import "time"

// Interface is the engine contract used by the command processor and the
// progress poller.
type Interface interface {
	LoadAndPlay(path string) (Loaded, error)
	TogglePause() (paused, loaded bool)
	Pause()
	Seek(pos time.Duration) error
	Clear()

	Position() time.Duration
	Duration() time.Duration
	Paused() bool
	Empty() bool
	State() State
}

// Verify Engine implements Interface at compile time.
var _ Interface = (*Engine)(nil)
