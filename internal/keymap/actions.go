// Package keymap binds keys to player actions.
package keymap

// Action is something the user can ask the player to do.
type Action string

const (
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Playback
	ActionPlayPause   Action = "play_pause"
	ActionNextTrack   Action = "next_track"
	ActionPrevTrack   Action = "prev_track"
	ActionSeekForward Action = "seek_forward"
	ActionSeekBack    Action = "seek_back"
	ActionCycleMode   Action = "cycle_mode"

	// Catalog
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionSelect    Action = "select"
	ActionCycleSort Action = "cycle_sort"
	ActionReverse   Action = "reverse_sort"
	ActionRescan    Action = "rescan"
	ActionLocale    Action = "cycle_locale"
)
