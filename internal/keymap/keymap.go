package keymap

// Binding ties keys to an action.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "catalog"
}

// Bindings is the default key map.
var Bindings = []Binding{
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Toggle help", "global"},
	{ActionLocale, []string{"L"}, "Switch language", "global"},

	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionNextTrack, []string{"n", "pgdown"}, "Next track", "playback"},
	{ActionPrevTrack, []string{"p", "pgup"}, "Previous track", "playback"},
	{ActionSeekForward, []string{"right", "l"}, "Seek +5s", "playback"},
	{ActionSeekBack, []string{"left", "h"}, "Seek -5s", "playback"},
	{ActionCycleMode, []string{"m"}, "Cycle play mode", "playback"},

	{ActionMoveUp, []string{"k", "up"}, "Move up", "catalog"},
	{ActionMoveDown, []string{"j", "down"}, "Move down", "catalog"},
	{ActionJumpStart, []string{"g", "home"}, "First track", "catalog"},
	{ActionJumpEnd, []string{"G", "end"}, "Last track", "catalog"},
	{ActionSelect, []string{"enter"}, "Play selected", "catalog"},
	{ActionCycleSort, []string{"s"}, "Cycle sort key", "catalog"},
	{ActionReverse, []string{"S"}, "Reverse sort order", "catalog"},
	{ActionRescan, []string{"r"}, "Rescan library", "catalog"},
}
