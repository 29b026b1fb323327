package playback

// Operations reported in ErrorEvent.
const (
	OpPlay    = "play"
	OpSeek    = "seek"
	OpLocale  = "locale"
	OpRescan  = "rescan"
	OpRestore = "restore"
)

// ErrorEvent is emitted when a command could not be carried out. It is a
// notice for the user, never fatal.
type ErrorEvent struct {
	Operation string
	Path      string // track path if applicable
	Err       error
}
