// Package notify shows playback failures as freedesktop desktop notices.
package notify

// Notice is one desktop notice. Replaces is the id of the notice it
// supersedes, or 0 for a new one.
type Notice struct {
	Summary  string
	Body     string
	Replaces uint32
}

// Notifier shows notices and returns the id the notification server
// assigned.
type Notifier interface {
	Notify(n Notice) (uint32, error)
}
