// Package app is the terminal presentation driver. It draws snapshots from
// the playback service, polls progress on a tick, and turns keys into
// commands.
package app

import (
	"time"

	"github.com/llehouerou/zeedle/internal/playback"
)

// TickMsg drives the progress poller.
type TickMsg time.Time

// SnapshotMsg carries a newly published snapshot.
type SnapshotMsg struct {
	Snapshot *playback.Snapshot
}

// ErrorMsg carries a failed command.
type ErrorMsg struct {
	Event playback.ErrorEvent
}

// ServiceClosedMsg is sent when the playback service shut down.
type ServiceClosedMsg struct{}

// RescanDoneMsg is sent when a rescan requested from the UI has run.
type RescanDoneMsg struct {
	Err error
}

// clearErrorMsg hides the error line if it is still error id.
type clearErrorMsg struct {
	id int
}
