package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/zeedle/internal/playback"
	"github.com/llehouerou/zeedle/internal/progress"
)

// errorTimeout is how long a failure stays on the status line.
const errorTimeout = 5 * time.Second

// TickCmd returns a command that sends TickMsg after the poll interval.
func TickCmd() tea.Cmd {
	return tea.Tick(progress.DefaultInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// WatchServiceEvents waits for the next snapshot, error or shutdown of sub.
func WatchServiceEvents(sub *playback.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case snap := <-sub.Snapshots:
			return SnapshotMsg{Snapshot: snap}
		case e := <-sub.Error:
			return ErrorMsg{Event: e}
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
	}
}

// RescanCmd runs a rescan of the current library root and waits for it.
func RescanCmd(svc Service) tea.Cmd {
	return func() tea.Msg {
		return RescanDoneMsg{Err: svc.Exec(context.Background(), playback.RescanCmd{})}
	}
}

func clearErrorCmd(id int) tea.Cmd {
	return tea.Tick(errorTimeout, func(time.Time) tea.Msg {
		return clearErrorMsg{id: id}
	})
}
