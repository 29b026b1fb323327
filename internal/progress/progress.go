// Package progress is the presentation-side poller. It turns the device
// position into the progress text and the active lyric line, and asks for the
// next track when the current one runs out. It only reads the device; every
// change goes through the playback queue.
package progress

import (
	"context"
	"time"

	"github.com/llehouerou/zeedle/internal/catalog"
	"github.com/llehouerou/zeedle/internal/lyrics"
	"github.com/llehouerou/zeedle/internal/playback"
)

// DefaultInterval is the poll period.
const DefaultInterval = 200 * time.Millisecond

// ActiveRow is the visible row the active lyric line is kept on.
const ActiveRow = 5

// Device is the read-only part of the engine.
type Device interface {
	Position() time.Duration
	Duration() time.Duration
	Empty() bool
}

// Queue is where snapshots come from and commands go to.
type Queue interface {
	Latest() *playback.Snapshot
	Send(cmd playback.Command) error
}

// View is the derived state the presentation layer draws.
type View struct {
	Elapsed  time.Duration
	Duration time.Duration
	// Progress is "MM:SS / MM:SS".
	Progress string
	// ActiveLine indexes the snapshot lyrics, or -1.
	ActiveLine int
	// Offset is the first visible lyric line.
	Offset   int
	Dragging bool
}

// Tracker derives View from the device and the latest snapshot.
// It is driven from one goroutine.
type Tracker struct {
	dev   Device
	queue Queue

	dragging bool
	dragPos  time.Duration

	// finished is set once Next has been sent for the current drain, so a
	// stale snapshot cannot trigger a second skip.
	finished bool
	view     View
}

// New creates a tracker.
func New(dev Device, queue Queue) *Tracker {
	return &Tracker{dev: dev, queue: queue, view: View{ActiveLine: -1}}
}

// View returns the last computed view.
func (t *Tracker) View() View { return t.view }

// BeginDrag freezes the displayed position at pos until EndDrag.
func (t *Tracker) BeginDrag(pos time.Duration) {
	t.dragging = true
	t.dragPos = pos
}

// Drag moves the displayed position during a drag.
func (t *Tracker) Drag(pos time.Duration) {
	if t.dragging {
		t.dragPos = pos
	}
}

// EndDrag ends the drag and queues a seek to where it stopped.
func (t *Tracker) EndDrag() error {
	if !t.dragging {
		return nil
	}
	t.dragging = false
	return t.queue.Send(playback.SeekCmd{Position: t.dragPos})
}

// Tick polls the device once.
func (t *Tracker) Tick() View {
	snap := t.queue.Latest()
	pb := snap.Playback

	empty := t.dev.Empty()
	if !empty {
		t.finished = false
	}
	if empty && pb.Current != nil && pb.UserListening && !pb.Paused && !t.finished {
		t.finished = true
		_ = t.queue.Send(playback.NextCmd{})
	}

	v := View{Duration: pb.Duration, Dragging: t.dragging}
	if v.Duration <= 0 && !empty {
		v.Duration = t.dev.Duration()
	}
	switch {
	case t.dragging:
		v.Elapsed = t.dragPos
	case !empty:
		v.Elapsed = t.dev.Position()
	case pb.Current != nil && t.finished:
		v.Elapsed = v.Duration
	}
	v.Elapsed = min(max(v.Elapsed, 0), max(v.Duration, 0))

	v.Progress = Format(v.Elapsed, v.Duration)
	v.ActiveLine = lyrics.ActiveLine(snap.Lyrics, v.Elapsed)
	v.Offset = Offset(v.ActiveLine)

	t.view = v
	return v
}

// Run ticks every interval until ctx is done and hands each view to fn.
func (t *Tracker) Run(ctx context.Context, interval time.Duration, fn func(View)) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			v := t.Tick()
			if fn != nil {
				fn(v)
			}
		}
	}
}

// Format renders "MM:SS / MM:SS".
func Format(elapsed, duration time.Duration) string {
	return catalog.FormatDuration(elapsed) + " / " + catalog.FormatDuration(duration)
}

// Offset returns the first visible lyric line that keeps active on
// ActiveRow.
func Offset(active int) int {
	return max(0, active-ActiveRow)
}
