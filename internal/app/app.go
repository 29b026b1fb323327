package app

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/message"

	"github.com/llehouerou/zeedle/internal/i18n"
	"github.com/llehouerou/zeedle/internal/keymap"
	"github.com/llehouerou/zeedle/internal/playback"
	"github.com/llehouerou/zeedle/internal/progress"
	"github.com/llehouerou/zeedle/internal/ui/lyrics"
	"github.com/llehouerou/zeedle/internal/ui/styles"
	"github.com/llehouerou/zeedle/internal/ui/tracklist"
)

// Service is the part of the playback service the UI uses.
type Service interface {
	progress.Queue
	Exec(ctx context.Context, cmd playback.Command) error
	Subscribe() *playback.Subscription
}

// Model is the root application model.
type Model struct {
	svc     Service
	sub     *playback.Subscription
	tracker *progress.Tracker
	keys    *keymap.Resolver

	snap     *playback.Snapshot
	view     progress.View
	printer  *message.Printer
	lyricFor string

	tracks tracklist.Model
	lyrics lyrics.Model

	spinner    spinner.Model
	rescanning bool
	showHelp   bool
	errText    string
	errID      int

	width, height int
}

// New creates the model. dev is read by the progress poller.
func New(svc Service, dev progress.Device) Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = styles.S().Muted

	m := Model{
		svc:     svc,
		sub:     svc.Subscribe(),
		tracker: progress.New(dev, svc),
		keys:    keymap.NewResolver(keymap.Bindings),
		tracks:  tracklist.New(),
		lyrics:  lyrics.New(""),
		spinner: sp,
		view:    progress.View{ActiveLine: -1},
	}
	m.applySnapshot(svc.Latest())
	m.tracks.JumpToPlaying()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(TickCmd(), WatchServiceEvents(m.sub))
}

// Snapshot returns the last snapshot the model drew.
func (m Model) Snapshot() *playback.Snapshot {
	return m.snap
}

// applySnapshot installs snap and refreshes what depends on it.
func (m *Model) applySnapshot(snap *playback.Snapshot) {
	if snap == nil {
		return
	}
	if m.snap == nil || m.snap.Locale != snap.Locale {
		m.printer = i18n.Printer(snap.Locale)
		m.lyrics.SetEmptyText(m.printer.Sprintf(i18n.NoLyrics))
	}
	m.snap = snap

	m.tracks.SetTracks(snap.Catalog)
	var path string
	if cur := snap.Playback.Current; cur != nil {
		path = cur.Path
	}
	m.tracks.SetPlaying(path)

	if path != m.lyricFor || len(snap.Lyrics) != m.lyrics.Len() {
		m.lyricFor = path
		m.lyrics.SetLines(snap.Lyrics)
	}
}
