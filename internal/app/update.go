package app

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	"github.com/llehouerou/zeedle/internal/catalog"
	"github.com/llehouerou/zeedle/internal/errmsg"
	"github.com/llehouerou/zeedle/internal/i18n"
	"github.com/llehouerou/zeedle/internal/keymap"
	"github.com/llehouerou/zeedle/internal/logger"
	"github.com/llehouerou/zeedle/internal/playback"
	"github.com/llehouerou/zeedle/internal/ui/playerbar"
)

// seekStep is the jump of one seek key press.
const seekStep = 5 * time.Second

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case TickMsg:
		m.poll()
		return m, TickCmd()

	case SnapshotMsg:
		m.applySnapshot(msg.Snapshot)
		return m, WatchServiceEvents(m.sub)

	case ErrorMsg:
		cmd := m.showError(errmsg.Event(msg.Event))
		return m, tea.Batch(cmd, WatchServiceEvents(m.sub))

	case ServiceClosedMsg:
		return m, tea.Quit

	case RescanDoneMsg:
		m.rescanning = false
		return m, nil

	case clearErrorMsg:
		if msg.id == m.errID {
			m.errText = ""
		}
		return m, nil

	case spinner.TickMsg:
		if !m.rescanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

// poll runs one progress tick and moves the lyric highlight.
func (m *Model) poll() {
	m.view = m.tracker.Tick()
	m.lyrics.SetPosition(m.view.ActiveLine, m.view.Offset)
}

func (m *Model) showError(text string) tea.Cmd {
	m.errID++
	m.errText = text
	return clearErrorCmd(m.errID)
}

// send queues cmd. The queue only blocks when full, which a key press
// cannot realistically fill.
func (m *Model) send(cmd playback.Command) {
	if err := m.svc.Send(cmd); err != nil {
		logger.Warn("command dropped", logger.Err(err))
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Resolve(msg.String())
	if m.showHelp && action != keymap.ActionQuit {
		if action == keymap.ActionHelp || msg.Type == tea.KeyEsc {
			m.showHelp = false
		}
		return m, nil
	}

	snap := m.snap
	switch action {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.showHelp = true

	case keymap.ActionPlayPause:
		m.send(playback.TogglePauseCmd{})
	case keymap.ActionNextTrack:
		m.send(playback.NextCmd{})
	case keymap.ActionPrevTrack:
		m.send(playback.PrevCmd{})
	case keymap.ActionSeekForward:
		m.send(playback.SeekCmd{Position: m.view.Elapsed + seekStep})
	case keymap.ActionSeekBack:
		m.send(playback.SeekCmd{Position: max(m.view.Elapsed-seekStep, 0)})
	case keymap.ActionCycleMode:
		m.send(playback.SetPlayModeCmd{Mode: snap.Mode.Cycle()})

	case keymap.ActionMoveUp:
		m.tracks.Move(-1)
	case keymap.ActionMoveDown:
		m.tracks.Move(1)
	case keymap.ActionJumpStart:
		m.tracks.JumpStart()
	case keymap.ActionJumpEnd:
		m.tracks.JumpEnd()
	case keymap.ActionSelect:
		if t, ok := m.tracks.Selected(); ok {
			m.send(playback.PlayCmd{Track: t, Trigger: playback.UserSelected})
		}
	case keymap.ActionCycleSort:
		m.send(playback.SortCmd{Key: nextSortKey(snap.SortKey), Ascending: snap.Ascending})
	case keymap.ActionReverse:
		m.send(playback.SortCmd{Key: snap.SortKey, Ascending: !snap.Ascending})
	case keymap.ActionRescan:
		if m.rescanning {
			return m, nil
		}
		m.rescanning = true
		return m, tea.Batch(RescanCmd(m.svc), m.spinner.Tick)
	case keymap.ActionLocale:
		m.send(playback.SetLocaleCmd{Tag: nextLocale(snap.Locale).String()})
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.tracks.Move(-1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.tracks.Move(1)
		return m, nil
	}

	start, width := m.barGeometry()
	onBar := msg.Y == m.barRow() && msg.X >= start && msg.X <= start+width
	pos := playerbar.PositionAt(msg.X-start, width, m.view.Duration)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if onBar && m.snap.Playback.Current != nil {
			m.tracker.BeginDrag(pos)
			m.poll()
			return m, nil
		}
		if i := m.tracks.IndexAt(msg.Y - m.listTop()); i >= 0 && msg.X < m.listWidth() {
			if i == m.tracks.Pos() {
				if t, ok := m.tracks.Selected(); ok {
					m.send(playback.PlayCmd{Track: t, Trigger: playback.UserSelected})
				}
			}
			m.tracks.Jump(i)
		}
	case tea.MouseActionMotion:
		if m.view.Dragging {
			m.tracker.Drag(pos)
			m.poll()
		}
	case tea.MouseActionRelease:
		if m.view.Dragging {
			m.tracker.Drag(pos)
			if err := m.tracker.EndDrag(); err != nil {
				logger.Warn("seek dropped", logger.Err(err))
			}
			m.poll()
		}
	}
	return m, nil
}

func nextSortKey(k catalog.SortKey) catalog.SortKey {
	return (k + 1) % (catalog.SortByDuration + 1)
}

// nextLocale returns the supported language after the one matching locale.
func nextLocale(locale string) language.Tag {
	cur := i18n.Match(locale)
	for i, tag := range i18n.Supported {
		if tag == cur {
			return i18n.Supported[(i+1)%len(i18n.Supported)]
		}
	}
	return i18n.Supported[0]
}
