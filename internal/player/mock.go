package player

import (
	"sync"
	"time"
)

// Mock is a test double for Engine. It is safe for concurrent use.
type Mock struct {
	mu        sync.Mutex
	state     State
	path      string
	position  time.Duration
	duration  time.Duration
	durations map[string]time.Duration
	playErrs  map[string]error
	seekErr   error
	playCalls []string
	seekCalls []time.Duration
}

// NewMock creates a new, empty mock engine.
func NewMock() *Mock {
	return &Mock{
		state:     Stopped,
		durations: make(map[string]time.Duration),
		playErrs:  make(map[string]error),
	}
}

func (m *Mock) LoadAndPlay(path string) (Loaded, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls = append(m.playCalls, path)
	if err := m.playErrs[path]; err != nil {
		m.clearLocked()
		return Loaded{}, &DecodeError{Path: path, Err: err}
	}
	m.state = Playing
	m.path = path
	m.position = 0
	m.duration = m.durations[path]
	return Loaded{Path: path, Duration: m.duration, Format: "MOCK"}, nil
}

func (m *Mock) TogglePause() (paused, loaded bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case Playing:
		m.state = Paused
		return true, true
	case Paused:
		m.state = Playing
		return false, true
	default:
		return true, false
	}
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) Seek(pos time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, pos)
	if m.state == Stopped {
		return nil
	}
	if m.seekErr != nil {
		return &SeekError{Position: pos, Err: m.seekErr}
	}
	m.position = min(max(pos, 0), m.duration)
	return nil
}

func (m *Mock) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
}

func (m *Mock) clearLocked() {
	m.state = Stopped
	m.path = ""
	m.position = 0
	m.duration = 0
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *Mock) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state != Playing
}

func (m *Mock) Empty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == Stopped
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Test helpers

// SetPlayError makes LoadAndPlay(path) fail with a DecodeError wrapping err.
func (m *Mock) SetPlayError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErrs[path] = err
}

// SetSeekError makes Seek fail with a SeekError wrapping err.
func (m *Mock) SetSeekError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekErr = err
}

// SetDuration sets the duration reported after LoadAndPlay(path).
func (m *Mock) SetDuration(path string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations[path] = d
}

// SetPosition sets the elapsed time.
func (m *Mock) SetPosition(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = d
}

// CurrentPath returns the loaded path, or "" when empty.
func (m *Mock) CurrentPath() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.path
}

// PlayCalls returns the paths passed to LoadAndPlay, in order.
func (m *Mock) PlayCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.playCalls...)
}

// SeekCalls returns the positions passed to Seek, in order.
func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

// SimulateFinished drains the sink as if the track played to its end.
func (m *Mock) SimulateFinished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
