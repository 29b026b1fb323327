package player

import (
	"sync"
	"time"

	"github.com/gopxl/beep/v2"

	"github.com/llehouerou/zeedle/internal/logger"
)

var _ beep.Streamer = (*Engine)(nil)

// Loaded describes the track the engine just started.
type Loaded struct {
	Path       string
	Duration   time.Duration
	Format     string
	SampleRate int
}

// Engine owns the single output sink for the lifetime of the process.
//
// The engine itself is the streamer attached to the device. It streams
// silence while empty or paused and never reports exhaustion, so the
// device keeps pulling from it. All state is guarded by mu, which Stream
// holds only for one buffer fill.
type Engine struct {
	mu     sync.Mutex
	device Device
	rate   beep.SampleRate

	src    beep.StreamSeekCloser // decoded track, nil when empty
	play   beep.Streamer         // src, resampled to the device rate if needed
	format beep.Format
	path   string
	paused bool
}

// Open connects to the system audio output at rate. Failure is fatal for
// the player.
func Open(rate beep.SampleRate) (*Engine, error) {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	dev, err := openSpeaker(rate)
	if err != nil {
		return nil, err
	}
	return NewEngine(dev, rate), nil
}

// NewEngine attaches a new, empty engine to dev.
func NewEngine(dev Device, rate beep.SampleRate) *Engine {
	e := &Engine{device: dev, rate: rate}
	dev.Play(e)
	return e
}

// Stream implements beep.Streamer.
func (e *Engine) Stream(samples [][2]float64) (n int, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.src != nil && !e.paused {
		n, ok = e.play.Stream(samples)
		if !ok {
			if err := e.src.Err(); err != nil {
				logger.Warn("stream error", logger.String("path", e.path), logger.Err(err))
			}
			e.release()
		}
	}
	clear(samples[n:])
	return len(samples), true
}

// Err implements beep.Streamer.
func (e *Engine) Err() error { return nil }

// LoadAndPlay replaces the sink's content with path and starts it from the
// beginning. On failure the sink is left empty and a *DecodeError is
// returned.
func (e *Engine) LoadAndPlay(path string) (Loaded, error) {
	streamer, format, name, err := decodeFile(path)
	if err != nil {
		e.Clear()
		return Loaded{}, &DecodeError{Path: path, Err: err}
	}

	var play beep.Streamer = streamer
	if format.SampleRate != e.rate {
		play = beep.Resample(4, format.SampleRate, e.rate, streamer)
	}

	e.mu.Lock()
	e.release()
	e.src = streamer
	e.play = play
	e.format = format
	e.path = path
	e.paused = false
	e.mu.Unlock()

	loaded := Loaded{
		Path:       path,
		Duration:   format.SampleRate.D(streamer.Len()),
		Format:     name,
		SampleRate: int(format.SampleRate),
	}
	logger.Debug("track loaded",
		logger.String("path", path),
		logger.String("format", name),
		logger.Duration("duration", loaded.Duration),
	)
	return loaded, nil
}

// TogglePause flips the paused flag. loaded is false when the sink is empty,
// in which case nothing changes and paused reports true.
func (e *Engine) TogglePause() (paused, loaded bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.src == nil {
		return true, false
	}
	e.paused = !e.paused
	return e.paused, true
}

// Pause pauses the current track, if any.
func (e *Engine) Pause() {
	e.mu.Lock()
	e.paused = true
	e.mu.Unlock()
}

// Resume resumes the current track, if any.
func (e *Engine) Resume() {
	e.mu.Lock()
	e.paused = false
	e.mu.Unlock()
}

// Seek moves to pos, clamped to [0, Duration]. Seeking with nothing loaded
// is a no-op. A decoder failure returns a *SeekError and keeps the previous
// position.
func (e *Engine) Seek(pos time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.src == nil {
		return nil
	}

	n := min(max(e.format.SampleRate.N(pos), 0), e.src.Len())
	if err := e.src.Seek(n); err != nil {
		return &SeekError{Position: pos, Err: err}
	}
	if e.format.SampleRate != e.rate {
		// The resampler buffers ahead; start it fresh at the new offset.
		e.play = beep.Resample(4, e.format.SampleRate, e.rate, e.src)
	}
	return nil
}

// Position returns the elapsed time of the current track.
func (e *Engine) Position() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.src == nil {
		return 0
	}
	return e.format.SampleRate.D(e.src.Position())
}

// Duration returns the length of the current track.
func (e *Engine) Duration() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.src == nil {
		return 0
	}
	return e.format.SampleRate.D(e.src.Len())
}

// Paused reports whether output is held. An empty sink counts as paused.
func (e *Engine) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.src == nil || e.paused
}

// Empty reports whether the sink holds no track, either because nothing was
// loaded or because the last track played to its end.
func (e *Engine) Empty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.src == nil
}

// Path returns the file currently in the sink.
func (e *Engine) Path() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.path
}

// State returns the coarse playback state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch {
	case e.src == nil:
		return Stopped
	case e.paused:
		return Paused
	default:
		return Playing
	}
}

// Clear empties the sink.
func (e *Engine) Clear() {
	e.mu.Lock()
	e.release()
	e.mu.Unlock()
}

// Close empties the sink and releases the output device.
func (e *Engine) Close() {
	e.Clear()
	e.device.Close()
}

// release closes the current track. Callers hold mu.
func (e *Engine) release() {
	if e.src != nil {
		if err := e.src.Close(); err != nil {
			logger.Debug("close decoder", logger.String("path", e.path), logger.Err(err))
		}
	}
	e.src = nil
	e.play = nil
	e.path = ""
	e.paused = false
}
