package player

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// DefaultSampleRate is the output device rate. Tracks at other rates are
// resampled.
const DefaultSampleRate beep.SampleRate = 44100

// Device is the audio output the engine's sink is attached to.
type Device interface {
	// Play attaches s to the output. It is called once.
	Play(s beep.Streamer)
	Close()
}

// speakerDevice is the system audio output through beep/speaker.
type speakerDevice struct{}

// openSpeaker initializes the speaker with a 100ms buffer.
func openSpeaker(rate beep.SampleRate) (Device, error) {
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("open audio output: %w", err)
	}
	return speakerDevice{}, nil
}

func (speakerDevice) Play(s beep.Streamer) { speaker.Play(s) }

func (speakerDevice) Close() {
	speaker.Clear()
	speaker.Close()
}
