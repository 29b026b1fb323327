package player

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/go-mp3"
)

// bytesPerFrame is one stereo frame of 16-bit little-endian PCM, which is
// all go-mp3 ever produces.
const bytesPerFrame = 4

// mp3Stream adapts a go-mp3 decoder to beep. go-mp3 seeks to an exact
// sample, which keeps restored positions and progress-bar seeks precise.
type mp3Stream struct {
	dec *mp3.Decoder
	src io.Closer
	pcm []byte
	err error
}

func decodeGoMP3(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
	dec, err := mp3.NewDecoder(rc)
	if err != nil {
		return nil, beep.Format{}, err
	}
	if dec.SampleRate() <= 0 {
		return nil, beep.Format{}, errors.New("mp3: invalid sample rate")
	}
	format := beep.Format{
		SampleRate:  beep.SampleRate(dec.SampleRate()),
		NumChannels: 2,
		Precision:   2,
	}
	return &mp3Stream{dec: dec, src: rc}, format, nil
}

func (s *mp3Stream) Stream(samples [][2]float64) (int, bool) {
	if s.err != nil {
		return 0, false
	}
	need := len(samples) * bytesPerFrame
	if cap(s.pcm) < need {
		s.pcm = make([]byte, need)
	}
	read, err := io.ReadFull(s.dec, s.pcm[:need])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		s.err = err
		return 0, false
	}
	n := pcmToSamples(samples, s.pcm[:read])
	return n, n > 0
}

// pcmToSamples converts whole frames of interleaved int16 PCM into dst and
// returns how many frames were written. A trailing partial frame is ignored.
func pcmToSamples(dst [][2]float64, pcm []byte) int {
	n := min(len(pcm)/bytesPerFrame, len(dst))
	for i := range n {
		frame := pcm[i*bytesPerFrame:]
		dst[i][0] = float64(int16(binary.LittleEndian.Uint16(frame))) / 32768    //nolint:gosec // pcm
		dst[i][1] = float64(int16(binary.LittleEndian.Uint16(frame[2:]))) / 32768 //nolint:gosec // pcm
	}
	return n
}

func (s *mp3Stream) Err() error { return s.err }

// Len is 0 when go-mp3 cannot tell the length.
func (s *mp3Stream) Len() int { return int(max(s.dec.SampleCount(), 0)) }

func (s *mp3Stream) Position() int { return int(s.dec.SamplePosition()) }

// Seek clamps p to the stream and clears a previous read error.
func (s *mp3Stream) Seek(p int) error {
	if err := s.dec.SeekToSample(int64(min(max(p, 0), s.Len()))); err != nil {
		return err
	}
	s.err = nil
	return nil
}

func (s *mp3Stream) Close() error { return s.src.Close() }
