package tags

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	goflac "github.com/go-flac/go-flac"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"github.com/llehouerou/go-mp3"
)

// beepDecoder is the shape of the beep format decoders.
type beepDecoder func(io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)

// infoReaders read the stream properties of each supported extension.
var infoReaders = map[string]func(path string, f *os.File) (*AudioInfo, error){
	ExtMP3: func(_ string, f *os.File) (*AudioInfo, error) { return mp3Info(f) },
	ExtFLAC: func(path string, f *os.File) (*AudioInfo, error) {
		if info, ok := flacHeaderInfo(path); ok {
			return info, nil
		}
		if err := SkipID3v2(f); err != nil {
			return nil, err
		}
		return decoderInfo("FLAC", func(r io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) { return flac.Decode(r) }, f)
	},
	ExtWAV: func(_ string, f *os.File) (*AudioInfo, error) {
		return decoderInfo("WAV", func(r io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(r) }, f)
	},
	ExtOGG: func(_ string, f *os.File) (*AudioInfo, error) { return decoderInfo("VORBIS", vorbis.Decode, f) },
}

// ReadAudioInfo reads the duration and stream format of a music file
// without decoding the audio where the container allows it.
func ReadAudioInfo(path string) (*AudioInfo, error) {
	read, ok := infoReaders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", filepath.Ext(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return read(path, f)
}

func mp3Info(r io.Reader) (*AudioInfo, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, err
	}
	rate := dec.SampleRate()
	if rate <= 0 {
		return nil, errors.New("mp3: invalid sample rate")
	}
	return &AudioInfo{
		Duration:   samplesToDuration(max(dec.SampleCount(), 0), rate),
		Format:     "MP3",
		SampleRate: rate,
		BitDepth:   16,
	}, nil
}

// flacHeaderInfo reads STREAMINFO. It reports false when the file does not
// parse, for example when an ID3v2 tag precedes the FLAC marker.
func flacHeaderInfo(path string) (*AudioInfo, bool) {
	file, err := goflac.ParseFile(path)
	if err != nil {
		return nil, false
	}
	for _, meta := range file.Meta {
		if meta.Type != goflac.StreamInfo {
			continue
		}
		if info, ok := parseStreamInfo(meta.Data); ok {
			return info, true
		}
	}
	return nil, false
}

// parseStreamInfo decodes the 20-bit sample rate, 5-bit bits-per-sample
// minus one and 36-bit sample count packed at bytes 10 to 17.
func parseStreamInfo(data []byte) (*AudioInfo, bool) {
	if len(data) < 18 {
		return nil, false
	}
	rate := int(data[10])<<12 | int(data[11])<<4 | int(data[12])>>4
	bits := (int(data[12])&0x01)<<4 | int(data[13])>>4 + 1
	var samples int64
	samples = int64(data[13] & 0x0f)
	for _, b := range data[14:18] {
		samples = samples<<8 | int64(b)
	}
	return &AudioInfo{
		Duration:   samplesToDuration(samples, rate),
		Format:     "FLAC",
		SampleRate: rate,
		BitDepth:   bits,
	}, true
}

func decoderInfo(name string, decode beepDecoder, f *os.File) (*AudioInfo, error) {
	stream, format, err := decode(f)
	if err != nil {
		return nil, err
	}
	defer stream.Close()
	return &AudioInfo{
		Duration:   format.SampleRate.D(stream.Len()),
		Format:     name,
		SampleRate: int(format.SampleRate),
		BitDepth:   format.Precision * 8,
	}, nil
}

func samplesToDuration(samples int64, rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	return time.Duration(float64(samples) / float64(rate) * float64(time.Second))
}

// SkipID3v2 leaves r just past a leading ID3v2 tag, or at the start when
// there is none.
func SkipID3v2(r io.ReadSeeker) error {
	var header [10]byte
	if _, err := io.ReadFull(r, header[:]); err != nil || string(header[:3]) != id3Magic {
		_, serr := r.Seek(0, io.SeekStart)
		return serr
	}
	// Syncsafe: 7 bits per byte.
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err := r.Seek(10+size, io.SeekStart)
	return err
}
