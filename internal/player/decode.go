package player

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/llehouerou/zeedle/internal/tags"
)

// decodeFile opens path and returns a seekable decoder for it. The decoder
// owns the file and closes it on Close.
func decodeFile(path string) (beep.StreamSeekCloser, beep.Format, string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !tags.IsMusicFile(path) {
		return nil, beep.Format{}, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, "", err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		name     string
	)
	switch ext {
	case tags.ExtMP3:
		streamer, format, err = decodeGoMP3(f)
		name = "MP3"
	case tags.ExtFLAC:
		// Skip ID3v2 tag if present (some taggers add it to FLAC files)
		if err := tags.SkipID3v2(f); err != nil {
			f.Close()
			return nil, beep.Format{}, "", err
		}
		streamer, format, err = flac.Decode(f)
		name = "FLAC"
	case tags.ExtWAV:
		streamer, format, err = wav.Decode(f)
		name = "WAV"
	case tags.ExtOGG:
		streamer, format, err = vorbis.Decode(f)
		name = "VORBIS"
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, "", err
	}
	return streamer, format, name, nil
}
