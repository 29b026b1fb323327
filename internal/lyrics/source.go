package lyrics

import (
	"os"
	"path/filepath"

	"github.com/llehouerou/zeedle/internal/tags"
)

// Source names where a lyric came from.
type Source string

const (
	SourceEmbedded Source = "embedded"
	SourceSidecar  Source = "sidecar"
	SourceNone     Source = "not_found"
)

// Extract returns the time-tagged lines for an audio file. The embedded
// lyric tag is used first, then a .lrc file next to the audio file.
// A missing or unreadable lyric yields an empty slice.
func Extract(path string) []Line {
	lines, _ := Load(path)
	return lines
}

// Load is Extract that also reports where the lines came from.
func Load(path string) ([]Line, Source) {
	var blob string
	if t, err := tags.Read(path); err == nil {
		blob = t.Lyrics
	}
	return FromBlob(blob, path)
}

// FromBlob parses an already extracted lyric blob, falling back to the
// sidecar .lrc file of audioPath when the blob yields no lines.
func FromBlob(blob, audioPath string) ([]Line, Source) {
	if lines := Parse(blob); len(lines) > 0 {
		return lines, SourceEmbedded
	}
	if audioPath != "" {
		if l, err := loadFromFile(lrcPathForAudio(audioPath)); err == nil && len(l.Lines) > 0 {
			return l.Lines, SourceSidecar
		}
	}
	return nil, SourceNone
}

// lrcPathForAudio returns the expected .lrc file path for an audio file.
func lrcPathForAudio(audioPath string) string {
	ext := filepath.Ext(audioPath)
	return audioPath[:len(audioPath)-len(ext)] + ".lrc"
}

// loadFromFile loads lyrics from an LRC file.
func loadFromFile(path string) (*Lyrics, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseLRC(f)
}
