// Package tags reads the metadata the player needs from audio files:
// display fields, an embedded lyric blob, the front cover and the
// stream duration. MP3, FLAC, WAV and Ogg Vorbis are supported.
package tags

import (
	"path/filepath"
	"strings"
	"time"
)

// File extensions supported by the tags package.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtWAV  = ".wav"
	ExtOGG  = ".ogg"
)

// id3Magic is the magic bytes for ID3v2 header detection.
const id3Magic = "ID3"

// Picture is an embedded cover image.
type Picture struct {
	Data     []byte
	MIMEType string
}

// Tag contains the metadata read from a music file.
type Tag struct {
	Path   string
	Title  string
	Artist string
	Album  string

	// Lyrics is the raw embedded lyric blob, usually LRC formatted.
	Lyrics string

	// Cover is nil when the file has no embedded picture.
	Cover *Picture
}

// AudioInfo contains audio stream properties (not tags).
type AudioInfo struct {
	Duration   time.Duration
	Format     string // MP3, FLAC, WAV, VORBIS
	SampleRate int
	BitDepth   int
}

// FileInfo combines Tag and AudioInfo for a complete file description.
type FileInfo struct {
	Tag
	AudioInfo
}

// IsMusicFile returns true if the path has a supported music file extension.
func IsMusicFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3, ExtFLAC, ExtWAV, ExtOGG:
		return true
	}
	return false
}

// Stem returns the file name without directory and extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// taglibTags wraps a taglib result map with helper methods.
type taglibTags map[string][]string

// get returns the first value for any of the given keys, or empty string if not found.
func (t taglibTags) get(keys ...string) string {
	for _, key := range keys {
		if values, ok := t[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}
