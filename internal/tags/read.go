package tags

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Read reads tag metadata from a music file.
// It returns only tag metadata, not audio stream properties.
// Title falls back to the file name stem.
func Read(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))

	m, err := tag.ReadFrom(f)
	if err != nil {
		switch ext {
		case ExtMP3:
			// dhowden/tag has issues with some UTF-16 encoded ID3 tags
			return readMP3WithID3v2Fallback(path)
		case ExtFLAC:
			return readFLACWithFallback(path)
		case ExtWAV, ExtOGG:
			// dhowden/tag has no RIFF support and fails on some Ogg files
			return readWithTaglib(path)
		}
		return nil, err
	}

	t := &Tag{
		Path:   path,
		Title:  m.Title(),
		Artist: m.Artist(),
		Album:  m.Album(),
		Lyrics: m.Lyrics(),
	}
	if pic := m.Picture(); pic != nil && len(pic.Data) > 0 {
		t.Cover = &Picture{Data: pic.Data, MIMEType: pic.MIMEType}
	}
	if t.Title == "" {
		t.Title = Stem(path)
	}

	// dhowden/tag does not expose every lyric frame, fill gaps per format
	switch ext {
	case ExtMP3:
		readMP3Extended(path, t)
	case ExtFLAC:
		readFLACExtended(path, t)
	}

	return t, nil
}

// ReadWithAudio reads both tag metadata and audio stream properties.
// A file whose audio stream cannot be read is reported as an error even
// when its tags are readable.
func ReadWithAudio(path string) (*FileInfo, error) {
	t, err := Read(path)
	if err != nil {
		// If tag reading fails, create basic info from filename
		t = &Tag{
			Path:  path,
			Title: Stem(path),
		}
	}

	audio, err := ReadAudioInfo(path)
	if err != nil {
		return nil, err
	}

	return &FileInfo{
		Tag:       *t,
		AudioInfo: *audio,
	}, nil
}
