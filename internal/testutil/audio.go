// Package testutil writes small audio fixtures for package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

// FixtureRate is the sample rate of generated WAV fixtures.
const FixtureRate beep.SampleRate = 8000

// MP3Tags are the ID3v2 frames written by WriteMP3.
type MP3Tags struct {
	Title  string
	Artist string
	Lyrics string
}

// WriteWAV writes a silent mono 16-bit WAV file of the given length in
// seconds and returns its path.
func WriteWAV(tb testing.TB, dir, name string, seconds int) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("mkdir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("create wav: %v", err)
	}
	defer f.Close()

	format := beep.Format{SampleRate: FixtureRate, NumChannels: 1, Precision: 2}
	if err := wav.Encode(f, beep.Silence(int(FixtureRate)*seconds), format); err != nil {
		tb.Fatalf("encode wav: %v", err)
	}
	return path
}

// WriteMP3 writes a single MPEG1 Layer3 frame (128kbps, 44100Hz, stereo)
// tagged with the given ID3v2 frames and returns its path.
func WriteMP3(tb testing.TB, dir, name string, tags MP3Tags) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("mkdir: %v", err)
	}

	mp3Frame := make([]byte, 417)
	mp3Frame[0] = 0xff
	mp3Frame[1] = 0xfb
	mp3Frame[2] = 0x90
	mp3Frame[3] = 0x00
	if err := os.WriteFile(path, mp3Frame, 0o600); err != nil {
		tb.Fatalf("failed to create test MP3: %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		tb.Fatalf("failed to open MP3 for tagging: %v", err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	if tags.Title != "" {
		tag.SetTitle(tags.Title)
	}
	if tags.Artist != "" {
		tag.SetArtist(tags.Artist)
	}
	if tags.Lyrics != "" {
		tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
			Encoding:          id3v2.EncodingUTF8,
			Language:          "eng",
			ContentDescriptor: "",
			Lyrics:            tags.Lyrics,
		})
	}
	if err := tag.Save(); err != nil {
		tb.Fatalf("failed to save ID3 tags: %v", err)
	}
	return path
}
