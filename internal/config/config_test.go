package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/llehouerou/zeedle/internal/catalog"
	"github.com/llehouerou/zeedle/internal/playback"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde expands to home", "~/music", filepath.Join(home, "music")},
		{"absolute path unchanged", "/usr/local/music", "/usr/local/music"},
		{"relative path unchanged", "music/albums", "music/albums"},
		{"empty string unchanged", "", ""},
		{"tilde only", "~", home},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := expandPath(tt.input); result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad_InvalidFileGivesDefaultsAndError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("library_root = [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err == nil {
		t.Error("Load() expected error for invalid TOML")
	}
	if cfg == nil || cfg.SampleRate != 44100 || cfg.Locale != "en" {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad_PartialFileKeepsOtherDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
library_root = "/srv/music"
play_mode = "random"
last_progress = -4.0
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.LibraryRoot != "/srv/music" {
		t.Errorf("LibraryRoot = %q", cfg.LibraryRoot)
	}
	if cfg.Mode() != playback.Random {
		t.Errorf("Mode() = %v, want random", cfg.Mode())
	}
	if cfg.LastProgress != 0 {
		t.Errorf("LastProgress = %v, want clamped to 0", cfg.LastProgress)
	}
	if !cfg.SortAscending || cfg.Sort() != catalog.SortByTitle {
		t.Errorf("sort = %v/%v, want title ascending", cfg.Sort(), cfg.SortAscending)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	want := Default()
	want.LibraryRoot = "/music"
	want.LastTrackPath = "/music/a.mp3"
	want.LastProgress = 42.5
	want.PlayMode = "recursive"
	want.SortKey = "duration"
	want.SortAscending = false
	want.Locale = "zh-CN"
	want.WatchLibrary = true

	if err := want.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if *got != *want {
		t.Errorf("Load() = %+v\nwant %+v", got, want)
	}
	if got.Progress() != 42500*time.Millisecond {
		t.Errorf("Progress() = %v", got.Progress())
	}
}

func TestUnknownValuesFallBack(t *testing.T) {
	cfg := &Config{PlayMode: "shuffle", SortKey: "bpm"}
	if cfg.Mode() != playback.InOrder {
		t.Errorf("Mode() = %v, want in_order", cfg.Mode())
	}
	if cfg.Sort() != catalog.SortByTitle {
		t.Errorf("Sort() = %v, want title", cfg.Sort())
	}
}

func TestRemember(t *testing.T) {
	cfg := Default()
	snap := &playback.Snapshot{
		LibraryRoot: "/music",
		Mode:        playback.Recursive,
		SortKey:     catalog.SortByArtist,
		Locale:      "fr",
		Playback: playback.PlaybackState{
			Current: &catalog.Track{Path: "/music/x.flac"},
		},
	}

	cfg.Remember(snap, 90*time.Second)

	if cfg.LastTrackPath != "/music/x.flac" || cfg.LastProgress != 90 {
		t.Errorf("last = %q @ %v", cfg.LastTrackPath, cfg.LastProgress)
	}
	if cfg.PlayMode != "recursive" || cfg.SortKey != "artist" || cfg.SortAscending || cfg.Locale != "fr" {
		t.Errorf("remembered %+v", cfg)
	}

	cfg.Remember(&playback.Snapshot{}, time.Minute)
	if cfg.LastTrackPath != "" || cfg.LastProgress != 0 {
		t.Errorf("no track should clear last track, got %q @ %v", cfg.LastTrackPath, cfg.LastProgress)
	}
}
