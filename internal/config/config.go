// Package config loads and saves the persisted player settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/zeedle/internal/catalog"
	"github.com/llehouerou/zeedle/internal/playback"
)

const appName = "zeedle"

type Config struct {
	LibraryRoot   string  `koanf:"library_root"`
	LastTrackPath string  `koanf:"last_track_path"`
	LastProgress  float64 `koanf:"last_progress"` // seconds
	PlayMode      string  `koanf:"play_mode"`     // "in_order", "random" or "recursive"
	SortKey       string  `koanf:"sort_key"`      // "title", "artist" or "duration"
	SortAscending bool    `koanf:"sort_ascending"`
	Locale        string  `koanf:"locale"`

	LogLevel          string `koanf:"log_level"`
	LogFile           string `koanf:"log_file"`
	WatchLibrary      bool   `koanf:"watch_library"`
	RandomAvoidRepeat bool   `koanf:"random_avoid_repeat"`
	SampleRate        int    `koanf:"sample_rate"`
}

// Default returns the settings used when nothing is stored.
func Default() *Config {
	return &Config{
		LibraryRoot:   xdg.UserDirs.Music,
		PlayMode:      playback.InOrder.String(),
		SortKey:       catalog.SortByTitle.String(),
		SortAscending: true,
		Locale:        "en",
		LogLevel:      "info",
		LogFile:       filepath.Join(xdg.StateHome, appName, appName+".log"),
		SampleRate:    44100,
	}
}

// Path returns the default config file location.
func Path() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

// Load reads path over the defaults. A missing file is not an error. An
// unreadable or invalid file yields the defaults together with the error,
// so callers can log it and carry on.
func Load(path string) (*Config, error) {
	cfg := Default()

	k := koanf.New(".")
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("stat config: %w", err)
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	loaded := Default()
	if err := k.Unmarshal("", loaded); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}

	loaded.LibraryRoot = expandPath(loaded.LibraryRoot)
	loaded.LastTrackPath = expandPath(loaded.LastTrackPath)
	loaded.LogFile = expandPath(loaded.LogFile)
	if loaded.LastProgress < 0 {
		loaded.LastProgress = 0
	}
	if loaded.SampleRate <= 0 {
		loaded.SampleRate = cfg.SampleRate
	}
	return loaded, nil
}

// Save writes c to path as TOML, creating the directory if needed.
func (c *Config) Save(path string) error {
	k := koanf.New(".")
	values := map[string]any{
		"library_root":        c.LibraryRoot,
		"last_track_path":     c.LastTrackPath,
		"last_progress":       c.LastProgress,
		"play_mode":           c.PlayMode,
		"sort_key":            c.SortKey,
		"sort_ascending":      c.SortAscending,
		"locale":              c.Locale,
		"log_level":           c.LogLevel,
		"log_file":            c.LogFile,
		"watch_library":       c.WatchLibrary,
		"random_avoid_repeat": c.RandomAvoidRepeat,
		"sample_rate":         c.SampleRate,
	}
	for key, v := range values {
		if err := k.Set(key, v); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	data, err := k.Marshal(toml.Parser())
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// Mode returns the stored play mode, or InOrder when it is not recognised.
func (c *Config) Mode() playback.PlayMode {
	m, err := playback.ParsePlayMode(c.PlayMode)
	if err != nil {
		return playback.InOrder
	}
	return m
}

// Sort returns the stored sort key, or title when it is not recognised.
func (c *Config) Sort() catalog.SortKey {
	k, err := catalog.ParseSortKey(c.SortKey)
	if err != nil {
		return catalog.SortByTitle
	}
	return k
}

// Progress returns the saved position of the last track.
func (c *Config) Progress() time.Duration {
	return time.Duration(c.LastProgress * float64(time.Second))
}

// Remember copies the state worth restoring from a snapshot.
func (c *Config) Remember(snap *playback.Snapshot, elapsed time.Duration) {
	c.LibraryRoot = snap.LibraryRoot
	c.PlayMode = snap.Mode.String()
	c.SortKey = snap.SortKey.String()
	c.SortAscending = snap.Ascending
	c.Locale = snap.Locale
	c.LastTrackPath = ""
	c.LastProgress = 0
	if cur := snap.Playback.Current; cur != nil {
		c.LastTrackPath = cur.Path
		c.LastProgress = elapsed.Seconds()
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
