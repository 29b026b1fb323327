// Package catalog scans a library directory into an ordered list of tracks
// and keeps that list sorted and addressable by ordinal or path.
package catalog

import (
	"fmt"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"
)

// DisplayWidth is the cell budget for titles and artists.
const DisplayWidth = 24

// UnknownArtist is shown when a file has no artist tag.
const UnknownArtist = "unknown"

// Track is one playable file in the catalog.
type Track struct {
	// ID is the ordinal in the catalog that produced this value. It is not
	// stable across scans or sorts; Path is the identity.
	ID       int
	Path     string
	Title    string
	Artist   string
	Duration string // MM:SS
	Length   time.Duration
}

// Catalog is an immutable, ordered set of tracks.
type Catalog struct {
	tracks []Track
	byPath map[string]int
}

// New builds a catalog from tracks whose IDs already match their order.
func New(tracks []Track) *Catalog {
	byPath := make(map[string]int, len(tracks))
	for i, t := range tracks {
		byPath[t.Path] = i
	}
	return &Catalog{tracks: tracks, byPath: byPath}
}

// Len returns the number of tracks.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.tracks)
}

// Tracks returns a copy of the ordered tracks.
func (c *Catalog) Tracks() []Track {
	if c == nil {
		return nil
	}
	return append([]Track(nil), c.tracks...)
}

// At returns the track with the given ordinal.
func (c *Catalog) At(id int) (Track, bool) {
	if c == nil || id < 0 || id >= len(c.tracks) {
		return Track{}, false
	}
	return c.tracks[id], true
}

// First returns the first track in catalog order.
func (c *Catalog) First() (Track, bool) {
	return c.At(0)
}

// IndexOf returns the ordinal of the track at path, or -1.
func (c *Catalog) IndexOf(path string) int {
	if c == nil {
		return -1
	}
	if i, ok := c.byPath[path]; ok {
		return i
	}
	return -1
}

// Resolve returns the current catalog entry for a track that may come from
// an older snapshot.
func (c *Catalog) Resolve(t Track) (Track, bool) {
	return c.At(c.IndexOf(t.Path))
}

// Paths returns the file paths in catalog order.
func (c *Catalog) Paths() []string {
	if c == nil {
		return nil
	}
	return lo.Map(c.tracks, func(t Track, _ int) string { return t.Path })
}

// FormatDuration renders d as MM:SS. Minutes are not capped at 59.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// Truncate shortens s to at most width display cells and marks the cut with
// a trailing "...". Wide characters count as two cells.
func Truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "") + "..."
}
