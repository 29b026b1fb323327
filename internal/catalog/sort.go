package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortKey selects the field the catalog is ordered by.
type SortKey int

const (
	SortByTitle SortKey = iota
	SortByArtist
	SortByDuration
)

func (k SortKey) String() string {
	switch k {
	case SortByArtist:
		return "artist"
	case SortByDuration:
		return "duration"
	default:
		return "title"
	}
}

// ParseSortKey parses the names produced by SortKey.String.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "title", "":
		return SortByTitle, nil
	case "artist":
		return SortByArtist, nil
	case "duration":
		return SortByDuration, nil
	}
	return SortByTitle, fmt.Errorf("unknown sort key %q", s)
}

// compareBy orders two tracks by key alone.
func compareBy(key SortKey, a, b Track) int {
	switch key {
	case SortByArtist:
		return cmp.Compare(a.Artist, b.Artist)
	case SortByDuration:
		return cmp.Compare(a.Length, b.Length)
	default:
		return cmp.Compare(a.Title, b.Title)
	}
}

// Sort returns tracks ordered by key with path as the final tie-break, and
// with IDs reassigned to 0..n-1. The input slice is not modified. Sorting an
// already sorted list with the same arguments returns the same order.
func Sort(tracks []Track, key SortKey, ascending bool) []Track {
	out := slices.Clone(tracks)
	slices.SortStableFunc(out, func(a, b Track) int {
		c := compareBy(key, a, b)
		if !ascending {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.Path, b.Path)
	})
	for i := range out {
		out[i].ID = i
	}
	return out
}

// Sorted returns a new catalog ordered by key.
func (c *Catalog) Sorted(key SortKey, ascending bool) *Catalog {
	return New(Sort(c.Tracks(), key, ascending))
}
