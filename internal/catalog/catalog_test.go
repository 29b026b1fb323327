package catalog

import (
	"testing"
	"time"
)

func sampleTracks() []Track {
	return []Track{
		{Path: "/m/c.mp3", Title: "Gamma", Artist: "Zed", Length: 200 * time.Second},
		{Path: "/m/a.mp3", Title: "Alpha", Artist: "Amy", Length: 100 * time.Second},
		{Path: "/m/b.mp3", Title: "Beta", Artist: "Amy", Length: 300 * time.Second},
		{Path: "/m/d.mp3", Title: "Alpha", Artist: "Bob", Length: 100 * time.Second},
	}
}

func paths(tracks []Track) []string {
	out := make([]string, len(tracks))
	for i, t := range tracks {
		out[i] = t.Path
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSort(t *testing.T) {
	tests := []struct {
		name      string
		key       SortKey
		ascending bool
		want      []string
	}{
		{"title asc", SortByTitle, true, []string{"/m/a.mp3", "/m/d.mp3", "/m/b.mp3", "/m/c.mp3"}},
		{"title desc", SortByTitle, false, []string{"/m/c.mp3", "/m/b.mp3", "/m/a.mp3", "/m/d.mp3"}},
		{"artist asc", SortByArtist, true, []string{"/m/a.mp3", "/m/b.mp3", "/m/d.mp3", "/m/c.mp3"}},
		{"duration asc", SortByDuration, true, []string{"/m/a.mp3", "/m/d.mp3", "/m/c.mp3", "/m/b.mp3"}},
		{"duration desc", SortByDuration, false, []string{"/m/b.mp3", "/m/c.mp3", "/m/a.mp3", "/m/d.mp3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sort(sampleTracks(), tt.key, tt.ascending)
			if !equalStrings(paths(got), tt.want) {
				t.Errorf("Sort() = %v, want %v", paths(got), tt.want)
			}
			for i, tr := range got {
				if tr.ID != i {
					t.Errorf("got[%d].ID = %d", i, tr.ID)
				}
			}
		})
	}
}

func TestSort_Idempotent(t *testing.T) {
	for _, key := range []SortKey{SortByTitle, SortByArtist, SortByDuration} {
		for _, asc := range []bool{true, false} {
			once := Sort(sampleTracks(), key, asc)
			twice := Sort(once, key, asc)
			if !equalStrings(paths(once), paths(twice)) {
				t.Errorf("Sort(%v, %v) not idempotent: %v then %v", key, asc, paths(once), paths(twice))
			}
			for i := range twice {
				if twice[i] != once[i] {
					t.Errorf("Sort(%v, %v)[%d] changed: %+v -> %+v", key, asc, i, once[i], twice[i])
				}
			}
		}
	}
}

func TestSort_DoesNotModifyInput(t *testing.T) {
	in := sampleTracks()
	before := paths(in)
	_ = Sort(in, SortByTitle, true)
	if !equalStrings(paths(in), before) {
		t.Error("Sort modified its input")
	}
}

func TestParseSortKey(t *testing.T) {
	for _, key := range []SortKey{SortByTitle, SortByArtist, SortByDuration} {
		got, err := ParseSortKey(key.String())
		if err != nil || got != key {
			t.Errorf("ParseSortKey(%q) = %v, %v", key.String(), got, err)
		}
	}
	if _, err := ParseSortKey("bpm"); err == nil {
		t.Error("ParseSortKey(bpm) should fail")
	}
}

func TestCatalog_Lookup(t *testing.T) {
	c := New(Sort(sampleTracks(), SortByTitle, true))

	if c.Len() != 4 {
		t.Fatalf("Len() = %d", c.Len())
	}
	if i := c.IndexOf("/m/b.mp3"); i != 2 {
		t.Errorf("IndexOf(b) = %d, want 2", i)
	}
	if i := c.IndexOf("/m/zzz.mp3"); i != -1 {
		t.Errorf("IndexOf(missing) = %d, want -1", i)
	}
	if _, ok := c.At(4); ok {
		t.Error("At(4) should be out of range")
	}
	if first, ok := c.First(); !ok || first.Path != "/m/a.mp3" {
		t.Errorf("First() = %+v, %v", first, ok)
	}

	// A track from a different ordering resolves to this catalog's ordinal.
	resorted := c.Sorted(SortByDuration, false)
	old, _ := c.At(0)
	got, ok := resorted.Resolve(old)
	if !ok || got.Path != old.Path || got.ID != resorted.IndexOf(old.Path) {
		t.Errorf("Resolve() = %+v, %v", got, ok)
	}

	var empty *Catalog
	if empty.Len() != 0 || empty.IndexOf("x") != -1 {
		t.Error("nil catalog should be empty")
	}
	if _, ok := empty.First(); ok {
		t.Error("nil catalog has no first track")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00"},
		{-time.Second, "00:00"},
		{59 * time.Second, "00:59"},
		{61*time.Second + 999*time.Millisecond, "01:01"},
		{100 * time.Minute, "100:00"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 24, "short"},
		{"exactly-twenty-four-chr!", 24, "exactly-twenty-four-chr!"},
		{"this title is far too long to fit", 24, "this title is far too lo..."},
		{"日本語のタイトルがとても長い場合", 24, "日本語のタイトルがとても..."},
		{"", 24, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
