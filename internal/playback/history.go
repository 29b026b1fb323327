package playback

import (
	"github.com/llehouerou/zeedle/internal/catalog"
)

// History is the sequence of played tracks with a rewind pointer.
//
// The pointer counts steps back from the newest entry: 0 is the live edge.
// Once the history is non-empty the pointer stays within [0, Len()-1], and
// each navigation moves it by at most one step. Entries are never removed.
//
// History is not safe for concurrent use; the service worker owns it.
type History struct {
	entries []catalog.Track
	pointer int
}

// NewHistory returns a history seeded with entries, oldest first, at the
// live edge.
func NewHistory(entries ...catalog.Track) *History {
	return &History{entries: append([]catalog.Track(nil), entries...)}
}

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Pointer returns the rewind pointer.
func (h *History) Pointer() int { return h.pointer }

// AtLiveEdge reports whether the pointer is at the newest entry.
func (h *History) AtLiveEdge() bool { return h.pointer == 0 }

// Current returns the entry under the pointer.
func (h *History) Current() (catalog.Track, bool) {
	return h.at(h.pointer)
}

// Entries returns a copy of the entries, oldest first.
func (h *History) Entries() []catalog.Track {
	return append([]catalog.Track(nil), h.entries...)
}

// Select records a direct pick: the track is appended and the pointer
// returns to the live edge.
func (h *History) Select(t catalog.Track) {
	h.entries = append(h.entries, t)
	h.pointer = 0
}

// Append records a track reached by stepping forward from the live edge.
// It is a no-op while rewound and reports whether the history grew.
func (h *History) Append(t catalog.Track) bool {
	if h.pointer != 0 {
		return false
	}
	h.entries = append(h.entries, t)
	return true
}

// Back moves one step towards the oldest entry and returns it. At the
// oldest entry it reports false and leaves the pointer alone; the caller
// then replays its current track.
func (h *History) Back() (catalog.Track, bool) {
	t, ok := h.at(h.pointer + 1)
	if !ok {
		return catalog.Track{}, false
	}
	h.pointer = min(h.pointer+1, len(h.entries)-1)
	return t, true
}

// Forward moves one step towards the live edge and returns the entry there.
// At the live edge it reports false.
func (h *History) Forward() (catalog.Track, bool) {
	if h.pointer == 0 {
		return catalog.Track{}, false
	}
	h.pointer--
	return h.at(h.pointer)
}

// at returns the entry reverseIndex steps back from the newest one.
func (h *History) at(reverseIndex int) (catalog.Track, bool) {
	i := len(h.entries) - 1 - reverseIndex
	if reverseIndex < 0 || i < 0 {
		return catalog.Track{}, false
	}
	return h.entries[i], true
}
