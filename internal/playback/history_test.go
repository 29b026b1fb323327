package playback

import (
	"fmt"
	"testing"

	"github.com/llehouerou/zeedle/internal/catalog"
)

func track(id int) catalog.Track {
	return catalog.Track{ID: id, Path: fmt.Sprintf("/music/%d.mp3", id), Title: fmt.Sprint(id)}
}

func TestHistory_SelectResetsPointer(t *testing.T) {
	h := NewHistory(track(0), track(1), track(2))
	h.Back()
	h.Back()
	if h.Pointer() != 2 {
		t.Fatalf("Pointer() = %d, want 2", h.Pointer())
	}

	h.Select(track(3))

	if h.Pointer() != 0 {
		t.Errorf("Pointer() = %d, want 0", h.Pointer())
	}
	if h.Len() != 4 {
		t.Errorf("Len() = %d, want 4", h.Len())
	}
	cur, _ := h.Current()
	if cur.ID != 3 {
		t.Errorf("Current().ID = %d, want 3", cur.ID)
	}
}

func TestHistory_BackStopsAtOldest(t *testing.T) {
	h := NewHistory(track(0), track(1))

	got, ok := h.Back()
	if !ok || got.ID != 0 {
		t.Fatalf("Back() = %v, %v; want track 0", got.ID, ok)
	}
	if _, ok := h.Back(); ok {
		t.Error("Back() at oldest entry reported true")
	}
	if h.Pointer() != 1 {
		t.Errorf("Pointer() = %d, want 1", h.Pointer())
	}
}

func TestHistory_BackOnEmpty(t *testing.T) {
	h := NewHistory()
	if _, ok := h.Back(); ok {
		t.Error("Back() on empty history reported true")
	}
	if _, ok := h.Forward(); ok {
		t.Error("Forward() on empty history reported true")
	}
	if h.Pointer() != 0 {
		t.Errorf("Pointer() = %d, want 0", h.Pointer())
	}
}

func TestHistory_AppendIgnoredWhileRewound(t *testing.T) {
	h := NewHistory(track(0), track(1))
	h.Back()

	h.Append(track(5))

	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.Len())
	}
}

func TestHistory_BackThenForwardReturns(t *testing.T) {
	h := NewHistory(track(0), track(1), track(2), track(3), track(4))
	for k := 0; k < h.Len(); k++ {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			for range k {
				h.Back()
			}
			var cur catalog.Track
			for range k {
				cur, _ = h.Forward()
			}
			if k == 0 {
				cur, _ = h.Current()
			}
			if cur.ID != 4 {
				t.Errorf("after %d back/forward, current = %d, want 4", k, cur.ID)
			}
			if !h.AtLiveEdge() {
				t.Errorf("Pointer() = %d, want live edge", h.Pointer())
			}
		})
	}
}

func TestHistory_PointerStaysInBounds(t *testing.T) {
	h := NewHistory()
	ops := []string{"sel", "back", "back", "sel", "sel", "back", "back", "back", "back", "fwd", "app", "fwd", "fwd", "back"}
	prevLen := 0
	for i, op := range ops {
		switch op {
		case "sel":
			h.Select(track(i))
		case "app":
			h.Append(track(i))
		case "back":
			h.Back()
		case "fwd":
			h.Forward()
		}
		if h.Len() < prevLen {
			t.Fatalf("step %d (%s): history shrank from %d to %d", i, op, prevLen, h.Len())
		}
		prevLen = h.Len()
		if h.Len() > 0 && (h.Pointer() < 0 || h.Pointer() > h.Len()-1) {
			t.Fatalf("step %d (%s): pointer %d out of [0, %d]", i, op, h.Pointer(), h.Len()-1)
		}
	}
}

func TestHistory_EntriesIsCopy(t *testing.T) {
	h := NewHistory(track(0))
	e := h.Entries()
	e[0].Title = "changed"
	cur, _ := h.Current()
	if cur.Title != "0" {
		t.Errorf("Current().Title = %q, want unchanged", cur.Title)
	}
}

func TestPlayMode_CycleAndParse(t *testing.T) {
	if InOrder.Cycle() != Random || Random.Cycle() != Recursive || Recursive.Cycle() != InOrder {
		t.Error("Cycle() does not walk InOrder -> Random -> Recursive -> InOrder")
	}
	for _, m := range []PlayMode{InOrder, Random, Recursive} {
		got, err := ParsePlayMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParsePlayMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParsePlayMode("shuffle-all"); err == nil {
		t.Error("ParsePlayMode(shuffle-all) expected error")
	}
}
