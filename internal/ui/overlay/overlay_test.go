package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestCompose_ReplacesVisibleSpan(t *testing.T) {
	base := "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc"
	over := "\n   XY   \n"

	got := Compose(base, over, 10)
	want := "aaaaaaaaaa\nbbbXYbbbbb\ncccccccccc"
	if got != want {
		t.Errorf("Compose() =\n%s\nwant\n%s", got, want)
	}
}

func TestCompose_PadsShortBase(t *testing.T) {
	got := Compose("ab", "    Z", 6)
	if got != "ab  Z " {
		t.Errorf("Compose() = %q", got)
	}
}

func TestCompose_KeepsStyledOverlay(t *testing.T) {
	styled := "\x1b[1mHi\x1b[0m"
	got := Compose("..........", "  "+styled, 10)
	if ansi.Strip(got) != "..Hi......" {
		t.Errorf("stripped = %q", ansi.Strip(got))
	}
	if !strings.Contains(got, "\x1b[1m") {
		t.Errorf("style lost: %q", got)
	}
}

func TestCenter(t *testing.T) {
	base := strings.Repeat(strings.Repeat(".", 9)+"\n", 2) + strings.Repeat(".", 9)
	got := Center(base, "X", 9, 3)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 || lines[1] != "....X...." {
		t.Errorf("Center() = %q", got)
	}
}
