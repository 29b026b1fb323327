//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"

	"github.com/llehouerou/zeedle/internal/playback"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaybackStart,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpPlaybackStart,
			err:      errors.New("unsupported format"),
			expected: "Failed to play track: unsupported format",
		},
		{
			name:     "library scan operation",
			op:       OpLibraryScan,
			err:      errors.New("permission denied"),
			expected: "Failed to scan library: permission denied",
		},
		{
			name:     "settings operation",
			op:       OpConfigSave,
			err:      errors.New("read-only file system"),
			expected: "Failed to save settings: read-only file system",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Format(tt.op, tt.err); result != tt.expected {
				t.Errorf("Format() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaybackStart,
			context:  "song.mp3",
			expected: "",
		},
		{
			name:     "with context",
			op:       OpPlaybackStart,
			context:  "song.mp3",
			err:      errors.New("bad header"),
			expected: "Failed to play track 'song.mp3': bad header",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpPlaybackSeek,
			err:      errors.New("not seekable"),
			expected: "Failed to seek: not seekable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := FormatWith(tt.op, tt.context, tt.err); result != tt.expected {
				t.Errorf("FormatWith() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestEvent(t *testing.T) {
	got := Event(playback.ErrorEvent{
		Operation: playback.OpPlay,
		Path:      "/music/a.ogg",
		Err:       errors.New("decode failed"),
	})
	want := "Failed to play track '/music/a.ogg': decode failed"
	if got != want {
		t.Errorf("Event() = %q, want %q", got, want)
	}

	if op := ForEvent("something-else"); op != Op("something-else") {
		t.Errorf("ForEvent(unknown) = %q", op)
	}
}
