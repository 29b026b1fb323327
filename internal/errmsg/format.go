// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"fmt"

	"github.com/llehouerou/zeedle/internal/playback"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Playback operations
	OpPlaybackStart   Op = "play track"
	OpPlaybackSeek    Op = "seek"
	OpPlaybackRestore Op = "restore last track"
	OpLocaleChange    Op = "change language"

	// Library operations
	OpLibraryScan  Op = "scan library"
	OpLibraryWatch Op = "watch library"

	// Persistence
	OpConfigLoad   Op = "load settings"
	OpConfigSave   Op = "save settings"
	OpHistoryOpen  Op = "open listening history"
	OpHistoryWrite Op = "record play"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// ForEvent maps a playback error operation to its Op.
func ForEvent(operation string) Op {
	switch operation {
	case playback.OpPlay:
		return OpPlaybackStart
	case playback.OpSeek:
		return OpPlaybackSeek
	case playback.OpRestore:
		return OpPlaybackRestore
	case playback.OpLocale:
		return OpLocaleChange
	case playback.OpRescan:
		return OpLibraryScan
	}
	return Op(operation)
}

// Event formats a playback error event.
func Event(e playback.ErrorEvent) string {
	return FormatWith(ForEvent(e.Operation), e.Path, e.Err)
}
