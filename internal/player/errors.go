package player

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnsupportedFormat is wrapped by DecodeError for files outside the
// supported extension set.
var ErrUnsupportedFormat = errors.New("unsupported format")

// DecodeError reports a file that could not be opened or decoded. The sink
// is left empty.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// SeekError reports a seek the decoder refused. The previous position is
// kept.
type SeekError struct {
	Position time.Duration
	Err      error
}

func (e *SeekError) Error() string {
	return fmt.Sprintf("seek to %s: %v", e.Position, e.Err)
}

func (e *SeekError) Unwrap() error { return e.Err }
