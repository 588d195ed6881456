package trace

import (
	"errors"
	"fmt"
)

// Domain errors for trace loading and playback.
var (
	// ErrBadFormat indicates on-disk data that cannot be decoded: a missing
	// or invalid metadata field, a blob whose byte length does not match the
	// expected record count, or blobs that disagree with each other.
	ErrBadFormat = errors.New("trace: malformed trace data")

	// ErrRange indicates a frame index outside [0, total states).
	ErrRange = errors.New("trace: frame index out of range")
)

// FormatError reports which blob failed to decode and why. It unwraps to
// ErrBadFormat. Loading is all-or-nothing: a single FormatError aborts the
// whole load.
type FormatError struct {
	Blob   string // blob file name, or "metadata" for the metadata document
	Want   int64  // expected byte length or record count, 0 if not applicable
	Got    int64  // actual byte length or record count
	Reason string
}

func (e *FormatError) Error() string {
	if e.Want != 0 || e.Got != 0 {
		return fmt.Sprintf("trace: %s: %s (want %d, got %d)", e.Blob, e.Reason, e.Want, e.Got)
	}
	return fmt.Sprintf("trace: %s: %s", e.Blob, e.Reason)
}

func (e *FormatError) Unwrap() error { return ErrBadFormat }

// RangeError reports a frame index requested outside the trace. It unwraps
// to ErrRange.
type RangeError struct {
	Index int
	Len   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("trace: frame %d out of range [0, %d)", e.Index, e.Len)
}

func (e *RangeError) Unwrap() error { return ErrRange }
