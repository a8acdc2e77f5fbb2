package midifix

import (
	"fmt"
)

// Errors returned while validating a candidate file. I/O errors from
// the underlying filesystem are passed through unwrapped.
type PatchError int

const (
	ErrFileTooShort   PatchError = 1
	ErrTrackTooLong   PatchError = 2
	ErrNotRegularFile PatchError = 3
)

func (pe PatchError) Error() string {
	return fmt.Sprintf("midifix: %v", pe.name())
}

func (pe PatchError) name() string {
	switch pe {
	case ErrFileTooShort:
		return "file is shorter than the 22-byte single-track header"
	case ErrTrackTooLong:
		return "track data too large for the 4-byte length field"
	case ErrNotRegularFile:
		return "not a regular file"
	default:
		return fmt.Sprintf("unknown error code: %v", int(pe))
	}
}
