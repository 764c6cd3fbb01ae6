package cmdline

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncatedArgument is returned when a flag expects a following token that is absent.
	ErrTruncatedArgument = errors.New("truncated argument")
	// ErrMalformedNumber marks a numeric field that failed to parse. It is
	// never returned by Parse; it only appears inside a Warning.
	ErrMalformedNumber = errors.New("malformed number")
	// ErrCoordinateCountMismatch is returned when the number of texture
	// coordinates differs from twice the number of eligible fixed vertices.
	ErrCoordinateCountMismatch = errors.New("texture coordinate count mismatch")
	// ErrMissingOutput is returned when no output mesh path was given.
	ErrMissingOutput = errors.New("missing output mesh path")
)

// Warning records a value that was defaulted instead of failing the run.
type Warning struct {
	Flag  string // flag that introduced the value
	Token string // raw argument
	Field int    // index of the field inside Token
	Err   error
}

func (w Warning) Error() string {
	return fmt.Sprintf("%s %q field %d: %v", w.Flag, w.Token, w.Field, w.Err)
}

func (w Warning) Unwrap() error { return w.Err }
