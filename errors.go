package midinotes

import (
	"github.com/pkg/errors"
)

// These are the sentinel errors returned (wrapped with more context) by the
// decoder. Use errors.Is to check for them.
var (
	// Returned when the input ends in the middle of a field, a
	// variable-length integer, or an event payload.
	ErrTruncatedInput = errors.New("truncated input")
	// Returned for a status byte that is neither a channel message, a
	// meta-event nor a sysex event, or when running status is needed before
	// any channel status byte has been seen.
	ErrUnsupportedStatus = errors.New("unsupported status")
	// Returned when a variable-length integer doesn't terminate within
	// MaxVariableIntBytes bytes, or is too large to encode.
	ErrOversizedVLQ = errors.New("oversized variable-length integer")
	// Returned when registering more than MaxReceivers receivers with a
	// Multicaster.
	ErrTooManyReceivers = errors.New("too many event receivers")
)

// Converts io.EOF and io.ErrUnexpectedEOF into ErrTruncatedInput, annotated
// with what we were trying to read. Other errors are just annotated.
func truncated(e error, what string) error {
	if isEOF(e) {
		return errors.Wrapf(ErrTruncatedInput, "reading %s", what)
	}
	return errors.Wrapf(e, "reading %s", what)
}
