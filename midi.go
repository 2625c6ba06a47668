// This package decodes standard MIDI files (SMF, usually with a ".mid"
// extension) into a flat list of notes. The smf_tool, instrument_stats and
// piano_roll directories contain command-line programs built on top of it.
package midinotes

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

const (
	// The largest value a MIDI variable-length integer may hold.
	MaxVariableInt = 0x0fffffff
	// The largest number of bytes a MIDI variable-length integer may use.
	MaxVariableIntBytes = 4
)

// Status bytes and meta-event types the decoder needs to recognize.
const (
	statusMeta           = 0xff
	statusSysEx          = 0xf0
	statusSysExEscape    = 0xf7
	metaEndOfTrack       = 0x2f
	statusByteFlag       = 0x80
	dataByteMask         = 0x7f
	channelMask          = 0x0f
	pitchWheelLowBitsLen = 7
)

// Reads and returns the next byte from r, translating EOF into
// ErrTruncatedInput.
func readByte(r io.ByteReader, what string) (uint8, error) {
	b, e := r.ReadByte()
	if e != nil {
		return 0, truncated(e, what)
	}
	return b, nil
}

func isEOF(e error) bool {
	return errors.Is(e, io.EOF) || errors.Is(e, io.ErrUnexpectedEOF)
}

// Reads a MIDI-format variable int (up to MaxVariableInt). Each byte holds 7
// bits of the value, most significant first, and has its top bit set if more
// bytes follow. Returns ErrOversizedVLQ if the fourth byte still has its top
// bit set, and ErrTruncatedInput if r runs out first.
func ReadVariableInt(r io.ByteReader) (uint64, error) {
	toReturn := uint64(0)
	for i := 0; i < MaxVariableIntBytes; i++ {
		b, e := readByte(r, "variable-length integer")
		if e != nil {
			return 0, e
		}
		toReturn = (toReturn << 7) | uint64(b&dataByteMask)
		if (b & statusByteFlag) == 0 {
			return toReturn, nil
		}
	}
	return 0, errors.Wrapf(ErrOversizedVLQ, "highest bit not clear on byte %d",
		MaxVariableIntBytes)
}

// Writes a MIDI-format variable int (up to MaxVariableInt) to w. This is the
// inverse of ReadVariableInt.
func WriteVariableInt(w io.Writer, n uint64) error {
	if n > MaxVariableInt {
		return errors.Wrapf(ErrOversizedVLQ, "0x%x is too large for a MIDI int",
			n)
	}
	// Fill the buffer from the end, so the most significant group comes
	// first. Every group but the last gets the continuation bit.
	var buf [MaxVariableIntBytes]byte
	i := len(buf) - 1
	buf[i] = byte(n & dataByteMask)
	n >>= 7
	for n != 0 {
		i--
		buf[i] = byte(n&dataByteMask) | statusByteFlag
		n >>= 7
	}
	_, e := w.Write(buf[i:])
	return e
}

// Identifies the kind of a channel message; this is the high nibble of its
// status byte.
type EventType uint8

const (
	NoteOffEvent               EventType = 0x8
	NoteOnEvent                EventType = 0x9
	PolyphonicKeyPressureEvent EventType = 0xa
	ControlChangeEvent         EventType = 0xb
	ProgramChangeEvent         EventType = 0xc
	ChannelPressureEvent       EventType = 0xd
	PitchWheelChangeEvent      EventType = 0xe
)

func (t EventType) String() string {
	switch t {
	case NoteOffEvent:
		return "note off"
	case NoteOnEvent:
		return "note on"
	case PolyphonicKeyPressureEvent:
		return "polyphonic key pressure"
	case ControlChangeEvent:
		return "control change"
	case ProgramChangeEvent:
		return "program change"
	case ChannelPressureEvent:
		return "channel pressure"
	case PitchWheelChangeEvent:
		return "pitch wheel change"
	}
	return fmt.Sprintf("unknown event type 0x%x", uint8(t))
}

// Returns the number of data bytes following the status byte of a channel
// message of this type.
func (t EventType) dataLength() int {
	if (t == ProgramChangeEvent) || (t == ChannelPressureEvent) {
		return 1
	}
	return 2
}

func isRunningStatus(b byte) bool {
	return (b & statusByteFlag) == 0
}

func isMetaStatus(b byte) bool {
	return b == statusMeta
}

func isSysExStatus(b byte) bool {
	return (b == statusSysEx) || (b == statusSysExEscape)
}

func isChannelStatus(b byte) bool {
	t := b >> 4
	return (t >= uint8(NoteOffEvent)) && (t <= uint8(PitchWheelChangeEvent))
}

func statusEventType(status byte) EventType {
	return EventType(status >> 4)
}

func statusChannel(status byte) Channel {
	return Channel(status & channelMask)
}
