package midinotes

import (
	"fmt"
)

// A MIDI channel, 0 through 15. Only compared for equality.
type Channel uint8

// A MIDI program number, as set by a program-change event. Only compared for
// equality.
type Instrument uint8

// Holds a MIDI note value. The values corresponding to keys on a standard
// keyboard are 21 (A0) through 108 (C8).
type NoteNumber uint8

func (n NoteNumber) String() string {
	if (n < 21) || (n > 108) {
		return fmt.Sprintf("MIDI note %d", uint8(n))
	}
	notes := [...]string{"A", "A#", "B", "C", "C#", "D", "D#", "E", "F",
		"F#", "G", "G#"}
	index := (int(n) - 21) % 12
	octave := (int(n) - 12) / 12
	return fmt.Sprintf("%s%d", notes[index], octave)
}

// An absolute position in a track, in ticks since the start of the track.
type Time uint64

// A span of ticks, such as a delta-time or a note's length.
type Duration uint64

// Returns the time d ticks after t.
func (t Time) Add(d Duration) Time {
	return t + Time(d)
}

// Returns the number of ticks from u to t. u must not be after t.
func (t Time) Sub(u Time) Duration {
	return Duration(t - u)
}

func (d Duration) Add(o Duration) Duration {
	return d + o
}

// A single note reconstructed from a track's note-on and note-off events.
type Note struct {
	Number NoteNumber `json:"note"`
	// The tick, relative to the start of its track, at which the note-on was
	// accepted.
	Start    Time     `json:"start"`
	Duration Duration `json:"duration"`
	Velocity uint8    `json:"velocity"`
	// The channel's program at the time the note started.
	Instrument Instrument `json:"instrument"`
	Channel    Channel    `json:"channel"`
}

// Returns the tick at which the note stops sounding.
func (n *Note) End() Time {
	return n.Start.Add(n.Duration)
}

func (n Note) String() string {
	return fmt.Sprintf("Note(number=%d (%s), start=%d, duration=%d, "+
		"velocity=%d, instrument=%d, channel=%d)", uint8(n.Number), n.Number,
		uint64(n.Start), uint64(n.Duration), n.Velocity, uint8(n.Instrument),
		uint8(n.Channel))
}
