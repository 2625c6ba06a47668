package midinotes

import (
	"github.com/sirupsen/logrus"
)

// An append-only list of notes, in the order they were emitted.
type NoteSequence struct {
	notes []Note
}

func (s *NoteSequence) Append(n Note) {
	s.notes = append(s.notes, n)
}

// Returns the notes emitted so far. The returned slice must not be modified
// while notes are still being appended.
func (s *NoteSequence) Notes() []Note {
	return s.notes
}

func (s *NoteSequence) Len() int {
	return len(s.notes)
}

// Decides what happens to notes that are still sounding when a track ends.
type TrailingNotePolicy int

const (
	// Emit the notes, with durations reaching the end of the track.
	FlushTrailingNotes TrailingNotePolicy = iota
	// Discard the notes.
	DropTrailingNotes
)

func (p TrailingNotePolicy) String() string {
	if p == DropTrailingNotes {
		return "drop"
	}
	return "flush"
}

// Turns the events of one track into notes for a single channel. Events for
// other channels, meta-events and sysex events are still needed: every event
// advances the aggregator's clock and lengthens its open notes.
type ChannelNoteAggregator struct {
	channel Channel
	out     *NoteSequence
	log     logrus.FieldLogger
	// The time of the most recent event.
	now Time
	// The program set by the most recent program change on this channel.
	instrument Instrument
	// Notes that have started but not ended yet, in the order they started.
	// There is never more than one open note per note number.
	open []Note
}

// Returns an aggregator for the given channel that appends finished notes to
// out. If log is nil, the logrus standard logger is used.
func NewChannelNoteAggregator(channel Channel, out *NoteSequence,
	log logrus.FieldLogger) *ChannelNoteAggregator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ChannelNoteAggregator{
		channel: channel,
		out:     out,
		log:     log.WithField("channel", uint8(channel)),
	}
}

// Returns the current time of the aggregator's clock.
func (a *ChannelNoteAggregator) Now() Time {
	return a.now
}

// Returns the number of notes that have started but not ended.
func (a *ChannelNoteAggregator) OpenNotes() int {
	return len(a.open)
}

// Moves the clock forward, lengthening every open note.
func (a *ChannelNoteAggregator) advance(dt Duration) {
	for i := range a.open {
		a.open[i].Duration = a.open[i].Duration.Add(dt)
	}
	a.now = a.now.Add(dt)
}

// Emits and removes every open note with the given number. Returns the
// number of notes closed.
func (a *ChannelNoteAggregator) closeNotes(note NoteNumber) int {
	closed := 0
	kept := a.open[:0]
	for _, n := range a.open {
		if n.Number == note {
			a.out.Append(n)
			closed++
			continue
		}
		kept = append(kept, n)
	}
	a.open = kept
	return closed
}

func (a *ChannelNoteAggregator) NoteOn(dt Duration, channel Channel,
	note NoteNumber, velocity uint8) {
	if velocity == 0 {
		a.NoteOff(dt, channel, note, velocity)
		return
	}
	a.advance(dt)
	if channel != a.channel {
		return
	}
	if a.closeNotes(note) != 0 {
		a.log.WithField("note", note.String()).Debugf("Note retriggered at "+
			"tick %d", uint64(a.now))
	}
	a.open = append(a.open, Note{
		Number:     note,
		Start:      a.now,
		Velocity:   velocity,
		Instrument: a.instrument,
		Channel:    a.channel,
	})
}

func (a *ChannelNoteAggregator) NoteOff(dt Duration, channel Channel,
	note NoteNumber, velocity uint8) {
	a.advance(dt)
	if channel != a.channel {
		return
	}
	if a.closeNotes(note) == 0 {
		a.log.WithField("note", note.String()).Debugf("Note off for a note "+
			"that isn't on, at tick %d", uint64(a.now))
	}
}

func (a *ChannelNoteAggregator) PolyphonicKeyPressure(dt Duration,
	channel Channel, note NoteNumber, pressure uint8) {
	a.advance(dt)
}

func (a *ChannelNoteAggregator) ControlChange(dt Duration, channel Channel,
	controller, value uint8) {
	a.advance(dt)
}

// Changes the instrument used by notes started after this event. Notes that
// are already open keep their instrument.
func (a *ChannelNoteAggregator) ProgramChange(dt Duration, channel Channel,
	program Instrument) {
	a.advance(dt)
	if channel == a.channel {
		a.instrument = program
	}
}

func (a *ChannelNoteAggregator) ChannelPressure(dt Duration, channel Channel,
	pressure uint8) {
	a.advance(dt)
}

func (a *ChannelNoteAggregator) PitchWheelChange(dt Duration, channel Channel,
	value uint16) {
	a.advance(dt)
}

func (a *ChannelNoteAggregator) Meta(dt Duration, metaType uint8,
	data []byte) {
	a.advance(dt)
}

func (a *ChannelNoteAggregator) SysEx(dt Duration, data []byte) {
	a.advance(dt)
}

// Deals with the notes still open at the end of the track, according to
// policy. Their durations already reach the time of the last event. Returns
// the number of notes that were open.
func (a *ChannelNoteAggregator) Finish(policy TrailingNotePolicy) int {
	count := len(a.open)
	if count == 0 {
		return 0
	}
	a.log.WithField("policy", policy.String()).Warnf("%d note(s) still on "+
		"at end of track (tick %d)", count, uint64(a.now))
	if policy == FlushTrailingNotes {
		for _, n := range a.open {
			a.out.Append(n)
		}
	}
	a.open = nil
	return count
}
