package midinotes

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// Returns a logger that records entries instead of printing them.
func testLogger() (*logrus.Logger, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return log, hook
}

func checkNote(t *testing.T, got Note, expected Note) {
	t.Helper()
	if got != expected {
		t.Fatalf("Expected %s, got %s", expected, got)
	}
}

func TestImplicitRetrigger(t *testing.T) {
	var out NoteSequence
	log, hook := testLogger()
	a := NewChannelNoteAggregator(0, &out, log)
	a.NoteOn(0, 0, 60, 64)
	a.NoteOn(10, 0, 60, 100)
	a.NoteOff(5, 0, 60, 0)
	notes := out.Notes()
	if len(notes) != 2 {
		t.Fatalf("Expected 2 notes, got %d: %v", len(notes), notes)
	}
	checkNote(t, notes[0], Note{Number: 60, Start: 0, Duration: 10,
		Velocity: 64})
	checkNote(t, notes[1], Note{Number: 60, Start: 10, Duration: 5,
		Velocity: 100})
	if a.OpenNotes() != 0 {
		t.Fatalf("%d notes still open", a.OpenNotes())
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.DebugLevel {
		t.Fatalf("Retrigger wasn't logged")
	}
}

func TestZeroVelocityNoteOn(t *testing.T) {
	var out NoteSequence
	a := NewChannelNoteAggregator(2, &out, nil)
	a.NoteOn(3, 2, 70, 90)
	a.NoteOn(7, 2, 70, 0)
	if out.Len() != 1 {
		t.Fatalf("Expected 1 note, got %d", out.Len())
	}
	checkNote(t, out.Notes()[0], Note{Number: 70, Start: 3, Duration: 7,
		Velocity: 90, Channel: 2})
	if a.Now() != 10 {
		t.Fatalf("Clock at %d, expected 10", a.Now())
	}
}

func TestPolyphonicNotes(t *testing.T) {
	var out NoteSequence
	a := NewChannelNoteAggregator(0, &out, nil)
	a.NoteOn(0, 0, 60, 10)
	a.NoteOn(4, 0, 64, 20)
	a.NoteOn(4, 0, 67, 30)
	a.ControlChange(2, 0, 64, 127)
	a.NoteOff(6, 0, 64, 0)
	a.PitchWheelChange(1, 0, 0x2000)
	a.NoteOff(1, 0, 60, 0)
	a.NoteOff(2, 0, 67, 0)
	expected := []Note{
		{Number: 64, Start: 4, Duration: 12, Velocity: 20},
		{Number: 60, Start: 0, Duration: 18, Velocity: 10},
		{Number: 67, Start: 8, Duration: 12, Velocity: 30},
	}
	if out.Len() != len(expected) {
		t.Fatalf("Expected %d notes, got %v", len(expected), out.Notes())
	}
	for i := range expected {
		checkNote(t, out.Notes()[i], expected[i])
	}
}

func TestOtherChannelsShareTime(t *testing.T) {
	var out NoteSequence
	a := NewChannelNoteAggregator(3, &out, nil)
	a.NoteOn(0, 3, 50, 80)
	// None of these are for channel 3, but they all take time.
	a.NoteOn(5, 5, 50, 80)
	a.NoteOff(2, 5, 50, 0)
	a.ProgramChange(1, 5, 40)
	a.ControlChange(1, 4, 1, 1)
	a.PolyphonicKeyPressure(1, 1, 50, 3)
	a.ChannelPressure(1, 0, 3)
	a.PitchWheelChange(1, 15, 0)
	a.Meta(1, 0x01, []byte("x"))
	a.SysEx(1, nil)
	if out.Len() != 0 || a.OpenNotes() != 1 {
		t.Fatalf("Other channels affected channel 3's notes: %d emitted, "+
			"%d open", out.Len(), a.OpenNotes())
	}
	a.NoteOff(0, 3, 50, 0)
	checkNote(t, out.Notes()[0], Note{Number: 50, Start: 0, Duration: 14,
		Velocity: 80, Channel: 3})
	// The program change was for channel 5.
	a.NoteOn(0, 3, 51, 80)
	a.Finish(FlushTrailingNotes)
	if out.Notes()[1].Instrument != 0 {
		t.Fatalf("Another channel's program change was applied")
	}
}

func TestProgramChange(t *testing.T) {
	var out NoteSequence
	a := NewChannelNoteAggregator(1, &out, nil)
	a.NoteOn(0, 1, 60, 1)
	a.ProgramChange(2, 1, 33)
	a.NoteOn(0, 1, 62, 1)
	a.NoteOff(3, 1, 60, 0)
	a.NoteOff(0, 1, 62, 0)
	// The first note keeps the instrument it started with.
	checkNote(t, out.Notes()[0], Note{Number: 60, Start: 0, Duration: 5,
		Velocity: 1, Channel: 1})
	checkNote(t, out.Notes()[1], Note{Number: 62, Start: 2, Duration: 3,
		Velocity: 1, Instrument: 33, Channel: 1})
}

func TestUnmatchedNoteOff(t *testing.T) {
	var out NoteSequence
	a := NewChannelNoteAggregator(0, &out, nil)
	a.NoteOn(0, 0, 60, 1)
	a.NoteOff(4, 0, 61, 0)
	if out.Len() != 0 || a.OpenNotes() != 1 {
		t.Fatalf("Unmatched note-off closed a note")
	}
	a.NoteOff(1, 0, 60, 0)
	if out.Notes()[0].Duration != 5 {
		t.Fatalf("Expected duration 5, got %d", out.Notes()[0].Duration)
	}
}

func TestTrailingNotePolicy(t *testing.T) {
	var flushed, dropped NoteSequence
	log, hook := testLogger()
	for _, c := range []struct {
		out    *NoteSequence
		policy TrailingNotePolicy
	}{{&flushed, FlushTrailingNotes}, {&dropped, DropTrailingNotes}} {
		a := NewChannelNoteAggregator(0, c.out, log)
		a.NoteOn(2, 0, 60, 1)
		a.NoteOn(0, 0, 61, 1)
		a.Meta(8, metaEndOfTrack, nil)
		if a.Finish(c.policy) != 2 {
			t.Fatalf("Finish didn't report 2 open notes")
		}
		if a.OpenNotes() != 0 {
			t.Fatalf("Notes still open after Finish")
		}
		if hook.LastEntry().Level != logrus.WarnLevel {
			t.Fatalf("Trailing notes weren't warned about")
		}
	}
	if dropped.Len() != 0 {
		t.Fatalf("Dropped notes were emitted: %v", dropped.Notes())
	}
	if flushed.Len() != 2 {
		t.Fatalf("Expected 2 flushed notes, got %d", flushed.Len())
	}
	checkNote(t, flushed.Notes()[0], Note{Number: 60, Start: 2, Duration: 8,
		Velocity: 1})
	checkNote(t, flushed.Notes()[1], Note{Number: 61, Start: 2, Duration: 8,
		Velocity: 1})
}
