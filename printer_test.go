package midinotes

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestEventPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewEventPrinter(&buf, "  ")
	e := ReadTrack(bytes.NewReader(trackChunk(
		0, 0xff, 0x03, 4, 'l', 'e', 'a', 'd',
		0, 0xc0, 5,
		0x60, 0x90, 60, 100,
		0x60, 0x80, 60, 0,
		0, 0xb0, 123, 0,
		0, 0xff, 0x2f, 0,
	)), p)
	if e != nil {
		t.Fatalf("Failed decoding track: %s", e)
	}
	if p.Err() != nil {
		t.Fatalf("Printer failed writing: %s", p.Err())
	}
	t.Logf("Printed events:\n%s", buf.String())
	expected := []string{
		"  1. Time 0 (+0): Track/sequence name: lead",
		"  2. Time 0 (+0): Channel 0: program change to 5",
		"  3. Time 96 (+96): Channel 0: C4 on, velocity = 100",
		"  4. Time 192 (+96): Channel 0: C4 off, velocity = 0",
		"  5. Time 192 (+0): Channel 0: All notes off (v = 0)",
		"  6. Time 192 (+0): End of track",
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	checkEvents(t, lines, expected)

	p.Reset()
	buf.Reset()
	p.SysEx(3, []byte{0x7e, 0x7f})
	if buf.String() != "  1. Time 3 (+3): System exclusive message. 2 "+
		"bytes: 7e 7f\n" {
		t.Fatalf("Bad output after reset: %q", buf.String())
	}
}

type failingWriter struct {
	writes int
}

func (w *failingWriter) Write(data []byte) (int, error) {
	w.writes++
	return 0, errors.New("disk full")
}

func TestEventPrinterWriteError(t *testing.T) {
	w := &failingWriter{}
	p := NewEventPrinter(w, "")
	p.NoteOn(0, 0, 60, 1)
	p.NoteOff(1, 0, 60, 0)
	if p.Err() == nil {
		t.Fatalf("Didn't get write error")
	}
	if w.writes != 1 {
		t.Fatalf("Printer kept writing after an error: %d writes", w.writes)
	}
}

func TestMetaEventString(t *testing.T) {
	tests := []struct {
		metaType uint8
		data     []byte
		expected string
	}{
		{0x51, []byte{7, 0xa1, 0x20}, "Set tempo to 500000 us/quarter note"},
		{0x58, []byte{6, 3, 0x18, 8}, "Time signature: 6/8 time, 24 clocks " +
			"per metronome tick, 8 32nd notes per quarter note"},
		{0x59, []byte{0xfe, 1}, "Key signature: -2 sharps (negative = " +
			"flats), minor = true"},
		{0x00, []byte{0x01, 0x02}, "Sequence number: 258"},
		{0x7f, []byte{1, 2}, "Meta-event type 0x7f, 2 bytes: 01 02"},
		{0x0a, []byte("x"), "Unknown text event type 10: x"},
	}
	for _, test := range tests {
		s := metaEventString(test.metaType, test.data)
		if s != test.expected {
			t.Fatalf("Expected %q, got %q", test.expected, s)
		}
	}
}
