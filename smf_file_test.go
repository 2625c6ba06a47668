package midinotes

import (
	"bytes"
	"errors"
	"testing"
)

func TestReadChunkHeader(t *testing.T) {
	r := bytes.NewReader([]byte{'X', 'Y', 'Z', 'W', 0, 0, 0x01, 0x02, 0xaa})
	h, e := ReadChunkHeader(r)
	if e != nil {
		t.Fatalf("Failed reading chunk header: %s", e)
	}
	// The tag isn't checked, just reported.
	if h.Tag() != "XYZW" || h.IsTrack() {
		t.Fatalf("Got wrong tag %q", h.Tag())
	}
	if h.Length != 0x102 {
		t.Fatalf("Got length 0x%x, expected 0x102", h.Length)
	}
	if r.Len() != 1 {
		t.Fatalf("Chunk header consumed %d bytes", 9-r.Len())
	}
	_, e = ReadChunkHeader(bytes.NewReader([]byte{'M', 'T', 'r', 'k', 0, 0}))
	if !errors.Is(e, ErrTruncatedInput) {
		t.Fatalf("Didn't get ErrTruncatedInput for a short header: %v", e)
	}
}

func TestReadSMFHeader(t *testing.T) {
	data := []byte{
		0x4d, 0x54, 0x68, 0x64,
		0, 0, 0, 6,
		0, 1,
		0, 4,
		0, 0x60,
	}
	h, e := ReadSMFHeader(bytes.NewReader(data))
	if e != nil {
		t.Fatalf("Failed reading SMF header: %s", e)
	}
	if h.Chunk.Tag() != "MThd" || h.Chunk.Length != 6 {
		t.Fatalf("Bad chunk header: %q, %d", h.Chunk.Tag(), h.Chunk.Length)
	}
	if h.Format != 1 || h.TrackCount != 4 {
		t.Fatalf("Bad header: %s", h)
	}
	if h.Division.TicksPerQuarterNote() != 96 {
		t.Fatalf("Bad division: %s", h.Division)
	}
	t.Logf("Read header: %s\n", h)

	_, e = ReadSMFHeader(bytes.NewReader(data[:10]))
	if !errors.Is(e, ErrTruncatedInput) {
		t.Fatalf("Didn't get ErrTruncatedInput for a short header: %v", e)
	}
}

func TestReadSMFHeaderSkipsExtraBytes(t *testing.T) {
	data := []byte{
		0x4d, 0x54, 0x68, 0x64,
		0, 0, 0, 8,
		0, 0,
		0, 1,
		0x01, 0xe0,
		0xde, 0xad,
		'M',
	}
	r := bytes.NewReader(data)
	h, e := ReadSMFHeader(r)
	if e != nil {
		t.Fatalf("Failed reading SMF header: %s", e)
	}
	if h.Division.TicksPerQuarterNote() != 480 {
		t.Fatalf("Bad division: %s", h.Division)
	}
	b, _ := r.ReadByte()
	if b != 'M' {
		t.Fatalf("Extra header bytes weren't skipped, next byte is 0x%02x", b)
	}
}

func TestTimeDivision(t *testing.T) {
	d := TimeDivision(0x0060)
	if d.String() != "96 ticks per quarter note" {
		t.Fatalf("Got %q", d.String())
	}
	// -25 frames per second, 40 ticks per frame.
	d = TimeDivision(0xe728)
	fps, ticks := d.SMPTETimeCode()
	if fps != 25 || ticks != 40 || d.TicksPerQuarterNote() != 0 {
		t.Fatalf("Got %d fps, %d ticks per frame", fps, ticks)
	}
	if !d.IsSMPTE() || TimeDivision(0x0060).IsSMPTE() {
		t.Fatalf("IsSMPTE gave the wrong answer")
	}
	t.Logf("SMPTE division: %s\n", d)
	if d.String() != "SMPTE 25 frames per second, 40 ticks per frame" {
		t.Fatalf("Got %q", d.String())
	}
	// -29 means 30 drop-frame.
	d = TimeDivision(0xe304)
	if d.String() != "SMPTE 29.97 (drop-frame) frames per second, 4 ticks "+
		"per frame" {
		t.Fatalf("Got %q", d.String())
	}
	d = TimeDivision(0x8000)
	if d.String() != "Invalid TimeDivision value: 0x8000" {
		t.Fatalf("Got %q", d.String())
	}
}
