package midinotes

// This file contains code used for reading the chunk framing of .mid
// SMF-format files.

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// The size of the MThd body this package knows how to read.
const smfHeaderBodySize = 6

// The division field of the MThd chunk. With the top bit clear it is a
// number of ticks per quarter note. With it set, the high byte is a negative
// SMPTE frame rate and the low byte the number of ticks per frame. It is only
// used for display; ticks are never converted into real time.
type TimeDivision uint16

const (
	divisionSMPTEFlag     = 0x8000
	divisionTicksMask     = 0x7fff
	divisionFrameTickMask = 0x00ff
)

// Returns true if the division is given as SMPTE frames rather than ticks
// per quarter note.
func (d TimeDivision) IsSMPTE() bool {
	return d&divisionSMPTEFlag != 0
}

// Returns the number of ticks per quarter note, or 0 for SMPTE divisions.
func (d TimeDivision) TicksPerQuarterNote() uint16 {
	if d.IsSMPTE() {
		return 0
	}
	return uint16(d & divisionTicksMask)
}

// Returns the SMPTE frame rate (24, 25, 29 for 30 drop-frame, or 30) and the
// number of ticks per frame. Both are 0 if the division is in ticks per
// quarter note.
func (d TimeDivision) SMPTETimeCode() (fps uint8, ticksPerFrame uint8) {
	if !d.IsSMPTE() {
		return 0, 0
	}
	return uint8(-int8(uint8(d >> 8))), uint8(d & divisionFrameTickMask)
}

func (d TimeDivision) String() string {
	if d&divisionTicksMask == 0 {
		return fmt.Sprintf("Invalid TimeDivision value: 0x%04x", uint16(d))
	}
	if !d.IsSMPTE() {
		return fmt.Sprintf("%d ticks per quarter note",
			d.TicksPerQuarterNote())
	}
	fps, ticksPerFrame := d.SMPTETimeCode()
	rate := fmt.Sprintf("%d", fps)
	if fps == 29 {
		rate = "29.97 (drop-frame)"
	}
	return fmt.Sprintf("SMPTE %s frames per second, %d ticks per frame",
		rate, ticksPerFrame)
}

// The 8 bytes at the start of every chunk.
type ChunkHeader struct {
	// Normally 'MThd' or 'MTrk', but this is never checked while reading.
	ID [4]byte
	// The number of bytes following the header.
	Length uint32
}

// Returns the chunk's four-character tag.
func (h ChunkHeader) Tag() string {
	return string(h.ID[:])
}

// Returns true if this is the header of a track chunk.
func (h ChunkHeader) IsTrack() bool {
	return h.Tag() == "MTrk"
}

// Reads a chunk header from r. The tag isn't validated.
func ReadChunkHeader(r io.Reader) (ChunkHeader, error) {
	var h ChunkHeader
	e := binary.Read(r, binary.NativeEndian, &h)
	if e != nil {
		return h, truncated(e, "chunk header")
	}
	h.Length = bigEndianToHost32(h.Length)
	return h, nil
}

// Specifies the format used by the SMF file header.
type SMFHeader struct {
	// This is expected to be 'MThd', with a length of 6.
	Chunk ChunkHeader
	// 0, 1 or 2, but not validated.
	Format uint16
	// The number of track chunks following the header.
	TrackCount uint16
	// Specifies what the delta-times mean in this file.
	Division TimeDivision
}

func (h *SMFHeader) String() string {
	return fmt.Sprintf("Format %d, with %d track(s), %s", h.Format,
		h.TrackCount, h.Division.String())
}

// Reads the MThd chunk at the start of an SMF file. If the chunk is longer
// than the 6 bytes we understand, the rest of it is skipped.
func ReadSMFHeader(r io.Reader) (*SMFHeader, error) {
	var h SMFHeader
	e := binary.Read(r, binary.NativeEndian, &h)
	if e != nil {
		return nil, truncated(e, "SMF header")
	}
	h.Chunk.Length = bigEndianToHost32(h.Chunk.Length)
	h.Format = bigEndianToHost16(h.Format)
	h.TrackCount = bigEndianToHost16(h.TrackCount)
	h.Division = TimeDivision(bigEndianToHost16(uint16(h.Division)))
	if h.Chunk.Length > smfHeaderBodySize {
		e = skipBytes(r, int64(h.Chunk.Length-smfHeaderBodySize))
		if e != nil {
			return nil, errors.Wrap(e, "skipping the rest of the SMF header")
		}
	}
	return &h, nil
}

// Discards the next n bytes of r.
func skipBytes(r io.Reader, n int64) error {
	if n <= 0 {
		return nil
	}
	_, e := io.CopyN(io.Discard, r, n)
	if e != nil {
		return truncated(e, fmt.Sprintf("%d bytes to skip", n))
	}
	return nil
}
