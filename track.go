package midinotes

// This file contains the decoder for the events in a single MTrk chunk.

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// The input required by the track decoder. Sysex events need a single byte
// to be pushed back, so plain io.Readers must be wrapped (e.g. in a
// bufio.Reader) first. *bufio.Reader and *bytes.Reader both qualify.
type Reader interface {
	io.Reader
	io.ByteScanner
}

// Wraps a Reader, keeping track of how many bytes have been consumed.
type countingReader struct {
	r Reader
	n int64
}

func (c *countingReader) Read(data []byte) (int, error) {
	n, e := c.r.Read(data)
	c.n += int64(n)
	return n, e
}

func (c *countingReader) ReadByte() (byte, error) {
	b, e := c.r.ReadByte()
	if e == nil {
		c.n++
	}
	return b, e
}

func (c *countingReader) UnreadByte() error {
	e := c.r.UnreadByte()
	if e == nil {
		c.n--
	}
	return e
}

// Decodes the events in one track chunk, passing each of them to an
// EventReceiver.
type TrackDecoder struct {
	r        *countingReader
	receiver EventReceiver
	// The status byte of the most recent channel message, or 0 if there is
	// none. Meta and sysex events reset it.
	runningStatus byte
	// The number of events decoded so far.
	events int
}

// Returns a decoder that reads track data from r and sends its events to
// receiver.
func NewTrackDecoder(r Reader, receiver EventReceiver) *TrackDecoder {
	return &TrackDecoder{
		r:        &countingReader{r: r},
		receiver: receiver,
	}
}

// Returns the number of events decoded so far.
func (d *TrackDecoder) EventCount() int {
	return d.events
}

// Returns the number of bytes of track data consumed so far. After Decode
// this can differ from the chunk's declared length.
func (d *TrackDecoder) BytesRead() int64 {
	return d.r.n
}

// Decodes the body of a track chunk whose header has already been read.
// Decoding stops right after the end-of-track meta-event, which is the only
// thing that ends a track: the chunk's declared length isn't enforced, and
// the next read starts immediately after the end-of-track event.
func (d *TrackDecoder) Decode(header ChunkHeader) error {
	for {
		done, e := d.decodeEvent()
		if e != nil {
			return errors.Wrapf(e, "failed decoding event %d of %q chunk",
				d.events, header.Tag())
		}
		d.events++
		if done {
			return nil
		}
	}
}

// Decodes a single event. Returns true if it was the end-of-track event.
func (d *TrackDecoder) decodeEvent() (bool, error) {
	delta, e := ReadVariableInt(d.r)
	if e != nil {
		return false, errors.Wrap(e, "bad delta-time")
	}
	dt := Duration(delta)
	status, e := readByte(d.r, "status byte")
	if e != nil {
		return false, e
	}
	var firstData byte
	if isRunningStatus(status) {
		if d.runningStatus == 0 {
			return false, errors.Wrapf(ErrUnsupportedStatus, "data byte 0x%02x "+
				"without a running status", status)
		}
		firstData = status
		status = d.runningStatus
	} else {
		firstData, e = readByte(d.r, "first data byte")
		if e != nil {
			return false, e
		}
	}

	switch {
	case isMetaStatus(status):
		d.runningStatus = 0
		return d.decodeMetaEvent(dt, firstData)
	case isSysExStatus(status):
		d.runningStatus = 0
		return false, d.decodeSysExEvent(dt)
	case isChannelStatus(status):
		d.runningStatus = status
		return false, d.decodeChannelMessage(dt, status, firstData)
	}
	return false, errors.Wrapf(ErrUnsupportedStatus, "status byte 0x%02x",
		status)
}

// Reads a length-prefixed payload. The buffer grows as data arrives, so a
// bogus length in a truncated file doesn't cause a huge allocation.
func (d *TrackDecoder) readPayload(what string) ([]byte, error) {
	length, e := ReadVariableInt(d.r)
	if e != nil {
		return nil, errors.Wrapf(e, "bad %s length", what)
	}
	if length == 0 {
		return nil, nil
	}
	var data bytes.Buffer
	_, e = io.CopyN(&data, d.r, int64(length))
	if e != nil {
		return nil, truncated(e, what+" data")
	}
	return data.Bytes(), nil
}

// Handles an event with the 0xff status. The meta-event type is the first
// data byte.
func (d *TrackDecoder) decodeMetaEvent(dt Duration, metaType byte) (bool,
	error) {
	data, e := d.readPayload("meta-event")
	if e != nil {
		return false, e
	}
	d.receiver.Meta(dt, metaType, data)
	return metaType == metaEndOfTrack, nil
}

// Handles an event with the 0xf0 or 0xf7 status. The byte read as the first
// data byte actually starts the payload length, so it goes back first.
func (d *TrackDecoder) decodeSysExEvent(dt Duration) error {
	e := d.r.UnreadByte()
	if e != nil {
		return errors.Wrap(e, "failed pushing back start of sysex length")
	}
	data, e := d.readPayload("sysex")
	if e != nil {
		return e
	}
	d.receiver.SysEx(dt, data)
	return nil
}

func (d *TrackDecoder) decodeChannelMessage(dt Duration, status,
	firstData byte) error {
	eventType := statusEventType(status)
	channel := statusChannel(status)
	var secondData byte
	var e error
	if eventType.dataLength() == 2 {
		secondData, e = readByte(d.r, eventType.String()+" data")
		if e != nil {
			return e
		}
	}
	r := d.receiver
	switch eventType {
	case NoteOffEvent:
		r.NoteOff(dt, channel, NoteNumber(firstData), secondData)
	case NoteOnEvent:
		r.NoteOn(dt, channel, NoteNumber(firstData), secondData)
	case PolyphonicKeyPressureEvent:
		r.PolyphonicKeyPressure(dt, channel, NoteNumber(firstData), secondData)
	case ControlChangeEvent:
		r.ControlChange(dt, channel, firstData, secondData)
	case ProgramChangeEvent:
		r.ProgramChange(dt, channel, Instrument(firstData))
	case ChannelPressureEvent:
		r.ChannelPressure(dt, channel, firstData)
	case PitchWheelChangeEvent:
		value := uint16(secondData) << pitchWheelLowBitsLen
		value |= uint16(firstData)
		r.PitchWheelChange(dt, channel, value)
	}
	return nil
}

// Decodes the body of a track chunk whose header has already been read,
// sending every event to receiver.
func DecodeTrackBody(r Reader, header ChunkHeader,
	receiver EventReceiver) error {
	return NewTrackDecoder(r, receiver).Decode(header)
}

// Reads a track chunk, header included, from r, sending every event to
// receiver. The chunk's tag isn't checked.
func ReadTrack(r Reader, receiver EventReceiver) error {
	header, e := ReadChunkHeader(r)
	if e != nil {
		return errors.Wrap(e, "failed reading track chunk header")
	}
	return DecodeTrackBody(r, header, receiver)
}
