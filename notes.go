package midinotes

// This file contains the code that turns an entire SMF file into notes.

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Supplies the EventReceiver for each track of a file, as it is decoded by
// ReadSMF.
type TrackHandler interface {
	// Called before decoding the track with the given index.
	StartTrack(index int, header ChunkHeader) (EventReceiver, error)
	// Called after the track's end-of-track event has been decoded.
	EndTrack(index int, eventCount int) error
}

// Returns r if it can already push back a byte, otherwise buffers it.
func asReader(r io.Reader) Reader {
	if br, ok := r.(Reader); ok {
		return br
	}
	return bufio.NewReader(r)
}

// Reads chunk headers until finding a track chunk, skipping any other chunks.
func nextTrackChunk(r io.Reader, log logrus.FieldLogger) (ChunkHeader,
	error) {
	for {
		h, e := ReadChunkHeader(r)
		if e != nil {
			return h, e
		}
		if h.IsTrack() {
			return h, nil
		}
		log.Debugf("Skipping %d-byte %q chunk", h.Length, h.Tag())
		e = skipBytes(r, int64(h.Length))
		if e != nil {
			return h, errors.Wrapf(e, "failed skipping %q chunk", h.Tag())
		}
	}
}

// Decodes an entire SMF file, track by track, sending each track's events to
// the receiver returned by handler. Chunks other than MTrk chunks are skipped
// and don't count towards the header's track count. Returns the file's
// header. Decoding stops at the first error.
func ReadSMF(r io.Reader, handler TrackHandler,
	opts ...Option) (*SMFHeader, error) {
	o := newOptions(opts)
	in := asReader(r)
	header, e := ReadSMFHeader(in)
	if e != nil {
		return nil, errors.Wrap(e, "failed parsing SMF header")
	}
	o.log.Debugf("SMF header: %s", header)
	for i := 0; i < int(header.TrackCount); i++ {
		chunk, e := nextTrackChunk(in, o.log)
		if e != nil {
			return nil, errors.Wrapf(e, "failed finding SMF track %d", i)
		}
		receiver, e := handler.StartTrack(i, chunk)
		if e != nil {
			return nil, errors.Wrapf(e, "failed starting SMF track %d", i)
		}
		decoder := NewTrackDecoder(in, receiver)
		e = decoder.Decode(chunk)
		if e != nil {
			return nil, errors.Wrapf(e, "failed parsing SMF track %d", i)
		}
		if decoder.BytesRead() != int64(chunk.Length) {
			o.log.WithField("track", i).Debugf("Track chunk declares %d "+
				"bytes, but end of track came after %d", chunk.Length,
				decoder.BytesRead())
		}
		e = handler.EndTrack(i, decoder.EventCount())
		if e != nil {
			return nil, errors.Wrapf(e, "failed finishing SMF track %d", i)
		}
	}
	return header, nil
}

// Collects the notes of a single track: one ChannelNoteAggregator per channel,
// all fed by the same Multicaster.
type NoteCollector struct {
	*Multicaster
	// One per MIDI channel.
	aggregators [16]*ChannelNoteAggregator
}

// Returns a NoteCollector appending notes from all 16 channels to out.
func NewNoteCollector(out *NoteSequence,
	log logrus.FieldLogger) (*NoteCollector, error) {
	c := &NoteCollector{}
	receivers := make([]EventReceiver, len(c.aggregators))
	for i := range c.aggregators {
		c.aggregators[i] = NewChannelNoteAggregator(Channel(i), out, log)
		receivers[i] = c.aggregators[i]
	}
	m, e := NewMulticaster(receivers...)
	if e != nil {
		return nil, e
	}
	c.Multicaster = m
	return c, nil
}

// Applies the trailing-note policy to every channel. Returns the number of
// notes that were still on.
func (c *NoteCollector) Finish(policy TrailingNotePolicy) int {
	total := 0
	for _, a := range c.aggregators {
		total += a.Finish(policy)
	}
	return total
}

// Implements TrackHandler, giving every track a fresh NoteCollector.
type noteTrackHandler struct {
	options   *options
	notes     NoteSequence
	collector *NoteCollector
}

func (h *noteTrackHandler) StartTrack(index int,
	header ChunkHeader) (EventReceiver, error) {
	c, e := NewNoteCollector(&h.notes, h.options.log.WithField("track",
		index))
	if e != nil {
		return nil, e
	}
	h.collector = c
	return c, nil
}

func (h *noteTrackHandler) EndTrack(index int, eventCount int) error {
	before := h.notes.Len()
	h.collector.Finish(h.options.trailing)
	h.options.log.WithField("track", index).Debugf("Decoded %d events, %d "+
		"notes", eventCount, h.notes.Len()-before)
	h.collector = nil
	return nil
}

// Reads an SMF file and returns all of its notes. Notes are in the order they
// ended (across all channels and tracks), not sorted by start time; see
// SortNotes. Start times are relative to the start of each note's track.
func ReadNotes(r io.Reader, opts ...Option) ([]Note, error) {
	h := &noteTrackHandler{options: newOptions(opts)}
	_, e := ReadSMF(r, h, opts...)
	if e != nil {
		return nil, e
	}
	return h.notes.Notes(), nil
}
