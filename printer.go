package midinotes

// This file contains an EventReceiver that writes a description of every
// event it receives.

import (
	"fmt"
	"io"
)

// Writes one line per event to an io.Writer. Write errors are remembered and
// can be retrieved with Err; nothing more is written after the first one.
type EventPrinter struct {
	w io.Writer
	// Prefixes each line, e.g. for indentation.
	prefix string
	// The number of the next event and its absolute time.
	index int
	now   Time
	err   error
}

// Returns an EventPrinter writing to w, prefixing each line with prefix.
func NewEventPrinter(w io.Writer, prefix string) *EventPrinter {
	return &EventPrinter{
		w:      w,
		prefix: prefix,
	}
}

// Returns the first error encountered while writing, if any.
func (p *EventPrinter) Err() error {
	return p.err
}

// Restarts event numbering and the clock, for a new track.
func (p *EventPrinter) Reset() {
	p.index = 0
	p.now = 0
}

func (p *EventPrinter) printf(dt Duration, format string, args ...any) {
	p.now = p.now.Add(dt)
	p.index++
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%d. Time %d (+%d): %s\n", p.prefix, p.index,
		uint64(p.now), uint64(dt), fmt.Sprintf(format, args...))
}

func (p *EventPrinter) NoteOn(dt Duration, channel Channel, note NoteNumber,
	velocity uint8) {
	p.printf(dt, "Channel %d: %s on, velocity = %d", channel, note, velocity)
}

func (p *EventPrinter) NoteOff(dt Duration, channel Channel, note NoteNumber,
	velocity uint8) {
	p.printf(dt, "Channel %d: %s off, velocity = %d", channel, note, velocity)
}

func (p *EventPrinter) PolyphonicKeyPressure(dt Duration, channel Channel,
	note NoteNumber, pressure uint8) {
	p.printf(dt, "Channel %d: %s aftertouch pressure %d", channel, note,
		pressure)
}

// Returns a description of a control change. Controllers 120 through 127 are
// channel-mode messages.
func controlChangeString(controller, value uint8) string {
	switch controller {
	case 120:
		return fmt.Sprintf("All sound off (v = %d)", value)
	case 121:
		return fmt.Sprintf("Reset all controllers (v = %d)", value)
	case 122:
		tmp := "off"
		if value == 127 {
			tmp = "on"
		} else if value != 0 {
			tmp = fmt.Sprintf("unknown setting %d", value)
		}
		return "Local control " + tmp
	case 123:
		return fmt.Sprintf("All notes off (v = %d)", value)
	case 124:
		return fmt.Sprintf("Omni mode off (v = %d)", value)
	case 125:
		return fmt.Sprintf("Omni mode on (v = %d)", value)
	case 126:
		return fmt.Sprintf("Mono mode on (v = %d)", value)
	case 127:
		return fmt.Sprintf("Poly mode on (v = %d)", value)
	}
	return fmt.Sprintf("Control change, controller number %d, value %d",
		controller, value)
}

func (p *EventPrinter) ControlChange(dt Duration, channel Channel,
	controller, value uint8) {
	p.printf(dt, "Channel %d: %s", channel, controlChangeString(controller,
		value))
}

func (p *EventPrinter) ProgramChange(dt Duration, channel Channel,
	program Instrument) {
	p.printf(dt, "Channel %d: program change to %d", channel, program)
}

func (p *EventPrinter) ChannelPressure(dt Duration, channel Channel,
	pressure uint8) {
	p.printf(dt, "Channel %d: Set channel pressure to %d", channel, pressure)
}

func (p *EventPrinter) PitchWheelChange(dt Duration, channel Channel,
	value uint16) {
	p.printf(dt, "Channel %d: Pitch bend value %d", channel, value)
}

// Returns a description of a meta-event. Only the types that are common in
// files are described in any detail.
func metaEventString(metaType uint8, data []byte) string {
	switch {
	case metaType == 0x00 && len(data) == 2:
		return fmt.Sprintf("Sequence number: %d", uint16(data[0])<<8|
			uint16(data[1]))
	case metaType >= 0x01 && metaType <= 0x0f:
		return fmt.Sprintf("%s: %s", textEventName(metaType), data)
	case metaType == 0x20 && len(data) == 1:
		return fmt.Sprintf("Channel prefix: %d", data[0])
	case metaType == metaEndOfTrack:
		return "End of track"
	case metaType == 0x51 && len(data) == 3:
		t := uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])
		return fmt.Sprintf("Set tempo to %d us/quarter note", t)
	case metaType == 0x58 && len(data) == 4:
		return fmt.Sprintf("Time signature: %d/%d time, %d clocks per "+
			"metronome tick, %d 32nd notes per quarter note", data[0],
			uint32(1)<<uint32(data[1]), data[2], data[3])
	case metaType == 0x59 && len(data) == 2:
		return fmt.Sprintf("Key signature: %d sharps (negative = flats), "+
			"minor = %v", int8(data[0]), data[1] == 1)
	}
	return fmt.Sprintf("Meta-event type 0x%02x, %d bytes: % x", metaType,
		len(data), data)
}

func textEventName(metaType uint8) string {
	switch metaType {
	case 0x1:
		return "Generic text event"
	case 0x2:
		return "Copyright notice"
	case 0x3:
		return "Track/sequence name"
	case 0x4:
		return "Instrument name"
	case 0x5:
		return "Lyric"
	case 0x6:
		return "Marker"
	case 0x7:
		return "Cue point"
	}
	return fmt.Sprintf("Unknown text event type %d", metaType)
}

func (p *EventPrinter) Meta(dt Duration, metaType uint8, data []byte) {
	p.printf(dt, "%s", metaEventString(metaType, data))
}

func (p *EventPrinter) SysEx(dt Duration, data []byte) {
	p.printf(dt, "System exclusive message. %d bytes: % x", len(data), data)
}
