package midinotes

// Receives the events of a track, in order, as the track is decoded. Every
// method gets the number of ticks since the previous event in the same track.
// Payload slices passed to Meta and SysEx are shared between all receivers of
// a Multicaster, so they must not be modified.
type EventReceiver interface {
	NoteOn(dt Duration, channel Channel, note NoteNumber, velocity uint8)
	NoteOff(dt Duration, channel Channel, note NoteNumber, velocity uint8)
	// Also known as aftertouch.
	PolyphonicKeyPressure(dt Duration, channel Channel, note NoteNumber,
		pressure uint8)
	// Also carries channel-mode messages (controllers 120 through 127).
	ControlChange(dt Duration, channel Channel, controller, value uint8)
	ProgramChange(dt Duration, channel Channel, program Instrument)
	ChannelPressure(dt Duration, channel Channel, pressure uint8)
	// value is 14 bits wide, centered on 0x2000.
	PitchWheelChange(dt Duration, channel Channel, value uint16)
	Meta(dt Duration, metaType uint8, data []byte)
	// data is the length-prefixed payload following the 0xf0 or 0xf7 byte.
	SysEx(dt Duration, data []byte)
}
