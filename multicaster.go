package midinotes

import (
	"github.com/pkg/errors"
)

// The largest number of receivers a Multicaster accepts: one per channel.
const MaxReceivers = 16

// An EventReceiver that forwards every event, unchanged, to each of its
// receivers in the order they were added. Receivers must not be added while
// an event is being forwarded.
type Multicaster struct {
	receivers []EventReceiver
}

// Returns a Multicaster forwarding to the given receivers. Returns
// ErrTooManyReceivers if there are more than MaxReceivers of them.
func NewMulticaster(receivers ...EventReceiver) (*Multicaster, error) {
	m := &Multicaster{
		receivers: make([]EventReceiver, 0, MaxReceivers),
	}
	for i, r := range receivers {
		e := m.Add(r)
		if e != nil {
			return nil, errors.Wrapf(e, "failed adding receiver %d", i)
		}
	}
	return m, nil
}

// Registers another receiver. Returns ErrTooManyReceivers, without
// registering it, if MaxReceivers are already registered.
func (m *Multicaster) Add(r EventReceiver) error {
	if len(m.receivers) >= MaxReceivers {
		return errors.Wrapf(ErrTooManyReceivers, "limit is %d", MaxReceivers)
	}
	m.receivers = append(m.receivers, r)
	return nil
}

// Returns the number of registered receivers.
func (m *Multicaster) Len() int {
	return len(m.receivers)
}

func (m *Multicaster) NoteOn(dt Duration, channel Channel, note NoteNumber,
	velocity uint8) {
	for _, r := range m.receivers {
		r.NoteOn(dt, channel, note, velocity)
	}
}

func (m *Multicaster) NoteOff(dt Duration, channel Channel, note NoteNumber,
	velocity uint8) {
	for _, r := range m.receivers {
		r.NoteOff(dt, channel, note, velocity)
	}
}

func (m *Multicaster) PolyphonicKeyPressure(dt Duration, channel Channel,
	note NoteNumber, pressure uint8) {
	for _, r := range m.receivers {
		r.PolyphonicKeyPressure(dt, channel, note, pressure)
	}
}

func (m *Multicaster) ControlChange(dt Duration, channel Channel,
	controller, value uint8) {
	for _, r := range m.receivers {
		r.ControlChange(dt, channel, controller, value)
	}
}

func (m *Multicaster) ProgramChange(dt Duration, channel Channel,
	program Instrument) {
	for _, r := range m.receivers {
		r.ProgramChange(dt, channel, program)
	}
}

func (m *Multicaster) ChannelPressure(dt Duration, channel Channel,
	pressure uint8) {
	for _, r := range m.receivers {
		r.ChannelPressure(dt, channel, pressure)
	}
}

func (m *Multicaster) PitchWheelChange(dt Duration, channel Channel,
	value uint16) {
	for _, r := range m.receivers {
		r.PitchWheelChange(dt, channel, value)
	}
}

func (m *Multicaster) Meta(dt Duration, metaType uint8, data []byte) {
	for _, r := range m.receivers {
		r.Meta(dt, metaType, data)
	}
}

func (m *Multicaster) SysEx(dt Duration, data []byte) {
	for _, r := range m.receivers {
		r.SysEx(dt, data)
	}
}
