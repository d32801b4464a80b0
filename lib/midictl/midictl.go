package midictl

import (
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

const (
	CCFootSwitch1 = 64
	CCFootSwitch2 = 67
)

type Event interface {
	String() string
}

type PadEvent struct {
	Pad      uint8
	Pressed  bool
	Velocity uint8
}

func (e PadEvent) String() string {
	action := "released"
	if e.Pressed {
		action = "pressed"
	}
	return fmt.Sprintf("Pad %d %s", e.Pad, action)
}

type FootSwitchEvent struct {
	Switch  uint8
	Pressed bool
}

func (e FootSwitchEvent) String() string {
	action := "released"
	if e.Pressed {
		action = "pressed"
	}
	return fmt.Sprintf("Foot switch %d %s", e.Switch, action)
}

type ControlEvent struct {
	Controller uint8
	Value      uint8
}

func (e ControlEvent) String() string {
	return fmt.Sprintf("CC %d = %d", e.Controller, e.Value)
}

func FindInPort(substr string) (drivers.In, error) {
	lower := strings.ToLower(substr)
	for _, port := range midi.GetInPorts() {
		if strings.Contains(strings.ToLower(port.String()), lower) {
			return port, nil
		}
	}
	return nil, fmt.Errorf("midictl: no MIDI input port matching %q", substr)
}

func FindOutPort(substr string) (drivers.Out, error) {
	lower := strings.ToLower(substr)
	for _, port := range midi.GetOutPorts() {
		if strings.Contains(strings.ToLower(port.String()), lower) {
			return port, nil
		}
	}
	return nil, fmt.Errorf("midictl: no MIDI output port matching %q", substr)
}

// Decoder turns raw MIDI from a trigger surface into events. PadBase is the
// note number of pad 0 (36 on most drum-pad controllers).
type Decoder struct {
	PadBase uint8
	Pads    uint8
}

func (d *Decoder) padCount() uint8 {
	if d.Pads == 0 {
		return 16
	}
	return d.Pads
}

func (d *Decoder) Decode(msg midi.Message) Event {
	switch {
	case msg.Is(midi.NoteOnMsg):
		var channel, key, velocity uint8
		msg.GetNoteOn(&channel, &key, &velocity)
		return d.decodeNote(key, velocity)

	case msg.Is(midi.NoteOffMsg):
		var channel, key, velocity uint8
		msg.GetNoteOff(&channel, &key, &velocity)
		return d.decodeNote(key, 0)

	case msg.Is(midi.ControlChangeMsg):
		var channel, controller, value uint8
		msg.GetControlChange(&channel, &controller, &value)
		switch controller {
		case CCFootSwitch1:
			return FootSwitchEvent{Switch: 1, Pressed: value > 0}
		case CCFootSwitch2:
			return FootSwitchEvent{Switch: 2, Pressed: value > 0}
		}
		return ControlEvent{Controller: controller, Value: value}
	}
	return nil
}

func (d *Decoder) decodeNote(key, velocity uint8) Event {
	if key < d.PadBase || key >= d.PadBase+d.padCount() {
		return nil
	}
	return PadEvent{
		Pad:      key - d.PadBase,
		Pressed:  velocity > 0,
		Velocity: velocity,
	}
}

// Output lights pad LEDs. Most pad controllers map a note-on velocity to the
// pad's LED color/intensity.
type Output struct {
	send    func(msg midi.Message) error
	PadBase uint8
}

func NewOutput(port drivers.Out, padBase uint8) (*Output, error) {
	send, err := midi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("midictl: open output port: %w", err)
	}
	return &Output{send: send, PadBase: padBase}, nil
}

func (o *Output) SetPadLED(pad uint8, velocity uint8) error {
	return o.send(midi.NoteOn(0, o.PadBase+pad, velocity))
}

func (o *Output) ClearPadLED(pad uint8) error {
	return o.send(midi.NoteOff(0, o.PadBase+pad))
}
