package midictl

import (
	"testing"

	"gitlab.com/gomidi/midi/v2"
)

func TestDecodePadPress(t *testing.T) {
	dec := &Decoder{PadBase: 36}

	ev := dec.Decode(midi.NoteOn(0, 38, 100))
	pad, ok := ev.(PadEvent)
	if !ok {
		t.Fatalf("got %T, want PadEvent", ev)
	}
	if pad.Pad != 2 {
		t.Errorf("got pad %d, want 2", pad.Pad)
	}
	if !pad.Pressed {
		t.Error("expected pressed")
	}
	if pad.Velocity != 100 {
		t.Errorf("got velocity %d, want 100", pad.Velocity)
	}
}

func TestDecodePadRelease(t *testing.T) {
	dec := &Decoder{PadBase: 36}

	for _, msg := range []midi.Message{
		midi.NoteOff(0, 36),
		midi.NoteOn(0, 36, 0),
	} {
		ev := dec.Decode(msg)
		pad, ok := ev.(PadEvent)
		if !ok {
			t.Fatalf("got %T, want PadEvent", ev)
		}
		if pad.Pressed {
			t.Error("expected released")
		}
	}
}

func TestDecodeIgnoresNotesOutsidePadRange(t *testing.T) {
	dec := &Decoder{PadBase: 36, Pads: 8}

	if ev := dec.Decode(midi.NoteOn(0, 20, 100)); ev != nil {
		t.Errorf("got %v for note below range, want nil", ev)
	}
	if ev := dec.Decode(midi.NoteOn(0, 44, 100)); ev != nil {
		t.Errorf("got %v for note above range, want nil", ev)
	}
	if ev := dec.Decode(midi.NoteOn(0, 43, 100)); ev == nil {
		t.Error("got nil for last pad in range")
	}
}

func TestDecodeFootSwitch(t *testing.T) {
	dec := &Decoder{}

	ev := dec.Decode(midi.ControlChange(0, CCFootSwitch1, 127))
	fs, ok := ev.(FootSwitchEvent)
	if !ok {
		t.Fatalf("got %T, want FootSwitchEvent", ev)
	}
	if fs.Switch != 1 || !fs.Pressed {
		t.Errorf("got switch %d pressed %v, want 1 true", fs.Switch, fs.Pressed)
	}

	ev = dec.Decode(midi.ControlChange(0, CCFootSwitch2, 0))
	fs, ok = ev.(FootSwitchEvent)
	if !ok {
		t.Fatalf("got %T, want FootSwitchEvent", ev)
	}
	if fs.Switch != 2 || fs.Pressed {
		t.Errorf("got switch %d pressed %v, want 2 false", fs.Switch, fs.Pressed)
	}
}

func TestDecodeOtherCC(t *testing.T) {
	dec := &Decoder{}

	ev := dec.Decode(midi.ControlChange(0, 7, 99))
	cc, ok := ev.(ControlEvent)
	if !ok {
		t.Fatalf("got %T, want ControlEvent", ev)
	}
	if cc.Controller != 7 || cc.Value != 99 {
		t.Errorf("got CC %d = %d, want 7 = 99", cc.Controller, cc.Value)
	}
}

func TestEventStrings(t *testing.T) {
	cases := []struct {
		ev   Event
		want string
	}{
		{PadEvent{Pad: 3, Pressed: true, Velocity: 90}, "Pad 3 pressed"},
		{PadEvent{Pad: 3}, "Pad 3 released"},
		{FootSwitchEvent{Switch: 1, Pressed: true}, "Foot switch 1 pressed"},
		{ControlEvent{Controller: 4, Value: 64}, "CC 4 = 64"},
	}
	for _, c := range cases {
		if got := c.ev.String(); got != c.want {
			t.Errorf("got %q, want %q", got, c.want)
		}
	}
}
