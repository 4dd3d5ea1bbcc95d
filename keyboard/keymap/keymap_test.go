package keymap

import (
	"errors"
	"testing"
	"time"

	"macromedia/keyboard/encoder"
	"macromedia/keyboard/matrix"
)

type recordHID struct {
	sent []uint16
	err  error
}

func (h *recordHID) SendConsumer(usage uint16) error {
	if h.err != nil {
		return h.err
	}
	h.sent = append(h.sent, usage)
	return nil
}

func equalUsages(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDefaultKeymap(t *testing.T) {
	km := Default()
	if err := km.Validate(2, 4); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := km.Validate(3, 4); err == nil {
		t.Fatal("Validate(3, 4) succeeded")
	}

	tests := []struct {
		pos  matrix.Position
		want Action
	}{
		{matrix.Position{Row: 0, Col: 0}, PlayPause},
		{matrix.Position{Row: 0, Col: 3}, Stop},
		{matrix.Position{Row: 1, Col: 2}, Mute},
		{matrix.Position{Row: 1, Col: 3}, BrightnessUp},
		{matrix.Position{Row: 2, Col: 0}, None},
		{matrix.Position{Row: 0, Col: -1}, None},
	}
	for _, tt := range tests {
		if got := km.Lookup(tt.pos); got != tt.want {
			t.Fatalf("Lookup(%v)=%v, want %v", tt.pos, got, tt.want)
		}
	}
	if got := km.LookupEncoder(encoder.Press); got != Mute {
		t.Fatalf("LookupEncoder(Press)=%v, want %v", got, Mute)
	}
}

func TestActionNames(t *testing.T) {
	for a := None; a <= BrightnessUp; a++ {
		got, err := ParseAction(a.String())
		if err != nil {
			t.Fatalf("ParseAction(%q): %v", a.String(), err)
		}
		if got != a {
			t.Fatalf("ParseAction(%q)=%v, want %v", a.String(), got, a)
		}
	}
	if _, err := ParseAction("louder"); err == nil {
		t.Fatal("ParseAction(louder) succeeded")
	}
	if got := VolumeUp.Usage(); got != 0xE9 {
		t.Fatalf("VolumeUp.Usage()=0x%X, want 0xE9", got)
	}
	if got := Action(200).Usage(); got != 0 {
		t.Fatalf("Action(200).Usage()=0x%X, want 0", got)
	}
}

func TestHandleKeyPressRelease(t *testing.T) {
	h := &recordHID{}
	d := NewDispatcher(Default(), h)
	now := time.Unix(0, 0)
	play := matrix.Position{Row: 0, Col: 0}
	next := matrix.Position{Row: 0, Col: 1}

	steps := []matrix.KeyEvent{
		{Pos: play, Edge: matrix.Pressed, Time: now},
		{Pos: play, Edge: matrix.Released, Time: now},
		{Pos: play, Edge: matrix.Pressed, Time: now},
		{Pos: next, Edge: matrix.Pressed, Time: now},
		// play is no longer the active usage, so its release is not sent.
		{Pos: play, Edge: matrix.Released, Time: now},
		{Pos: next, Edge: matrix.Released, Time: now},
	}
	for _, ev := range steps {
		if err := d.HandleKey(ev); err != nil {
			t.Fatalf("HandleKey(%+v): %v", ev, err)
		}
	}

	want := []uint16{0xCD, 0, 0xCD, 0xB5, 0}
	if !equalUsages(h.sent, want) {
		t.Fatalf("sent=%X, want %X", h.sent, want)
	}
	if d.Active() != 0 {
		t.Fatalf("Active()=0x%X, want 0", d.Active())
	}
}

func TestHandleEncoderTaps(t *testing.T) {
	h := &recordHID{}
	d := NewDispatcher(Default(), h)
	now := time.Unix(0, 0)

	for _, k := range []encoder.Kind{encoder.Increment, encoder.Decrement, encoder.Press} {
		if err := d.HandleEncoder(encoder.Event{Kind: k, Time: now}); err != nil {
			t.Fatalf("HandleEncoder(%v): %v", k, err)
		}
	}
	want := []uint16{0xE9, 0, 0xEA, 0, 0xE2, 0}
	if !equalUsages(h.sent, want) {
		t.Fatalf("sent=%X, want %X", h.sent, want)
	}
}

func TestUnboundKeyIgnored(t *testing.T) {
	h := &recordHID{}
	km := Default()
	km.Layer[0][0] = None
	d := NewDispatcher(km, h)

	if err := d.HandleKey(matrix.KeyEvent{Pos: matrix.Position{Row: 0, Col: 0}, Edge: matrix.Pressed}); err != nil {
		t.Fatalf("HandleKey: %v", err)
	}
	if err := d.HandleKey(matrix.KeyEvent{Pos: matrix.Position{Row: 5, Col: 5}, Edge: matrix.Pressed}); err != nil {
		t.Fatalf("HandleKey: %v", err)
	}
	if len(h.sent) != 0 {
		t.Fatalf("sent=%X, want none", h.sent)
	}
}

func TestSendErrorReturned(t *testing.T) {
	boom := errors.New("endpoint busy")
	d := NewDispatcher(Default(), &recordHID{err: boom})

	err := d.HandleEncoder(encoder.Event{Kind: encoder.Press})
	if !errors.Is(err, boom) {
		t.Fatalf("err=%v, want %v", err, boom)
	}
	if d.Active() != 0 {
		t.Fatalf("Active()=0x%X after failed send, want 0", d.Active())
	}

	if err := NewDispatcher(Default(), nil).HandleKey(matrix.KeyEvent{Edge: matrix.Pressed}); err == nil {
		t.Fatal("HandleKey without HID succeeded")
	}
}
