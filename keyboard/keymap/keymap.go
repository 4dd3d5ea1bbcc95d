package keymap

import (
	"errors"
	"fmt"

	"macromedia/hal"
	"macromedia/keyboard/encoder"
	"macromedia/keyboard/matrix"
)

// EncoderMap binds the three encoder events.
type EncoderMap struct {
	Increment Action
	Decrement Action
	Press     Action
}

// Keymap is a single static layer indexed [row][col].
type Keymap struct {
	Layer   [][]Action
	Encoder EncoderMap
}

// Default returns the stock layout. The encoder press and key (1,2) both mute.
func Default() Keymap {
	return Keymap{
		Layer: [][]Action{
			{PlayPause, NextTrack, PrevTrack, Stop},
			{VolumeUp, VolumeDown, Mute, BrightnessUp},
		},
		Encoder: EncoderMap{
			Increment: VolumeUp,
			Decrement: VolumeDown,
			Press:     Mute,
		},
	}
}

// Validate checks the layer against a rows x cols matrix.
func (k Keymap) Validate(rows, cols int) error {
	if len(k.Layer) != rows {
		return fmt.Errorf("keymap: %d rows, matrix has %d", len(k.Layer), rows)
	}
	for r, row := range k.Layer {
		if len(row) != cols {
			return fmt.Errorf("keymap: row %d has %d keys, matrix has %d columns", r, len(row), cols)
		}
		for c, a := range row {
			if int(a) >= len(names) {
				return fmt.Errorf("keymap: key (%d,%d): invalid action %d", r, c, uint8(a))
			}
		}
	}
	for _, a := range []Action{k.Encoder.Increment, k.Encoder.Decrement, k.Encoder.Press} {
		if int(a) >= len(names) {
			return fmt.Errorf("keymap: encoder: invalid action %d", uint8(a))
		}
	}
	return nil
}

// Lookup returns the action at pos, or None when pos is outside the layer.
func (k Keymap) Lookup(pos matrix.Position) Action {
	if pos.Row < 0 || pos.Row >= len(k.Layer) {
		return None
	}
	row := k.Layer[pos.Row]
	if pos.Col < 0 || pos.Col >= len(row) {
		return None
	}
	return row[pos.Col]
}

// LookupEncoder returns the action bound to kind.
func (k Keymap) LookupEncoder(kind encoder.Kind) Action {
	switch kind {
	case encoder.Increment:
		return k.Encoder.Increment
	case encoder.Decrement:
		return k.Encoder.Decrement
	case encoder.Press:
		return k.Encoder.Press
	default:
		return None
	}
}

var errNoHID = errors.New("keymap: no HID")

// Dispatcher sends the usage for each event. A key holds its usage until it
// is released; encoder events are sent as a press immediately followed by a
// release.
type Dispatcher struct {
	km     Keymap
	hid    hal.HID
	active uint16
}

func NewDispatcher(km Keymap, hid hal.HID) *Dispatcher {
	return &Dispatcher{km: km, hid: hid}
}

// Active returns the usage currently reported to the host, 0 if none.
func (d *Dispatcher) Active() uint16 { return d.active }

// HandleKey forwards a debounced key event. Unbound keys are ignored.
func (d *Dispatcher) HandleKey(ev matrix.KeyEvent) error {
	usage := d.km.Lookup(ev.Pos).Usage()
	if usage == 0 {
		return nil
	}
	if ev.Edge == matrix.Pressed {
		return d.send(usage)
	}
	if d.active != usage {
		return nil
	}
	return d.send(0)
}

// HandleEncoder taps the action bound to ev.
func (d *Dispatcher) HandleEncoder(ev encoder.Event) error {
	usage := d.km.LookupEncoder(ev.Kind).Usage()
	if usage == 0 {
		return nil
	}
	if err := d.send(usage); err != nil {
		return err
	}
	return d.send(0)
}

func (d *Dispatcher) send(usage uint16) error {
	if d.hid == nil {
		return errNoHID
	}
	if err := d.hid.SendConsumer(usage); err != nil {
		return fmt.Errorf("keymap: send 0x%04X: %w", usage, err)
	}
	d.active = usage
	return nil
}
