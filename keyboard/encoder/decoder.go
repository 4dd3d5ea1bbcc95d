// Package encoder decodes a quadrature rotary encoder with a push button.
package encoder

import (
	"errors"
	"fmt"
	"time"

	"macromedia/hal"
)

// DefaultDebounce is the button poll count.
const DefaultDebounce = 5

// rest is the detent phase with both pull-ups high.
const rest = 0b11

// stepThreshold is the tick count a movement needs before it is reported.
const stepThreshold = 2

// Kind is a logical encoder event.
type Kind uint8

const (
	Increment Kind = iota
	Decrement
	Press
)

func (k Kind) String() string {
	switch k {
	case Increment:
		return "increment"
	case Decrement:
		return "decrement"
	case Press:
		return "press"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

type Event struct {
	Kind Kind
	Time time.Time
}

// State is the rotation tracking state.
type State uint8

const (
	Idle State = iota
	HalfStep
	FullStep
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case HalfStep:
		return "half-step"
	case FullStep:
		return "full-step"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Config names the encoder pins.
type Config struct {
	A      hal.GPIOPin
	B      hal.GPIOPin
	Button hal.GPIOPin
	// Invert swaps Increment and Decrement.
	Invert bool
	// Debounce is the button poll count; 0 selects DefaultDebounce.
	Debounce int
}

// Decoder tracks phase transitions between polls.
type Decoder struct {
	a, b, button hal.GPIOPin
	invert       bool
	debounce     int

	phase uint8
	ticks int

	btnStable bool // true while released (pulled high)
	btnCount  int

	events []Event
}

// New configures the pins and samples the current phase.
func New(cfg Config) (*Decoder, error) {
	if cfg.A == nil || cfg.B == nil {
		return nil, errors.New("encoder: phase pin missing")
	}
	n := cfg.Debounce
	if n == 0 {
		n = DefaultDebounce
	}
	if n < 1 {
		return nil, fmt.Errorf("encoder: debounce %d out of range", cfg.Debounce)
	}

	d := &Decoder{
		a:         cfg.A,
		b:         cfg.B,
		button:    cfg.Button,
		invert:    cfg.Invert,
		debounce:  n,
		btnStable: true,
	}
	for _, p := range []hal.GPIOPin{d.a, d.b, d.button} {
		if p == nil {
			continue
		}
		if err := p.Configure(hal.GPIOModeInput, hal.GPIOPullUp); err != nil {
			return nil, fmt.Errorf("encoder: %w", err)
		}
	}
	d.phase = d.readPhase()
	return d, nil
}

// State reports the rotation state derived from the last poll.
func (d *Decoder) State() State {
	switch {
	case d.phase == rest:
		return Idle
	case abs(d.ticks) >= stepThreshold:
		return FullStep
	default:
		return HalfStep
	}
}

// Poll samples the pins once. The returned slice is reused by the next call.
func (d *Decoder) Poll(now time.Time) []Event {
	d.events = d.events[:0]
	d.pollRotation(now)
	d.pollButton(now)
	return d.events
}

func (d *Decoder) pollRotation(now time.Time) {
	cur := d.readPhase()
	if cur == d.phase {
		return
	}
	prev := d.phase
	d.phase = cur

	switch {
	case next(prev) == cur:
		d.ticks++
	case next(cur) == prev:
		d.ticks--
	default:
		// Both phases flipped between polls; direction is unknown.
		if cur == rest {
			d.ticks = 0
		}
		return
	}

	if cur != rest {
		return
	}
	ticks := d.ticks
	d.ticks = 0
	if abs(ticks) < stepThreshold {
		return
	}
	kind := Increment
	if (ticks < 0) != d.invert {
		kind = Decrement
	}
	d.events = append(d.events, Event{Kind: kind, Time: now})
}

func (d *Decoder) pollButton(now time.Time) {
	if d.button == nil {
		return
	}
	level, err := d.button.Read()
	if err != nil {
		level = true
	}
	if level == d.btnStable {
		d.btnCount = 0
		return
	}
	d.btnCount++
	if d.btnCount < d.debounce {
		return
	}
	d.btnCount = 0
	d.btnStable = level
	if !level {
		d.events = append(d.events, Event{Kind: Press, Time: now})
	}
}

func (d *Decoder) readPhase() uint8 {
	var code uint8
	if level, err := d.a.Read(); err != nil || level {
		code |= 0b10
	}
	if level, err := d.b.Read(); err != nil || level {
		code |= 0b01
	}
	return code
}

// next returns the phase that follows code in the forward direction.
func next(code uint8) uint8 {
	switch code {
	case 0b11:
		return 0b01
	case 0b01:
		return 0b00
	case 0b00:
		return 0b10
	default:
		return 0b11
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
