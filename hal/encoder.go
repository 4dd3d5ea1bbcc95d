package hal

import "sync"

// quadrature lists the A<<1|B phase codes of one forward detent, starting at rest.
var quadrature = [4]uint8{0b11, 0b01, 0b00, 0b10}

// VirtualEncoder simulates a rotary encoder with pull-ups and a push button.
//
// Rotate queues phase transitions; each Advance applies one of them, so a decoder
// polling between Advance calls sees every edge.
type VirtualEncoder struct {
	mu      sync.Mutex
	a       *virtualPin
	b       *virtualPin
	button  *virtualPin
	phase   int
	pending int
}

// NewVirtualEncoder creates the three encoder pins, idling at the rest phase.
func NewVirtualEncoder(a, b, button string) *VirtualEncoder {
	caps := GPIOCapInput | GPIOCapPullUp
	e := &VirtualEncoder{
		a:      newVirtualPin(a, caps),
		b:      newVirtualPin(b, caps),
		button: newVirtualPin(button, caps),
	}
	e.a.set(true)
	e.b.set(true)
	e.button.set(true)
	return e
}

func (e *VirtualEncoder) Pins() []GPIOPin {
	return []GPIOPin{e.a, e.b, e.button}
}

// Rotate queues detents clicks; positive is clockwise.
func (e *VirtualEncoder) Rotate(detents int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending += detents * len(quadrature)
}

// SetButton presses or releases the push button (active low).
func (e *VirtualEncoder) SetButton(pressed bool) {
	e.button.set(!pressed)
}

// Advance applies one queued transition and reports whether one was pending.
func (e *VirtualEncoder) Advance() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case e.pending > 0:
		e.phase = (e.phase + 1) % len(quadrature)
		e.pending--
	case e.pending < 0:
		e.phase = (e.phase + len(quadrature) - 1) % len(quadrature)
		e.pending++
	default:
		return false
	}
	code := quadrature[e.phase]
	e.a.set(code&0b10 != 0)
	e.b.set(code&0b01 != 0)
	return true
}
