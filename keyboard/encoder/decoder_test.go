package encoder

import (
	"errors"
	"testing"
	"time"

	"macromedia/hal"
)

type fakePin struct {
	name  string
	level bool
	err   error
	mode  hal.GPIOMode
	pull  hal.GPIOPull
}

func newFakePin(name string) *fakePin { return &fakePin{name: name, level: true} }

func (p *fakePin) Name() string      { return p.name }
func (p *fakePin) Caps() hal.GPIOCaps { return hal.GPIOCapInput | hal.GPIOCapPullUp }
func (p *fakePin) Configure(mode hal.GPIOMode, pull hal.GPIOPull) error {
	p.mode, p.pull = mode, pull
	return nil
}
func (p *fakePin) Read() (bool, error) { return p.level, p.err }
func (p *fakePin) Write(bool) error    { return hal.ErrNotImplemented }

type rig struct {
	a, b, btn *fakePin
	d         *Decoder
	now       time.Time
}

func newRig(t *testing.T, invert bool) *rig {
	t.Helper()
	r := &rig{a: newFakePin("A"), b: newFakePin("B"), btn: newFakePin("SW"), now: time.Unix(100, 0)}
	d, err := New(Config{A: r.a, B: r.b, Button: r.btn, Invert: invert, Debounce: 3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.d = d
	return r
}

// step sets the phase code (A<<1|B) and polls once.
func (r *rig) step(code uint8) []Event {
	r.a.level = code&0b10 != 0
	r.b.level = code&0b01 != 0
	r.now = r.now.Add(time.Millisecond)
	return append([]Event(nil), r.d.Poll(r.now)...)
}

func (r *rig) walk(codes ...uint8) []Event {
	var all []Event
	for _, c := range codes {
		all = append(all, r.step(c)...)
	}
	return all
}

func TestNewConfiguresPullUps(t *testing.T) {
	r := newRig(t, false)
	for _, p := range []*fakePin{r.a, r.b, r.btn} {
		if p.mode != hal.GPIOModeInput || p.pull != hal.GPIOPullUp {
			t.Fatalf("%s mode=%v pull=%v, want input pull-up", p.name, p.mode, p.pull)
		}
	}
	if r.d.State() != Idle {
		t.Fatalf("state=%v, want %v", r.d.State(), Idle)
	}

	if _, err := New(Config{A: newFakePin("A")}); err == nil {
		t.Fatal("New without phase B succeeded")
	}
}

func TestForwardDetentIncrements(t *testing.T) {
	r := newRig(t, false)

	if ev := r.step(0b01); len(ev) != 0 {
		t.Fatalf("events=%v, want none", ev)
	}
	if r.d.State() != HalfStep {
		t.Fatalf("state=%v, want %v", r.d.State(), HalfStep)
	}
	r.step(0b00)
	if r.d.State() != FullStep {
		t.Fatalf("state=%v, want %v", r.d.State(), FullStep)
	}
	r.step(0b10)
	ev := r.step(0b11)
	if len(ev) != 1 || ev[0].Kind != Increment {
		t.Fatalf("events=%v, want one Increment", ev)
	}
	if !ev[0].Time.Equal(r.now) {
		t.Fatalf("time=%v, want %v", ev[0].Time, r.now)
	}
	if r.d.State() != Idle {
		t.Fatalf("state=%v, want %v", r.d.State(), Idle)
	}
}

func TestReverseDetentDecrements(t *testing.T) {
	r := newRig(t, false)
	ev := r.walk(0b10, 0b00, 0b01, 0b11)
	if len(ev) != 1 || ev[0].Kind != Decrement {
		t.Fatalf("events=%v, want one Decrement", ev)
	}
}

func TestInvertSwapsDirection(t *testing.T) {
	r := newRig(t, true)
	ev := r.walk(0b01, 0b00, 0b10, 0b11)
	if len(ev) != 1 || ev[0].Kind != Decrement {
		t.Fatalf("events=%v, want one Decrement", ev)
	}
	ev = r.walk(0b10, 0b00, 0b01, 0b11)
	if len(ev) != 1 || ev[0].Kind != Increment {
		t.Fatalf("events=%v, want one Increment", ev)
	}
}

func TestWiggleEmitsNothing(t *testing.T) {
	r := newRig(t, false)
	if ev := r.walk(0b01, 0b11, 0b10, 0b11, 0b01, 0b11); len(ev) != 0 {
		t.Fatalf("events=%v, want none", ev)
	}
	// Two steps in then two back out nets zero ticks.
	if ev := r.walk(0b01, 0b00, 0b01, 0b11); len(ev) != 0 {
		t.Fatalf("events=%v, want none", ev)
	}
}

func TestHalfDetentReturnStillCounts(t *testing.T) {
	r := newRig(t, false)
	// Two forward ticks reach the threshold; the third tick back to rest is the reverse path.
	ev := r.walk(0b01, 0b00, 0b10, 0b00, 0b10, 0b11)
	if len(ev) != 1 || ev[0].Kind != Increment {
		t.Fatalf("events=%v, want one Increment", ev)
	}
}

func TestBothPhasesChangingIsIgnored(t *testing.T) {
	r := newRig(t, false)
	if ev := r.step(0b00); len(ev) != 0 {
		t.Fatalf("events=%v, want none", ev)
	}
	if ev := r.step(0b11); len(ev) != 0 {
		t.Fatalf("events=%v, want none", ev)
	}
	// Decoding resumes from the new phase.
	ev := r.walk(0b01, 0b00, 0b10, 0b11)
	if len(ev) != 1 || ev[0].Kind != Increment {
		t.Fatalf("events=%v, want one Increment", ev)
	}
}

func TestSeveralDetents(t *testing.T) {
	r := newRig(t, false)
	var n int
	for i := 0; i < 3; i++ {
		for _, e := range r.walk(0b01, 0b00, 0b10, 0b11) {
			if e.Kind != Increment {
				t.Fatalf("kind=%v, want %v", e.Kind, Increment)
			}
			n++
		}
	}
	if n != 3 {
		t.Fatalf("increments=%d, want 3", n)
	}
}

func TestButtonPressIsDebounced(t *testing.T) {
	r := newRig(t, false)

	r.btn.level = false
	if ev := r.walk(0b11, 0b11); len(ev) != 0 {
		t.Fatalf("events=%v, want none before debounce", ev)
	}
	ev := r.step(0b11)
	if len(ev) != 1 || ev[0].Kind != Press {
		t.Fatalf("events=%v, want one Press", ev)
	}

	// Held: nothing more. Release: no event.
	if ev := r.walk(0b11, 0b11, 0b11); len(ev) != 0 {
		t.Fatalf("events=%v while held, want none", ev)
	}
	r.btn.level = true
	if ev := r.walk(0b11, 0b11, 0b11, 0b11); len(ev) != 0 {
		t.Fatalf("events=%v on release, want none", ev)
	}
}

func TestButtonBounceIsSuppressed(t *testing.T) {
	r := newRig(t, false)
	for i := 0; i < 12; i++ {
		r.btn.level = i%2 == 1
		if ev := r.step(0b11); len(ev) != 0 {
			t.Fatalf("poll %d: events=%v, want none", i, ev)
		}
	}
}

func TestReadErrorReadsHigh(t *testing.T) {
	r := newRig(t, false)
	r.btn.level = false
	r.btn.err = errors.New("bus fault")
	if ev := r.walk(0b11, 0b11, 0b11, 0b11); len(ev) != 0 {
		t.Fatalf("events=%v, want none", ev)
	}
}
