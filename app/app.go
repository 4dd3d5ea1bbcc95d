package app

import (
	"fmt"
	"time"

	"macromedia/config"
	"macromedia/hal"
	"macromedia/internal/buildinfo"
	"macromedia/keyboard/encoder"
	"macromedia/keyboard/keymap"
	"macromedia/keyboard/matrix"
	"macromedia/keyboard/oled"
)

// TickHook is called at the start of every driver loop iteration.
type TickHook interface {
	OnTick(now time.Time)
}

// Keyboard owns one instance of every input and output component.
type Keyboard struct {
	log     hal.Logger
	clock   hal.Clock
	hooks   []TickHook
	scanner *matrix.Scanner
	dec     *encoder.Decoder
	disp    *keymap.Dispatcher
	screen  *oled.Screen
}

// New wires the components described by cfg onto h and draws the boot screen.
func New(h hal.HAL, cfg config.Config) (*Keyboard, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := h.Logger()
	clock := h.Clock()
	if clock == nil {
		return nil, fmt.Errorf("app: %w: clock", hal.ErrNotImplemented)
	}
	layout := cfg.Layout()

	cols, err := hal.LookupPins(h.GPIO(), layout.Columns)
	if err != nil {
		return nil, fmt.Errorf("app: columns: %w", err)
	}
	rows, err := hal.LookupPins(h.GPIO(), layout.Rows)
	if err != nil {
		return nil, fmt.Errorf("app: rows: %w", err)
	}
	scanner, err := matrix.New(matrix.Config{
		Columns:     cols,
		Rows:        rows,
		Orientation: layout.Orientation,
		Debounce:    cfg.Matrix.Debounce,
		Settle:      cfg.Matrix.Settle,
	})
	if err != nil {
		return nil, err
	}

	phases, err := hal.LookupPins(h.GPIO(), []string{layout.EncoderA, layout.EncoderB})
	if err != nil {
		return nil, fmt.Errorf("app: encoder: %w", err)
	}
	var button hal.GPIOPin
	if layout.EncoderButton != "" {
		if button = hal.LookupPin(h.GPIO(), layout.EncoderButton); button == nil {
			return nil, fmt.Errorf("app: encoder: gpio: unknown pin %q", layout.EncoderButton)
		}
	}
	dec, err := encoder.New(encoder.Config{
		A:        phases[0],
		B:        phases[1],
		Button:   button,
		Invert:   cfg.Encoder.Invert,
		Debounce: cfg.Encoder.Debounce,
	})
	if err != nil {
		return nil, err
	}

	hal.Logf(log, "macromedia %s: %dx%d matrix (%s), encoder %s/%s",
		buildinfo.Short(), len(rows), len(cols), layout.Orientation, layout.EncoderA, layout.EncoderB)

	k := &Keyboard{
		log:     log,
		clock:   clock,
		scanner: scanner,
		dec:     dec,
		disp:    keymap.NewDispatcher(cfg.KeymapTable(), h.HID()),
	}
	k.screen = oled.New(h.Panel(), clock.Now(),
		oled.WithBootHold(cfg.Display.BootHold),
		oled.WithLogger(log),
	)
	k.AddHook(k.screen)
	return k, nil
}

// AddHook registers hook to run on every Step, after the hooks already added.
func (k *Keyboard) AddHook(hook TickHook) {
	if hook != nil {
		k.hooks = append(k.hooks, hook)
	}
}

func (k *Keyboard) Screen() *oled.Screen { return k.screen }

// Step runs one driver loop iteration: tick hooks, matrix scan, encoder poll.
// HID failures are logged and dropped.
func (k *Keyboard) Step() error {
	now := k.clock.Now()
	for _, hook := range k.hooks {
		hook.OnTick(now)
	}

	for _, ev := range k.scanner.Scan(now) {
		hal.Logf(k.log, "key %v %v", ev.Pos, ev.Edge)
		if err := k.disp.HandleKey(ev); err != nil {
			hal.Logf(k.log, "app: %v", err)
		}
	}
	for _, ev := range k.dec.Poll(now) {
		hal.Logf(k.log, "encoder %v", ev.Kind)
		if err := k.disp.HandleEncoder(ev); err != nil {
			hal.Logf(k.log, "app: %v", err)
		}
	}
	return nil
}

// NewStep adapts New to the host runners.
func NewStep(h hal.HAL, cfg config.Config) (func() error, error) {
	k, err := New(h, cfg)
	if err != nil {
		return nil, err
	}
	return k.Step, nil
}

// Run drives the keyboard every cfg.Tick and never returns (TinyGo entrypoint).
func Run(h hal.HAL, cfg config.Config) {
	defer recoverHalt(h.Logger())

	k, err := New(h, cfg)
	if err != nil {
		halt(h.Logger(), faultLines(err, nil))
	}

	next := k.clock.Now()
	for {
		_ = k.Step()
		next = next.Add(cfg.Tick)
		now := k.clock.Now()
		if d := next.Sub(now); d > 0 {
			time.Sleep(d)
		} else {
			next = now
		}
	}
}
