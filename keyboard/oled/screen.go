// Package oled drives the status display: a boot splash that turns into a ready
// screen after a fixed hold time.
package oled

import (
	"fmt"
	"time"

	"tinygo.org/x/tinyfont"

	"macromedia/hal"
)

// DefaultBootHold is how long the boot splash stays up.
const DefaultBootHold = 3 * time.Second

const (
	bootText = "MacroMedia"
	bootX    = 20

	readyText = "Ready"
	readyX    = 45

	textTop = 12
)

type State uint8

const (
	Boot State = iota
	Ready
	Unavailable
)

func (s State) String() string {
	switch s {
	case Boot:
		return "boot"
	case Ready:
		return "ready"
	case Unavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

type Option func(*Screen)

// WithBootHold overrides DefaultBootHold.
func WithBootHold(d time.Duration) Option {
	return func(s *Screen) {
		if d >= 0 {
			s.hold = d
		}
	}
}

func WithLogger(l hal.Logger) Option {
	return func(s *Screen) { s.log = l }
}

// Screen is the display state machine. It is not safe for concurrent use.
type Screen struct {
	panel hal.Panel
	cv    *canvas
	log   hal.Logger
	hold  time.Duration

	state  State
	boot   time.Time
	shown  bool // Ready transition has fired
	frames int
}

// New initializes panel and draws the boot splash. A nil panel or a failed
// Init leaves the screen Unavailable for good.
func New(panel hal.Panel, now time.Time, opts ...Option) *Screen {
	s := &Screen{panel: panel, hold: DefaultBootHold, boot: now}
	for _, opt := range opts {
		opt(s)
	}

	if panel == nil {
		s.state = Unavailable
		hal.Logf(s.log, "oled: no panel, display disabled")
		return s
	}
	if err := panel.Init(); err != nil {
		s.state = Unavailable
		hal.Logf(s.log, "oled: init: %v, display disabled", err)
		return s
	}

	s.cv = newCanvas(panel)
	s.state = Boot
	panel.Clear()
	if err := panel.Flush(); err != nil {
		hal.Logf(s.log, "oled: clear: %v", err)
	}
	if err := s.ShowBoot(); err != nil {
		hal.Logf(s.log, "oled: boot screen: %v", err)
	}
	return s
}

func (s *Screen) State() State { return s.state }

// Frames counts successful renders.
func (s *Screen) Frames() int { return s.frames }

// OnTick moves from Boot to Ready once the hold time has elapsed.
func (s *Screen) OnTick(now time.Time) {
	if s.state != Boot || s.shown {
		return
	}
	if now.Sub(s.boot) < s.hold {
		return
	}
	s.shown = true
	s.state = Ready
	if err := s.ShowReady(); err != nil {
		hal.Logf(s.log, "oled: ready screen: %v", err)
	}
}

// ShowBoot renders the boot splash. It does nothing while Unavailable.
func (s *Screen) ShowBoot() error { return s.render(bootText, bootX) }

// ShowReady renders the ready screen. It does nothing while Unavailable.
func (s *Screen) ShowReady() error { return s.render(readyText, readyX) }

func (s *Screen) render(text string, x int16) error {
	if s.state == Unavailable {
		return nil
	}
	s.panel.Clear()
	drawText(s.cv, x, textTop, text)
	if err := s.cv.Display(); err != nil {
		return err
	}
	s.frames++
	return nil
}

// drawText places one glyph cell per rune starting at (x, top). Cells that
// would start in the last column of characters are skipped.
func drawText(cv *canvas, x, top int16, text string) {
	limit := cv.w - pitch
	for _, r := range text {
		if x >= limit {
			break
		}
		tinyfont.DrawChar(cv, StrokeFont, x, top+baseline, r, colorOn)
		x += pitch
	}
}
