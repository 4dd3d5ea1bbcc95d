//go:build tinygo && rp2040

package hal

import (
	"machine"
	"time"
)

// xiaoPins maps Seeed XIAO RP2040 silkscreen names to RP2040 GPIOs.
var xiaoPins = []struct {
	name string
	pin  machine.Pin
}{
	{"A0", machine.GPIO26},
	{"A1", machine.GPIO27},
	{"A2", machine.GPIO28},
	{"A3", machine.GPIO29},
	{"SDA", machine.GPIO6},
	{"SCL", machine.GPIO7},
	{"TX", machine.GPIO0},
	{"RX", machine.GPIO1},
	{"D8", machine.GPIO2},
	{"D9", machine.GPIO4},
	{"D10", machine.GPIO3},
}

type tinyGoHAL struct {
	logger *serialLogger
	gpio   GPIO
	panel  Panel
	hid    *usbHID
	clock  tinyGoClock
}

// New returns an RP2040 (XIAO pinout) HAL implementation.
//
// Logs go to USB CDC: the UART pins are matrix rows on this board.
func New(l Layout) HAL {
	pins := make([]GPIOPin, 0, len(xiaoPins))
	for _, p := range xiaoPins {
		pins = append(pins, &machinePin{name: p.name, pin: p.pin})
	}

	addr := l.PanelAddress
	if addr == 0 {
		addr = 0x3C
	}
	return &tinyGoHAL{
		logger: &serialLogger{},
		gpio:   newVirtualGPIO(pins),
		panel:  newSSD1306Panel(machine.I2C1, machine.GPIO7, machine.GPIO6, addr, l.PanelWidth, l.PanelHeight),
		hid:    newUSBHID(),
	}
}

func (h *tinyGoHAL) Logger() Logger { return h.logger }
func (h *tinyGoHAL) GPIO() GPIO     { return h.gpio }
func (h *tinyGoHAL) Panel() Panel   { return h.panel }
func (h *tinyGoHAL) HID() HID       { return h.hid }
func (h *tinyGoHAL) Clock() Clock   { return h.clock }

type tinyGoClock struct{}

func (tinyGoClock) Now() time.Time { return time.Now() }

type machinePin struct {
	name string
	pin  machine.Pin
	mode GPIOMode
}

func (p *machinePin) Name() string   { return p.name }
func (p *machinePin) Caps() GPIOCaps { return gpioCapsAll }

func (p *machinePin) Configure(mode GPIOMode, pull GPIOPull) error {
	if err := checkConfig(p.name, p.Caps(), mode, pull); err != nil {
		return err
	}
	cfg := machine.PinConfig{Mode: machine.PinInput}
	switch {
	case mode == GPIOModeOutput:
		cfg.Mode = machine.PinOutput
	case pull == GPIOPullUp:
		cfg.Mode = machine.PinInputPullup
	case pull == GPIOPullDown:
		cfg.Mode = machine.PinInputPulldown
	}
	p.pin.Configure(cfg)
	p.mode = mode
	return nil
}

func (p *machinePin) Read() (bool, error) {
	return p.pin.Get(), nil
}

func (p *machinePin) Write(level bool) error {
	if p.mode != GPIOModeOutput {
		return ErrNotImplemented
	}
	p.pin.Set(level)
	return nil
}

type serialLogger struct{}

func (l *serialLogger) WriteLineString(s string) {
	machine.Serial.Write([]byte(s))
	machine.Serial.Write([]byte("\r\n"))
}

func (l *serialLogger) WriteLineBytes(b []byte) {
	machine.Serial.Write(b)
	machine.Serial.Write([]byte("\r\n"))
}
