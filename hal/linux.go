//go:build linux && !tinygo

package hal

import (
	"errors"
	"fmt"
	"os"
)

type linuxHAL struct {
	logger *hostLogger
	pins   []*cdevPin
	gpio   GPIO
	hid    HID
	hidg   *os.File
	clock  hostClock
}

// NewLinux returns a HAL for a Linux board: matrix and encoder pins on a GPIO
// character device, consumer reports on a USB gadget HID endpoint.
//
// There is no OLED driver for this board; its panel never initializes.
func NewLinux(l Layout, cfg LinuxConfig) (HAL, error) {
	if cfg.Chip == "" {
		cfg.Chip = "gpiochip0"
	}
	logger := &hostLogger{w: os.Stdout}

	var names []string
	names = append(names, l.Columns...)
	names = append(names, l.Rows...)
	names = append(names, l.EncoderA, l.EncoderB, l.EncoderButton)

	h := &linuxHAL{logger: logger}
	var gpins []GPIOPin
	for _, name := range names {
		if name == "" {
			continue
		}
		off, ok := cfg.Lines[name]
		if !ok {
			return nil, fmt.Errorf("linux: no line offset for pin %q", name)
		}
		p := newCdevPin(name, cfg.Chip, off)
		h.pins = append(h.pins, p)
		gpins = append(gpins, p)
	}
	h.gpio = newVirtualGPIO(gpins)

	h.hid = &logHID{logger: logger}
	if cfg.HIDDevice != "" {
		f, err := os.OpenFile(cfg.HIDDevice, os.O_WRONLY, 0)
		if err != nil {
			Logf(logger, "hid: %s unavailable (%v), logging reports instead", cfg.HIDDevice, err)
		} else {
			h.hidg = f
			h.hid = NewWriterHID(f)
		}
	}
	return h, nil
}

func (h *linuxHAL) Logger() Logger { return h.logger }
func (h *linuxHAL) GPIO() GPIO     { return h.gpio }
func (h *linuxHAL) Panel() Panel   { return nullPanel{} }
func (h *linuxHAL) HID() HID       { return h.hid }
func (h *linuxHAL) Clock() Clock   { return h.clock }

// Close releases the requested lines and the HID endpoint.
func (h *linuxHAL) Close() error {
	var errs []error
	for _, p := range h.pins {
		errs = append(errs, p.Close())
	}
	if h.hidg != nil {
		errs = append(errs, h.hidg.Close())
	}
	return errors.Join(errs...)
}
