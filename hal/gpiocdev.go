//go:build linux && !tinygo

package hal

import (
	"fmt"
	"sync"

	"github.com/warthog618/go-gpiocdev"
)

const cdevConsumer = "macromedia"

// cdevPin is a GPIO character device line, requested on first Configure.
type cdevPin struct {
	mu     sync.Mutex
	name   string
	chip   string
	offset int
	mode   GPIOMode
	line   *gpiocdev.Line
}

func newCdevPin(name, chip string, offset int) *cdevPin {
	return &cdevPin{name: name, chip: chip, offset: offset}
}

func (p *cdevPin) Name() string   { return p.name }
func (p *cdevPin) Caps() GPIOCaps { return gpioCapsAll }

func (p *cdevPin) Configure(mode GPIOMode, pull GPIOPull) error {
	if err := checkConfig(p.name, p.Caps(), mode, pull); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	bias := gpiocdev.WithBiasDisabled
	switch pull {
	case GPIOPullUp:
		bias = gpiocdev.WithPullUp
	case GPIOPullDown:
		bias = gpiocdev.WithPullDown
	}

	var err error
	if p.line == nil {
		var l *gpiocdev.Line
		if mode == GPIOModeOutput {
			l, err = gpiocdev.RequestLine(p.chip, p.offset, gpiocdev.WithConsumer(cdevConsumer), gpiocdev.AsOutput(0), bias)
		} else {
			l, err = gpiocdev.RequestLine(p.chip, p.offset, gpiocdev.WithConsumer(cdevConsumer), gpiocdev.AsInput, bias)
		}
		p.line = l
	} else if mode == GPIOModeOutput {
		err = p.line.Reconfigure(gpiocdev.AsOutput(0), bias)
	} else {
		err = p.line.Reconfigure(gpiocdev.AsInput, bias)
	}
	if err != nil {
		return fmt.Errorf("gpio: pin %s (%s:%d): %w", p.name, p.chip, p.offset, err)
	}
	p.mode = mode
	return nil
}

func (p *cdevPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.line == nil {
		return false, fmt.Errorf("gpio: pin %s: not configured", p.name)
	}
	v, err := p.line.Value()
	if err != nil {
		return false, fmt.Errorf("gpio: pin %s: %w", p.name, err)
	}
	return v != 0, nil
}

func (p *cdevPin) Write(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.line == nil || p.mode != GPIOModeOutput {
		return fmt.Errorf("gpio: pin %s: not in output mode", p.name)
	}
	v := 0
	if level {
		v = 1
	}
	return p.line.SetValue(v)
}

func (p *cdevPin) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.line == nil {
		return nil
	}
	err := p.line.Close()
	p.line = nil
	return err
}
