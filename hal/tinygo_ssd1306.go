//go:build tinygo && rp2040

package hal

import (
	"errors"
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ssd1306"
)

var (
	white = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	black = color.RGBA{A: 0xFF}
)

// ssd1306Panel drives an SSD1306 OLED over I2C.
type ssd1306Panel struct {
	bus    *machine.I2C
	scl    machine.Pin
	sda    machine.Pin
	addr   uint16
	width  int16
	height int16
	dev    *ssd1306.Device
}

func newSSD1306Panel(bus *machine.I2C, scl, sda machine.Pin, addr uint16, width, height int16) *ssd1306Panel {
	if width <= 0 || height <= 0 {
		width, height = 128, 32
	}
	return &ssd1306Panel{bus: bus, scl: scl, sda: sda, addr: addr, width: width, height: height}
}

func (p *ssd1306Panel) Init() error {
	if p.bus == nil {
		return errors.New("ssd1306: no I2C bus")
	}
	if err := p.bus.Configure(machine.I2CConfig{
		Frequency: 400_000,
		SCL:       p.scl,
		SDA:       p.sda,
	}); err != nil {
		return err
	}

	// The driver does not report bus errors from Configure; probe with
	// "display off" so that a missing module is detected here.
	if err := p.bus.Tx(p.addr, []byte{0x00, 0xAE}, nil); err != nil {
		return err
	}

	dev := ssd1306.NewI2C(p.bus)
	dev.Configure(ssd1306.Config{
		Address: p.addr,
		Width:   p.width,
		Height:  p.height,
	})
	dev.ClearBuffer()
	if err := dev.Display(); err != nil {
		return err
	}
	p.dev = dev
	return nil
}

func (p *ssd1306Panel) Size() (width, height int16) { return p.width, p.height }

func (p *ssd1306Panel) Clear() {
	if p.dev == nil {
		return
	}
	p.dev.ClearBuffer()
}

func (p *ssd1306Panel) SetPixel(x, y int16, on bool) {
	if p.dev == nil {
		return
	}
	if on {
		p.dev.SetPixel(x, y, white)
	} else {
		p.dev.SetPixel(x, y, black)
	}
}

func (p *ssd1306Panel) Flush() error {
	if p.dev == nil {
		return ErrNotImplemented
	}
	return p.dev.Display()
}
