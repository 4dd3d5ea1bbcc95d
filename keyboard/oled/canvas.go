package oled

import (
	"image/color"

	"tinygo.org/x/drivers"

	"macromedia/hal"
)

var colorOn = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// canvas adapts a 1-bit hal.Panel to drivers.Displayer so tinyfont can draw on it.
type canvas struct {
	p    hal.Panel
	w, h int16
}

var _ drivers.Displayer = (*canvas)(nil)

func newCanvas(p hal.Panel) *canvas {
	w, h := p.Size()
	return &canvas{p: p, w: w, h: h}
}

func (c *canvas) Size() (x, y int16) { return c.w, c.h }

// SetPixel lights the pixel for any non-black color. Writes outside the panel are dropped.
func (c *canvas) SetPixel(x, y int16, col color.RGBA) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.p.SetPixel(x, y, col.R|col.G|col.B != 0)
}

func (c *canvas) Display() error { return c.p.Flush() }
