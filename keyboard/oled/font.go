package oled

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

const (
	cellWidth  = 6
	cellHeight = 8
	// pitch is the horizontal advance per character.
	pitch = 8
	// baseline is the offset from the cell top to the tinyfont origin.
	baseline = 7
)

// strokeGlyph draws the same box outline for every rune.
//
// Vertical strokes at dx 1 and 4 for dy 2..6; horizontal strokes at dy 2 and 6
// for dx 1..4. The y passed to Draw is the baseline.
type strokeGlyph struct {
	r rune
}

func (g strokeGlyph) Draw(display drivers.Displayer, x int16, y int16, c color.RGBA) {
	top := y - baseline
	for dy := int16(2); dy <= 6; dy++ {
		display.SetPixel(x+1, top+dy, c)
		display.SetPixel(x+4, top+dy, c)
	}
	for dx := int16(1); dx <= 4; dx++ {
		display.SetPixel(x+dx, top+2, c)
		display.SetPixel(x+dx, top+6, c)
	}
}

func (g strokeGlyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    cellWidth,
		Height:   cellHeight,
		XAdvance: pitch,
		YOffset:  -baseline,
	}
}

// strokeFont is a tinyfont.Fonter whose glyphs are placeholders, not letterforms.
type strokeFont struct{}

func (strokeFont) GetGlyph(r rune) tinyfont.Glypher { return strokeGlyph{r: r} }
func (strokeFont) GetYAdvance() uint8               { return cellHeight }

// StrokeFont is the font used for both status screens.
var StrokeFont tinyfont.Fonter = strokeFont{}
