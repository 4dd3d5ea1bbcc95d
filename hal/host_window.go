//go:build !tinygo && cgo

package hal

import (
	"errors"
	"image"
	"time"

	"macromedia/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

const windowScale = 4

// RunWindow opens a desktop window that shows the OLED and forwards keyboard
// input to the simulated matrix and encoder. It blocks until the window closes.
func RunWindow(h HAL, newApp func(HAL) (func() error, error), interval time.Duration) error {
	hh, ok := h.(*hostHAL)
	if !ok {
		return errors.New("window mode requires the virtual board")
	}
	step, err := newApp(h)
	if err != nil {
		return err
	}

	tps := 1000
	if interval > 0 {
		tps = int(time.Second / interval)
	}
	if tps < 1 {
		tps = 1
	}

	w, ht := hh.panel.Size()
	g := &hostGame{h: hh, step: step, frame: NewBitmap(w, ht)}
	ebiten.SetWindowTitle("MacroMedia (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(int(w)*windowScale, int(ht)*windowScale)
	ebiten.SetTPS(tps)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h     *hostHAL
	step  func() error
	frame *Bitmap
	img   *image.RGBA
	oled  *ebiten.Image
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	g.h.pump()
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	w, h := g.frame.Size()
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
		g.oled = ebiten.NewImage(int(w), int(h))
	}

	g.h.panel.Snapshot(g.frame)

	dst := g.img.Pix
	for y := int16(0); y < h; y++ {
		for x := int16(0); x < w; x++ {
			j := (int(y)*int(w) + int(x)) * 4
			if g.frame.Get(x, y) {
				// SSD1306 modules are usually white or pale blue on black.
				dst[j+0], dst[j+1], dst[j+2] = 0xC8, 0xE6, 0xFF
			} else {
				dst[j+0], dst[j+1], dst[j+2] = 0, 0, 0
			}
			dst[j+3] = 0xFF
		}
	}

	g.oled.WritePixels(g.img.Pix)
	screen.DrawImage(g.oled, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.frame.Size()
	return int(w), int(h)
}
