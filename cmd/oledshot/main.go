//go:build !tinygo

package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"time"

	"macromedia/config"
	"macromedia/hal"
	"macromedia/keyboard/oled"
)

var (
	litColor  = color.RGBA{R: 0xC8, G: 0xE6, B: 0xFF, A: 0xFF}
	darkColor = color.RGBA{A: 0xFF}
)

func main() {
	var (
		outPath    = flag.String("out", "", "Output PNG file.")
		screen     = flag.String("screen", "boot", "boot|ready.")
		scale      = flag.Int("scale", 4, "Pixels per OLED pixel.")
		configPath = flag.String("config", "", "YAML config (display size).")
	)
	flag.Parse()

	if *outPath == "" {
		fatalf("usage: oledshot -out screen.png [-screen boot|ready] [-scale 4] [-config pad.yaml]")
	}
	if *scale < 1 || *scale > 32 {
		fatalf("scale out of range: %d", *scale)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fatalf("%v", err)
		}
	}

	frame, err := render(cfg, strings.ToLower(*screen))
	if err != nil {
		fatalf("render: %v", err)
	}
	if err := writePNG(*outPath, frame, *scale); err != nil {
		fatalf("write: %v", err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

// render runs the display state machine against an in-memory panel and
// returns the frame that would be on the OLED.
func render(cfg config.Config, screen string) (*hal.Bitmap, error) {
	panel := hal.NewMemoryPanel(cfg.Display.Width, cfg.Display.Height)
	t0 := time.Unix(0, 0)
	s := oled.New(panel, t0, oled.WithBootHold(cfg.Display.BootHold))

	switch screen {
	case "boot":
	case "ready":
		s.OnTick(t0.Add(cfg.Display.BootHold))
	default:
		return nil, fmt.Errorf("unknown screen %q", screen)
	}
	if s.State() == oled.Unavailable {
		return nil, fmt.Errorf("display unavailable")
	}

	w, h := panel.Size()
	frame := hal.NewBitmap(w, h)
	panel.Snapshot(frame)
	return frame, nil
}

func writePNG(path string, frame *hal.Bitmap, scale int) error {
	w, h := frame.Size()
	img := image.NewRGBA(image.Rect(0, 0, int(w)*scale, int(h)*scale))
	for y := int16(0); y < h; y++ {
		for x := int16(0); x < w; x++ {
			c := darkColor
			if frame.Get(x, y) {
				c = litColor
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetRGBA(int(x)*scale+dx, int(y)*scale+dy, c)
				}
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
