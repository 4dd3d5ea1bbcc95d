package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"macromedia/config"
)

func TestRenderScreens(t *testing.T) {
	cfg := config.Default()

	boot, err := render(cfg, "boot")
	if err != nil {
		t.Fatalf("render(boot): %v", err)
	}
	ready, err := render(cfg, "ready")
	if err != nil {
		t.Fatalf("render(ready): %v", err)
	}
	// 14 lit pixels per character cell.
	if got := boot.Lit(); got != 10*14 {
		t.Fatalf("boot lit=%d, want %d", got, 10*14)
	}
	if got := ready.Lit(); got != 5*14 {
		t.Fatalf("ready lit=%d, want %d", got, 5*14)
	}
	if _, err := render(cfg, "menu"); err == nil {
		t.Fatal("render(menu) succeeded")
	}
}

func TestWritePNG(t *testing.T) {
	frame, err := render(config.Default(), "ready")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	path := filepath.Join(t.TempDir(), "ready.png")
	if err := writePNG(path, frame, 2); err != nil {
		t.Fatalf("writePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 256 || b.Dy() != 64 {
		t.Fatalf("bounds=%v, want 256x64", b)
	}
}
