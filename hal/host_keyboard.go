//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Digits 1-8 map onto the switch grid row by row.
var hostSwitchKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8,
}

type hostKeyboard struct {
	m   *VirtualMatrix
	enc *VirtualEncoder
}

func newHostKeyboard(m *VirtualMatrix, enc *VirtualEncoder) *hostKeyboard {
	return &hostKeyboard{m: m, enc: enc}
}

func (k *hostKeyboard) poll() {
	if k.m != nil && k.m.cols > 0 {
		for i, key := range hostSwitchKeys {
			k.m.SetSwitch(i/k.m.cols, i%k.m.cols, ebiten.IsKeyPressed(key))
		}
	}

	if k.enc == nil {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		k.enc.Rotate(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) || inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		k.enc.Rotate(-1)
	}
	k.enc.SetButton(ebiten.IsKeyPressed(ebiten.KeySpace))
}
