//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
)

type hostHAL struct {
	logger *hostLogger
	gpio   GPIO
	matrix *VirtualMatrix
	enc    *VirtualEncoder
	panel  *MemoryPanel
	hid    *logHID
	kbd    *hostKeyboard
	clock  hostClock
}

// New returns a host HAL that simulates the board described by l.
func New(l Layout) HAL {
	logger := &hostLogger{w: os.Stdout}
	m := NewVirtualMatrix(l.Rows, l.Columns, l.Orientation)
	enc := NewVirtualEncoder(l.EncoderA, l.EncoderB, l.EncoderButton)

	pins := append(m.Pins(), enc.Pins()...)
	// Spare pins so that a mistyped layout fails on lookup rather than on wiring.
	for i := 0; i < 4; i++ {
		pins = append(pins, newVirtualPin(fmt.Sprintf("GPIO%d", i+1), gpioCapsAll))
	}

	w, h := l.PanelWidth, l.PanelHeight
	if w <= 0 || h <= 0 {
		w, h = 128, 32
	}
	return &hostHAL{
		logger: logger,
		gpio:   newVirtualGPIO(pins),
		matrix: m,
		enc:    enc,
		panel:  NewMemoryPanel(w, h),
		hid:    &logHID{logger: logger},
		kbd:    newHostKeyboard(m, enc),
	}
}

func (h *hostHAL) Logger() Logger { return h.logger }
func (h *hostHAL) GPIO() GPIO     { return h.gpio }
func (h *hostHAL) Panel() Panel   { return h.panel }
func (h *hostHAL) HID() HID       { return h.hid }
func (h *hostHAL) Clock() Clock   { return h.clock }

// Matrix exposes the simulated switch grid.
func (h *hostHAL) Matrix() *VirtualMatrix { return h.matrix }

// Encoder exposes the simulated encoder.
func (h *hostHAL) Encoder() *VirtualEncoder { return h.enc }

// pump moves the simulated encoder forward by one tick.
func (h *hostHAL) pump() {
	h.enc.Advance()
}

// Simulator is implemented by HALs whose inputs are simulated.
type Simulator interface {
	Matrix() *VirtualMatrix
	Encoder() *VirtualEncoder
}

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
