package hal

import (
	"errors"
	"fmt"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// Panel is a one-bit-per-pixel display backed by an in-memory framebuffer.
//
// SetPixel and Clear only touch the framebuffer; Flush pushes it to the device.
// Writes outside the panel are ignored.
type Panel interface {
	// Init brings the device up and blanks it. After a failed Init the panel
	// must not be used again.
	Init() error
	Size() (width, height int16)
	Clear()
	SetPixel(x, y int16, on bool)
	Flush() error
}

// HID sends consumer-control (media key) reports to the USB host.
//
// A usage of 0 releases the currently reported key.
type HID interface {
	SendConsumer(usage uint16) error
}

// Clock is a monotonic time source.
type Clock interface {
	Now() time.Time
}

// HAL provides the only contact point between the firmware and the outside world.
type HAL interface {
	Logger() Logger
	GPIO() GPIO
	Panel() Panel
	HID() HID
	Clock() Clock
}

// Logf formats a line and writes it to l. A nil logger drops the line.
func Logf(l Logger, format string, args ...any) {
	if l == nil {
		return
	}
	l.WriteLineString(fmt.Sprintf(format, args...))
}
