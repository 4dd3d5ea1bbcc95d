//go:build !tinygo && !cgo

package hal

import (
	"errors"
	"time"
)

func RunWindow(_ HAL, _ func(HAL) (func() error, error), _ time.Duration) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
