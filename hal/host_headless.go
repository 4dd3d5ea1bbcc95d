//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled  bool
	Interval time.Duration
	Ticks    uint64
}

// RunHeadless drives the firmware from a ticker without opening a window.
func RunHeadless(ctx context.Context, h HAL, newApp func(HAL) (func() error, error), cfg HeadlessConfig) error {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Millisecond
	}

	step, err := newApp(h)
	if err != nil {
		return err
	}

	hh, _ := h.(*hostHAL)

	t := time.NewTicker(cfg.Interval)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if hh != nil {
				hh.pump()
			}
			if step != nil {
				if err := step(); err != nil {
					return fmt.Errorf("step %d: %w", tick, err)
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
