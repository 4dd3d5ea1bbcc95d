//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"macromedia/app"
	"macromedia/config"
	"macromedia/hal"
	"macromedia/internal/buildinfo"
)

func main() {
	var (
		headless   hal.HeadlessConfig
		configPath string
		board      string
		tick       time.Duration
		version    bool
	)
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.DurationVar(&tick, "tick", 0, "Driver loop period (0 = from config).")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&configPath, "config", "", "YAML file overriding the built-in configuration.")
	flag.StringVar(&board, "board", "virtual", "Board to run on: virtual or linux.")
	flag.BoolVar(&version, "version", false, "Print the build version and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.Long())
		return
	}
	if err := run(headless, configPath, board, tick); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(headless hal.HeadlessConfig, configPath, board string, tick time.Duration) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	if tick > 0 {
		cfg.Tick = tick
	}

	var h hal.HAL
	switch board {
	case "virtual":
		// Virtual pins settle instantly.
		cfg.Matrix.Settle = 0
		h = hal.New(cfg.Layout())
	case "linux":
		lh, err := hal.NewLinux(cfg.Layout(), cfg.LinuxConfig())
		if err != nil {
			return err
		}
		h = lh
		headless.Enabled = true
	default:
		return fmt.Errorf("unknown board %q", board)
	}
	if c, ok := h.(io.Closer); ok {
		defer c.Close()
	}

	newApp := func(h hal.HAL) (func() error, error) {
		return app.NewStep(h, cfg)
	}

	if headless.Enabled {
		headless.Interval = cfg.Tick
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return hal.RunHeadless(ctx, h, newApp, headless)
	}
	return hal.RunWindow(h, newApp, cfg.Tick)
}
