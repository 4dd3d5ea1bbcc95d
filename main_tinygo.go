//go:build tinygo && rp2040

package main

import (
	"macromedia/app"
	"macromedia/config"
	"macromedia/hal"
)

func main() {
	cfg := config.Default()
	app.Run(hal.New(cfg.Layout()), cfg)
}
