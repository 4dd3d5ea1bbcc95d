// Package config holds the board wiring, timing and keymap.
//
// Default is compiled into every build; host builds can override it from a
// YAML file (see Load).
package config

import (
	"errors"
	"fmt"
	"time"

	"macromedia/hal"
	"macromedia/keyboard/encoder"
	"macromedia/keyboard/keymap"
	"macromedia/keyboard/matrix"
	"macromedia/keyboard/oled"
)

// DefaultTick is the driver loop period.
const DefaultTick = time.Millisecond

type Config struct {
	// Tick is the period of the driver loop.
	Tick    time.Duration `yaml:"tick"`
	Matrix  Matrix        `yaml:"matrix"`
	Encoder Encoder       `yaml:"encoder"`
	Display Display       `yaml:"display"`
	Keymap  Keymap        `yaml:"keymap"`
	Linux   Linux         `yaml:"linux"`
}

type Matrix struct {
	Columns     []string      `yaml:"columns"`
	Rows        []string      `yaml:"rows"`
	Orientation string        `yaml:"orientation"`
	Debounce    int           `yaml:"debounce"`
	Settle      time.Duration `yaml:"settle"`
}

type Encoder struct {
	A        string `yaml:"a"`
	B        string `yaml:"b"`
	Button   string `yaml:"button"`
	Invert   bool   `yaml:"invert"`
	Debounce int    `yaml:"debounce"`
}

type Display struct {
	Address  uint16        `yaml:"address"`
	Width    int16         `yaml:"width"`
	Height   int16         `yaml:"height"`
	BootHold time.Duration `yaml:"boot_hold"`
}

type Keymap struct {
	Layer   [][]keymap.Action `yaml:"layer"`
	Encoder EncoderKeys       `yaml:"encoder"`
}

type EncoderKeys struct {
	Increment keymap.Action `yaml:"increment"`
	Decrement keymap.Action `yaml:"decrement"`
	Press     keymap.Action `yaml:"press"`
}

// Linux maps pin names to character device lines for the Linux board.
type Linux struct {
	Chip      string         `yaml:"chip"`
	Lines     map[string]int `yaml:"lines"`
	HIDDevice string         `yaml:"hid_device"`
}

// Default returns the stock XIAO RP2040 build.
func Default() Config {
	km := keymap.Default()
	return Config{
		Tick: DefaultTick,
		Matrix: Matrix{
			Columns:     []string{"A0", "A1", "A2", "A3"},
			Rows:        []string{"TX", "RX"},
			Orientation: hal.Col2Row.String(),
			Debounce:    matrix.DefaultDebounce,
			Settle:      matrix.DefaultSettle,
		},
		Encoder: Encoder{
			A:        "D8",
			B:        "D9",
			Button:   "D10",
			Debounce: encoder.DefaultDebounce,
		},
		Display: Display{
			Address:  0x3C,
			Width:    128,
			Height:   32,
			BootHold: oled.DefaultBootHold,
		},
		Keymap: Keymap{
			Layer: km.Layer,
			Encoder: EncoderKeys{
				Increment: km.Encoder.Increment,
				Decrement: km.Encoder.Decrement,
				Press:     km.Encoder.Press,
			},
		},
		Linux: Linux{
			Chip:      "gpiochip0",
			HIDDevice: "/dev/hidg0",
		},
	}
}

// Validate reports the first inconsistency in c.
func (c Config) Validate() error {
	if c.Tick <= 0 {
		return fmt.Errorf("config: tick %v must be positive", c.Tick)
	}
	if len(c.Matrix.Columns) == 0 || len(c.Matrix.Rows) == 0 {
		return errors.New("config: matrix needs at least one row and one column")
	}
	if _, err := hal.ParseDiodeOrientation(c.Matrix.Orientation); err != nil {
		return fmt.Errorf("config: matrix: %w", err)
	}
	if c.Matrix.Debounce < 1 {
		return fmt.Errorf("config: matrix debounce %d must be at least 1", c.Matrix.Debounce)
	}
	if c.Matrix.Settle < 0 {
		return fmt.Errorf("config: matrix settle %v is negative", c.Matrix.Settle)
	}
	if c.Encoder.A == "" || c.Encoder.B == "" {
		return errors.New("config: encoder needs both phase pins")
	}
	if c.Encoder.Debounce < 1 {
		return fmt.Errorf("config: encoder debounce %d must be at least 1", c.Encoder.Debounce)
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("config: display size %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.Display.BootHold < 0 {
		return fmt.Errorf("config: boot hold %v is negative", c.Display.BootHold)
	}

	seen := make(map[string]bool)
	for _, name := range c.pinNames() {
		if seen[name] {
			return fmt.Errorf("config: pin %s used twice", name)
		}
		seen[name] = true
	}

	if err := c.KeymapTable().Validate(len(c.Matrix.Rows), len(c.Matrix.Columns)); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c Config) pinNames() []string {
	names := make([]string, 0, len(c.Matrix.Columns)+len(c.Matrix.Rows)+3)
	names = append(names, c.Matrix.Columns...)
	names = append(names, c.Matrix.Rows...)
	names = append(names, c.Encoder.A, c.Encoder.B)
	if c.Encoder.Button != "" {
		names = append(names, c.Encoder.Button)
	}
	return names
}

// Layout returns the pins and devices a HAL has to provide.
func (c Config) Layout() hal.Layout {
	orient, _ := hal.ParseDiodeOrientation(c.Matrix.Orientation)
	return hal.Layout{
		Columns:       c.Matrix.Columns,
		Rows:          c.Matrix.Rows,
		Orientation:   orient,
		EncoderA:      c.Encoder.A,
		EncoderB:      c.Encoder.B,
		EncoderButton: c.Encoder.Button,
		PanelAddress:  c.Display.Address,
		PanelWidth:    c.Display.Width,
		PanelHeight:   c.Display.Height,
	}
}

func (c Config) KeymapTable() keymap.Keymap {
	return keymap.Keymap{
		Layer: c.Keymap.Layer,
		Encoder: keymap.EncoderMap{
			Increment: c.Keymap.Encoder.Increment,
			Decrement: c.Keymap.Encoder.Decrement,
			Press:     c.Keymap.Encoder.Press,
		},
	}
}

func (c Config) LinuxConfig() hal.LinuxConfig {
	return hal.LinuxConfig{
		Chip:      c.Linux.Chip,
		Lines:     c.Linux.Lines,
		HIDDevice: c.Linux.HIDDevice,
	}
}
