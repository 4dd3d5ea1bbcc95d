package hal

import (
	"fmt"
	"strings"
)

// DiodeOrientation is the matrix wiring convention.
type DiodeOrientation uint8

const (
	// Col2Row drives the columns and senses the rows.
	Col2Row DiodeOrientation = iota
	// Row2Col drives the rows and senses the columns.
	Row2Col
)

func (o DiodeOrientation) String() string {
	switch o {
	case Col2Row:
		return "col2row"
	case Row2Col:
		return "row2col"
	default:
		return fmt.Sprintf("DiodeOrientation(%d)", uint8(o))
	}
}

// ParseDiodeOrientation accepts "col2row" or "row2col".
func ParseDiodeOrientation(s string) (DiodeOrientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "col2row":
		return Col2Row, nil
	case "row2col":
		return Row2Col, nil
	default:
		return 0, fmt.Errorf("unknown diode orientation %q", s)
	}
}

// Layout names the pins and devices a board has to provide.
type Layout struct {
	Columns     []string
	Rows        []string
	Orientation DiodeOrientation

	EncoderA      string
	EncoderB      string
	EncoderButton string

	PanelAddress uint16
	PanelWidth   int16
	PanelHeight  int16
}

// LinuxConfig maps layout pin names onto GPIO character device lines.
type LinuxConfig struct {
	Chip      string
	Lines     map[string]int
	HIDDevice string
}
