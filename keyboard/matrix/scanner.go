// Package matrix scans a diode switch matrix and debounces it into key events.
package matrix

import (
	"errors"
	"fmt"
	"time"

	"macromedia/hal"
)

// DefaultDebounce is the number of consecutive polls a new level must hold.
const DefaultDebounce = 5

// DefaultSettle is the wait between driving a line and sampling.
const DefaultSettle = 10 * time.Microsecond

var ErrNoPins = errors.New("matrix: no pins")

// Edge is the direction of a debounced transition.
type Edge uint8

const (
	Released Edge = iota
	Pressed
)

func (e Edge) String() string {
	if e == Pressed {
		return "pressed"
	}
	return "released"
}

// Position is a 0-based matrix coordinate.
type Position struct {
	Row int
	Col int
}

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.Row, p.Col) }

// KeyEvent is a debounced change at one position.
type KeyEvent struct {
	Pos  Position
	Edge Edge
	Time time.Time
}

// Config describes the matrix wiring.
type Config struct {
	Columns     []hal.GPIOPin
	Rows        []hal.GPIOPin
	Orientation hal.DiodeOrientation

	// Debounce is the poll count; 0 selects DefaultDebounce.
	Debounce int
	// Settle is waited after driving each line. Zero skips the wait.
	Settle time.Duration
}

type keyState struct {
	stable bool
	count  int
}

// Scanner owns the matrix pins and the per-position debounce state.
type Scanner struct {
	rows, cols int
	drive      []hal.GPIOPin
	sense      []hal.GPIOPin
	orient     hal.DiodeOrientation
	debounce   int
	settle     time.Duration
	keys       []keyState
	events     []KeyEvent
}

// New configures the pins and returns a Scanner with every key released.
func New(cfg Config) (*Scanner, error) {
	if len(cfg.Columns) == 0 || len(cfg.Rows) == 0 {
		return nil, ErrNoPins
	}
	n := cfg.Debounce
	if n == 0 {
		n = DefaultDebounce
	}
	if n < 1 {
		return nil, fmt.Errorf("matrix: debounce %d out of range", cfg.Debounce)
	}

	s := &Scanner{
		rows:     len(cfg.Rows),
		cols:     len(cfg.Columns),
		orient:   cfg.Orientation,
		debounce: n,
		settle:   cfg.Settle,
	}
	s.drive, s.sense = cfg.Columns, cfg.Rows
	if cfg.Orientation == hal.Row2Col {
		s.drive, s.sense = cfg.Rows, cfg.Columns
	}

	for i, p := range s.drive {
		if p == nil {
			return nil, fmt.Errorf("matrix: drive pin %d missing", i)
		}
		if err := p.Configure(hal.GPIOModeOutput, hal.GPIOPullNone); err != nil {
			return nil, fmt.Errorf("matrix: %w", err)
		}
		if err := p.Write(false); err != nil {
			return nil, fmt.Errorf("matrix: pin %s: %w", p.Name(), err)
		}
	}
	for i, p := range s.sense {
		if p == nil {
			return nil, fmt.Errorf("matrix: sense pin %d missing", i)
		}
		if err := p.Configure(hal.GPIOModeInput, hal.GPIOPullDown); err != nil {
			return nil, fmt.Errorf("matrix: %w", err)
		}
	}

	s.keys = make([]keyState, s.rows*s.cols)
	return s, nil
}

func (s *Scanner) Rows() int { return s.rows }
func (s *Scanner) Cols() int { return s.cols }

// Pressed reports the debounced state at pos.
func (s *Scanner) Pressed(pos Position) bool {
	if pos.Row < 0 || pos.Row >= s.rows || pos.Col < 0 || pos.Col >= s.cols {
		return false
	}
	return s.keys[pos.Row*s.cols+pos.Col].stable
}

// Scan runs one full cycle and returns the events it produced.
//
// The returned slice is reused by the next call.
func (s *Scanner) Scan(now time.Time) []KeyEvent {
	s.events = s.events[:0]
	for d, dp := range s.drive {
		// A failed drive leaves the line low, so its switches read open.
		driven := dp.Write(true) == nil
		if driven && s.settle > 0 {
			time.Sleep(s.settle)
		}
		for sn, sp := range s.sense {
			closed := false
			if driven {
				level, err := sp.Read()
				closed = err == nil && level
			}
			s.update(s.position(d, sn), closed, now)
		}
		_ = dp.Write(false)
	}
	return s.events
}

func (s *Scanner) position(drive, sense int) Position {
	if s.orient == hal.Row2Col {
		return Position{Row: drive, Col: sense}
	}
	return Position{Row: sense, Col: drive}
}

func (s *Scanner) update(pos Position, raw bool, now time.Time) {
	k := &s.keys[pos.Row*s.cols+pos.Col]
	if raw == k.stable {
		k.count = 0
		return
	}
	k.count++
	if k.count < s.debounce {
		return
	}
	k.count = 0
	k.stable = raw
	edge := Released
	if raw {
		edge = Pressed
	}
	s.events = append(s.events, KeyEvent{Pos: pos, Edge: edge, Time: now})
}
