package matrix

import (
	"testing"
	"time"

	"macromedia/hal"
)

var (
	rowNames = []string{"TX", "RX"}
	colNames = []string{"A0", "A1", "A2", "A3"}
)

func newTestScanner(t *testing.T, orient hal.DiodeOrientation, debounce int) (*Scanner, *hal.VirtualMatrix) {
	t.Helper()
	m := hal.NewVirtualMatrix(rowNames, colNames, orient)
	pins := m.Pins()

	var cols, rows []hal.GPIOPin
	if orient == hal.Row2Col {
		rows, cols = pins[:len(rowNames)], pins[len(rowNames):]
	} else {
		cols, rows = pins[:len(colNames)], pins[len(colNames):]
	}

	s, err := New(Config{Columns: cols, Rows: rows, Orientation: orient, Debounce: debounce})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, m
}

func TestNewRejectsBadConfig(t *testing.T) {
	if _, err := New(Config{}); err != ErrNoPins {
		t.Fatalf("New(empty)=%v, want ErrNoPins", err)
	}

	m := hal.NewVirtualMatrix(rowNames, colNames, hal.Col2Row)
	pins := m.Pins()
	if _, err := New(Config{Columns: pins[:4], Rows: pins[4:], Debounce: -1}); err == nil {
		t.Fatal("New with debounce -1 succeeded")
	}
	if _, err := New(Config{Columns: []hal.GPIOPin{nil}, Rows: pins[4:]}); err == nil {
		t.Fatal("New with a nil pin succeeded")
	}
}

func TestScanPressAfterDebounce(t *testing.T) {
	s, m := newTestScanner(t, hal.Col2Row, 5)
	now := time.Unix(0, 0)
	pos := Position{Row: 0, Col: 1}

	m.SetSwitch(pos.Row, pos.Col, true)
	for i := 1; i <= 4; i++ {
		if ev := s.Scan(now); len(ev) != 0 {
			t.Fatalf("poll %d: events=%v, want none", i, ev)
		}
	}
	ev := s.Scan(now)
	if len(ev) != 1 {
		t.Fatalf("poll 5: events=%d, want 1", len(ev))
	}
	if ev[0].Pos != pos || ev[0].Edge != Pressed {
		t.Fatalf("poll 5: event=%+v, want Pressed at %v", ev[0], pos)
	}
	if !s.Pressed(pos) {
		t.Fatal("Pressed()=false after debounced press")
	}

	for i := 0; i < 10; i++ {
		if ev := s.Scan(now); len(ev) != 0 {
			t.Fatalf("held poll %d: events=%v, want none", i, ev)
		}
	}
}

func TestScanBounceIsSuppressed(t *testing.T) {
	s, m := newTestScanner(t, hal.Col2Row, 5)
	now := time.Unix(0, 0)

	// Closed for 3 polls, then open: the counter resets and nothing is emitted.
	for i := 0; i < 3; i++ {
		m.SetSwitch(1, 3, true)
		s.Scan(now)
	}
	m.SetSwitch(1, 3, false)
	for i := 0; i < 10; i++ {
		if ev := s.Scan(now); len(ev) != 0 {
			t.Fatalf("poll %d: events=%v, want none", i, ev)
		}
	}

	// Alternating raw levels never hold for N polls.
	for i := 0; i < 20; i++ {
		m.SetSwitch(1, 3, i%2 == 0)
		if ev := s.Scan(now); len(ev) != 0 {
			t.Fatalf("chatter poll %d: events=%v, want none", i, ev)
		}
	}
}

func TestScanEdgesAlternate(t *testing.T) {
	s, m := newTestScanner(t, hal.Col2Row, 3)
	now := time.Unix(0, 0)

	var edges []Edge
	levels := []bool{true, false, true, false}
	for _, closed := range levels {
		m.SetSwitch(0, 0, closed)
		for i := 0; i < 5; i++ {
			for _, ev := range s.Scan(now) {
				edges = append(edges, ev.Edge)
			}
		}
	}

	want := []Edge{Pressed, Released, Pressed, Released}
	if len(edges) != len(want) {
		t.Fatalf("edges=%v, want %v", edges, want)
	}
	for i := range want {
		if edges[i] != want[i] {
			t.Fatalf("edges[%d]=%v, want %v", i, edges[i], want[i])
		}
	}
}

func TestScanRow2ColReportsRowCol(t *testing.T) {
	s, m := newTestScanner(t, hal.Row2Col, 1)
	now := time.Unix(0, 0)

	m.SetSwitch(1, 2, true)
	ev := s.Scan(now)
	if len(ev) != 1 {
		t.Fatalf("events=%d, want 1", len(ev))
	}
	if want := (Position{Row: 1, Col: 2}); ev[0].Pos != want {
		t.Fatalf("pos=%v, want %v", ev[0].Pos, want)
	}
}

func TestScanSeveralKeysInOneCycle(t *testing.T) {
	s, m := newTestScanner(t, hal.Col2Row, 1)
	now := time.Unix(5, 0)

	m.SetSwitch(0, 0, true)
	m.SetSwitch(1, 3, true)
	ev := s.Scan(now)
	if len(ev) != 2 {
		t.Fatalf("events=%d, want 2", len(ev))
	}
	for _, e := range ev {
		if e.Edge != Pressed || !e.Time.Equal(now) {
			t.Fatalf("event=%+v, want Pressed at %v", e, now)
		}
	}
	if s.Pressed(Position{Row: 0, Col: 1}) {
		t.Fatal("open key reported pressed")
	}
}
