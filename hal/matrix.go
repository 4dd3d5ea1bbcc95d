package hal

import "sync"

// VirtualMatrix simulates a diode switch matrix wired to virtual pins.
//
// Drive lines are plain outputs. A sense line reads high while at least one
// drive line is driven high through a closed switch, and low otherwise (pull-down).
type VirtualMatrix struct {
	mu     sync.Mutex
	rows   int
	cols   int
	orient DiodeOrientation
	drive  []*virtualPin
	sense  []*matrixSensePin
	closed []bool
}

// NewVirtualMatrix creates pins named after rows and cols and wires them per orient.
func NewVirtualMatrix(rows, cols []string, orient DiodeOrientation) *VirtualMatrix {
	m := &VirtualMatrix{
		rows:   len(rows),
		cols:   len(cols),
		orient: orient,
		closed: make([]bool, len(rows)*len(cols)),
	}

	driveNames, senseNames := cols, rows
	if orient == Row2Col {
		driveNames, senseNames = rows, cols
	}
	for _, name := range driveNames {
		m.drive = append(m.drive, newVirtualPin(name, gpioCapsAll))
	}
	for i, name := range senseNames {
		m.sense = append(m.sense, &matrixSensePin{m: m, index: i, name: name, mode: GPIOModeInput})
	}
	return m
}

// Pins returns the drive pins followed by the sense pins.
func (m *VirtualMatrix) Pins() []GPIOPin {
	pins := make([]GPIOPin, 0, len(m.drive)+len(m.sense))
	for _, p := range m.drive {
		pins = append(pins, p)
	}
	for _, p := range m.sense {
		pins = append(pins, p)
	}
	return pins
}

// SetSwitch opens or closes the switch at (row, col). Out of range positions are ignored.
func (m *VirtualMatrix) SetSwitch(row, col int, closed bool) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed[row*m.cols+col] = closed
}

// Switch reports whether the switch at (row, col) is closed.
func (m *VirtualMatrix) Switch(row, col int) bool {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed[row*m.cols+col]
}

func (m *VirtualMatrix) senseLevel(sense int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for d, p := range m.drive {
		row, col := sense, d
		if m.orient == Row2Col {
			row, col = d, sense
		}
		if m.closed[row*m.cols+col] && p.drivenHigh() {
			return true
		}
	}
	return false
}

type matrixSensePin struct {
	mu    sync.Mutex
	m     *VirtualMatrix
	index int
	name  string
	mode  GPIOMode
	pull  GPIOPull
}

func (p *matrixSensePin) Name() string   { return p.name }
func (p *matrixSensePin) Caps() GPIOCaps { return GPIOCapInput | GPIOCapPullDown }

func (p *matrixSensePin) Configure(mode GPIOMode, pull GPIOPull) error {
	if err := checkConfig(p.name, p.Caps(), mode, pull); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = mode
	p.pull = pull
	return nil
}

func (p *matrixSensePin) Read() (bool, error) {
	return p.m.senseLevel(p.index), nil
}

func (p *matrixSensePin) Write(level bool) error {
	_ = level
	return ErrNotImplemented
}
