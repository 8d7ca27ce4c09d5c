package hal

import (
	"fmt"
	"sync"
	"time"
)

// MatrixChatter is the toggle period of a bouncing contact.
const MatrixChatter = time.Millisecond

// Matrix simulates a passive switch matrix.
//
// Every row and column line can be configured as an output or a pulled input. A
// closed switch at (row, col) shorts the two lines, so an input line reads low when a
// closed switch connects it to a line that is driven low.
type Matrix struct {
	mu       sync.Mutex
	now      func() time.Time
	rows     []*matrixLine
	cols     []*matrixLine
	contacts []contact
	lastRead time.Time
}

type contact struct {
	row, col int
	since    time.Time
	bounce   time.Duration
	hold     time.Duration // 0: closed until Release
}

// closedAt reports whether the contact conducts at t.
//
// The contact chatters for bounce after closing and again after opening.
func (c contact) closedAt(t time.Time) bool {
	el := t.Sub(c.since)
	if el < 0 {
		return false
	}
	if c.hold > 0 && el >= c.hold {
		rel := el - c.hold
		if rel >= c.bounce {
			return false
		}
		return (rel/MatrixChatter)%2 == 1
	}
	if el < c.bounce {
		return (el/MatrixChatter)%2 == 0
	}
	return true
}

func (c contact) expired(t time.Time) bool {
	return c.hold > 0 && t.Sub(c.since) >= c.hold+c.bounce
}

// NewMatrix returns a rows x cols matrix on the wall clock.
func NewMatrix(rows, cols int) *Matrix {
	return NewMatrixWithClock(rows, cols, time.Now)
}

// NewMatrixWithClock returns a rows x cols matrix that reads time from now.
func NewMatrixWithClock(rows, cols int, now func() time.Time) *Matrix {
	if now == nil {
		now = time.Now
	}
	m := &Matrix{now: now}
	for i := 0; i < rows; i++ {
		m.rows = append(m.rows, &matrixLine{m: m, name: fmt.Sprintf("ROW%d", i), row: true, idx: i})
	}
	for i := 0; i < cols; i++ {
		m.cols = append(m.cols, &matrixLine{m: m, name: fmt.Sprintf("COL%d", i), idx: i})
	}
	return m
}

// Size returns the matrix dimensions.
func (m *Matrix) Size() (rows, cols int) { return len(m.rows), len(m.cols) }

func (m *Matrix) Rows() []GPIOPin {
	pins := make([]GPIOPin, len(m.rows))
	for i, l := range m.rows {
		pins[i] = l
	}
	return pins
}

func (m *Matrix) Cols() []GPIOPin {
	pins := make([]GPIOPin, len(m.cols))
	for i, l := range m.cols {
		pins[i] = l
	}
	return pins
}

// Press closes the switch at (row, col) until Release.
func (m *Matrix) Press(row, col int) error {
	return m.add(row, col, 0, 0)
}

// PressBounce closes the switch at (row, col) until Release, chattering for bounce first.
func (m *Matrix) PressBounce(row, col int, bounce time.Duration) error {
	return m.add(row, col, bounce, 0)
}

// Tap closes the switch at (row, col) for hold, chattering for bounce on both edges.
func (m *Matrix) Tap(row, col int, bounce, hold time.Duration) error {
	if hold <= 0 {
		return fmt.Errorf("matrix: tap %d,%d: hold must be positive", row, col)
	}
	if hold < bounce {
		hold = bounce
	}
	return m.add(row, col, bounce, hold)
}

func (m *Matrix) add(row, col int, bounce, hold time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if row < 0 || row >= len(m.rows) || col < 0 || col >= len(m.cols) {
		return fmt.Errorf("matrix: switch %d,%d out of range %dx%d", row, col, len(m.rows), len(m.cols))
	}
	if bounce < 0 {
		bounce = 0
	}
	t := m.now()
	m.pruneLocked(t)
	m.releaseLocked(row, col)
	m.contacts = append(m.contacts, contact{row: row, col: col, since: t, bounce: bounce, hold: hold})
	return nil
}

// Release opens the switch at (row, col).
func (m *Matrix) Release(row, col int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releaseLocked(row, col)
}

// ReleaseAll opens every switch.
func (m *Matrix) ReleaseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contacts = m.contacts[:0]
}

// Active reports whether any switch is closed or still settling.
func (m *Matrix) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruneLocked(m.now())
	return len(m.contacts) > 0
}

// Pressed reports whether the switch at (row, col) conducts right now.
func (m *Matrix) Pressed(row, col int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.now()
	for _, c := range m.contacts {
		if c.row == row && c.col == col && c.closedAt(t) {
			return true
		}
	}
	return false
}

// ScannedWithin reports whether an input line was read during the last d, that is,
// whether something is polling the matrix.
func (m *Matrix) ScannedWithin(d time.Duration) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.lastRead.IsZero() && m.now().Sub(m.lastRead) < d
}

func (m *Matrix) releaseLocked(row, col int) {
	kept := m.contacts[:0]
	for _, c := range m.contacts {
		if c.row == row && c.col == col {
			continue
		}
		kept = append(kept, c)
	}
	m.contacts = kept
}

func (m *Matrix) pruneLocked(t time.Time) {
	kept := m.contacts[:0]
	for _, c := range m.contacts {
		if c.expired(t) {
			continue
		}
		kept = append(kept, c)
	}
	m.contacts = kept
}

type matrixLine struct {
	m    *Matrix
	name string
	row  bool
	idx  int

	configured bool
	mode       GPIOMode
	pull       GPIOPull
	level      bool
}

func (l *matrixLine) Name() string   { return l.name }
func (l *matrixLine) Caps() GPIOCaps { return GPIOCapAll }

func (l *matrixLine) Configure(mode GPIOMode, pull GPIOPull) error {
	if err := checkPinConfig(l.name, l.Caps(), mode, pull); err != nil {
		return err
	}

	l.m.mu.Lock()
	defer l.m.mu.Unlock()
	l.configured = true
	l.mode = mode
	l.pull = pull
	if mode == GPIOModeOutput {
		l.level = true
	}
	return nil
}

func (l *matrixLine) Write(level bool) error {
	l.m.mu.Lock()
	defer l.m.mu.Unlock()
	if !l.configured || l.mode != GPIOModeOutput {
		return fmt.Errorf("gpio: pin %s: not in output mode", l.name)
	}
	l.level = level
	return nil
}

func (l *matrixLine) Read() (bool, error) {
	m := l.m
	m.mu.Lock()
	defer m.mu.Unlock()

	if !l.configured {
		return false, fmt.Errorf("gpio: pin %s: not configured", l.name)
	}
	if l.mode == GPIOModeOutput {
		return l.level, nil
	}

	t := m.now()
	m.lastRead = t
	for _, c := range m.contacts {
		var other *matrixLine
		switch {
		case l.row && c.row == l.idx:
			other = m.cols[c.col]
		case !l.row && c.col == l.idx:
			other = m.rows[c.row]
		default:
			continue
		}
		if !other.configured || other.mode != GPIOModeOutput || other.level {
			continue
		}
		if c.closedAt(t) {
			return false, nil
		}
	}
	return l.pull != GPIOPullDown, nil
}
