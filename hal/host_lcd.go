//go:build !tinygo

package hal

import (
	"fmt"
	"strings"
	"sync"
)

// hostLCD models an HD44780 character display: a cursor that advances on every
// write and characters past the last column that never show up.
type hostLCD struct {
	mu       sync.Mutex
	cols     int
	rows     int
	cells    [][]byte
	row, col int
	version  uint64
}

func newHostLCD(cols, rows int) *hostLCD {
	d := &hostLCD{cols: cols, rows: rows, cells: make([][]byte, rows)}
	for i := range d.cells {
		d.cells[i] = make([]byte, cols)
	}
	d.clearLocked()
	return d
}

func (d *hostLCD) Size() (int, int) { return d.cols, d.rows }

func (d *hostLCD) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clearLocked()
	d.version++
	return nil
}

func (d *hostLCD) clearLocked() {
	for _, line := range d.cells {
		for i := range line {
			line[i] = ' '
		}
	}
	d.row, d.col = 0, 0
}

func (d *hostLCD) SetCursor(row, col int) error {
	if row < 0 || row >= d.rows || col < 0 || col >= d.cols {
		return fmt.Errorf("lcd: cursor %d,%d outside %dx%d", row, col, d.cols, d.rows)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.row, d.col = row, col
	return nil
}

func (d *hostLCD) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, b := range p {
		if d.col < d.cols {
			if b < 0x20 || b > 0x7e {
				b = '?'
			}
			d.cells[d.row][d.col] = b
		}
		d.col++
	}
	if len(p) > 0 {
		d.version++
	}
	return len(p), nil
}

// snapshot returns the visible text and the change counter.
func (d *hostLCD) snapshot() ([]string, uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	lines := make([]string, d.rows)
	for i, line := range d.cells {
		lines[i] = string(line)
	}
	return lines, d.version
}

// frame draws lines inside an ASCII bezel.
func frame(lines []string, cols int) string {
	var b strings.Builder
	edge := "+" + strings.Repeat("-", cols) + "+\n"
	b.WriteString(edge)
	for _, line := range lines {
		b.WriteByte('|')
		b.WriteString(line)
		b.WriteString("|\n")
	}
	b.WriteString(edge)
	return b.String()
}
