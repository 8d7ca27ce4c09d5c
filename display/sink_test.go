package display

import (
	"math"
	"testing"
)

type cell struct{ row, col int }

// charLCD is a minimal in-memory display for tests.
type charLCD struct {
	cols, rows int
	cur        cell
	text       [][]byte
	clears     int
}

func newCharLCD(cols, rows int) *charLCD {
	d := &charLCD{cols: cols, rows: rows}
	_ = d.Clear()
	d.clears = 0
	return d
}

func (d *charLCD) Size() (int, int) { return d.cols, d.rows }

func (d *charLCD) Clear() error {
	d.text = make([][]byte, d.rows)
	for i := range d.text {
		d.text[i] = []byte(spaces(d.cols))
	}
	d.cur = cell{}
	d.clears++
	return nil
}

func (d *charLCD) SetCursor(row, col int) error {
	d.cur = cell{row, col}
	return nil
}

func (d *charLCD) Write(p []byte) (int, error) {
	for _, b := range p {
		if d.cur.col < d.cols {
			d.text[d.cur.row][d.cur.col] = b
		}
		d.cur.col++
	}
	return len(p), nil
}

func (d *charLCD) line(row int) string { return string(d.text[row]) }

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

func TestLCDWrites(t *testing.T) {
	dev := newCharLCD(16, 2)
	lcd := NewLCD(dev)

	lcd.WriteString("Result:")
	lcd.SetCursor(1, 0)
	lcd.WriteInteger(-1234)
	lcd.WriteChar('!')

	if got, want := dev.line(0), "Result:         "; got != want {
		t.Fatalf("line 0 = %q, want %q", got, want)
	}
	if got, want := dev.line(1), "-1234!          "; got != want {
		t.Fatalf("line 1 = %q, want %q", got, want)
	}

	lcd.Clear()
	if dev.clears != 1 {
		t.Fatalf("clears = %d, want 1", dev.clears)
	}
	if got := dev.line(1); got != spaces(16) {
		t.Fatalf("line 1 after clear = %q", got)
	}
}

func TestAppendInteger(t *testing.T) {
	tests := []struct {
		n    int32
		want string
	}{
		{0, "0"},
		{7, "7"},
		{-5, "-5"},
		{100, "100"},
		{math.MaxInt32, "2147483647"},
		{math.MinInt32, "-2147483648"},
	}
	for _, tt := range tests {
		if got := string(AppendInteger(nil, tt.n)); got != tt.want {
			t.Fatalf("AppendInteger(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
