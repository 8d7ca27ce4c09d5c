package keypad

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownLayout = errors.New("unknown keypad layout")
	ErrLayoutShape   = errors.New("keypad layout shape mismatch")
)

// Layout maps matrix positions to key symbols, indexed [row][col].
type Layout struct {
	Name string
	Keys [][]Key
}

// LayoutCalculator is the reference board layout (operators down the right column,
// 7 8 9 on top).
var LayoutCalculator = MustLayout("calculator",
	"789/",
	"456*",
	"123-",
	"C0=+",
)

// LayoutPhone puts 1 2 3 on top.
var LayoutPhone = MustLayout("phone",
	"123+",
	"456-",
	"789*",
	"C0=/",
)

var builtinLayouts = []Layout{LayoutCalculator, LayoutPhone}

// DefaultLayout is the layout used when none is configured. Generated board tables
// may replace it from an init function.
var DefaultLayout = LayoutCalculator

// RegisterLayout adds l to the layouts LayoutByName knows.
func RegisterLayout(l Layout) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if _, err := LayoutByName(l.Name); err == nil {
		return fmt.Errorf("layout %q already registered", l.Name)
	}
	builtinLayouts = append(builtinLayouts, l)
	return nil
}

// LayoutByName returns a built-in or registered layout.
func LayoutByName(name string) (Layout, error) {
	for _, l := range builtinLayouts {
		if strings.EqualFold(l.Name, name) {
			return l, nil
		}
	}
	return Layout{}, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
}

// LayoutNames lists the known layouts.
func LayoutNames() []string {
	names := make([]string, 0, len(builtinLayouts))
	for _, l := range builtinLayouts {
		names = append(names, l.Name)
	}
	return names
}

// NewLayout builds a layout from one string per row. '.' and ' ' mark empty cells.
func NewLayout(name string, rows ...string) (Layout, error) {
	l := Layout{Name: name}
	for _, row := range rows {
		keys := make([]Key, 0, len(row))
		for i := 0; i < len(row); i++ {
			c := row[i]
			if c == '.' || c == ' ' {
				keys = append(keys, KeyNone)
				continue
			}
			k := Key(c)
			if c >= 'a' && c <= 'z' {
				k = Key(c - 'a' + 'A')
			}
			keys = append(keys, k)
		}
		l.Keys = append(l.Keys, keys)
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// MustLayout is NewLayout for package-level tables.
func MustLayout(name string, rows ...string) Layout {
	l, err := NewLayout(name, rows...)
	if err != nil {
		panic(err)
	}
	return l
}

// Validate checks that the layout is rectangular, uses only calculator symbols and
// maps each symbol at most once.
func (l Layout) Validate() error {
	if len(l.Keys) == 0 || len(l.Keys[0]) == 0 {
		return fmt.Errorf("layout %q: %w: empty", l.Name, ErrLayoutShape)
	}
	cols := len(l.Keys[0])
	seen := make(map[Key]bool)
	for r, row := range l.Keys {
		if len(row) != cols {
			return fmt.Errorf("layout %q: %w: row %d has %d columns, want %d", l.Name, ErrLayoutShape, r, len(row), cols)
		}
		for c, k := range row {
			if k == KeyNone {
				continue
			}
			if !k.Valid() {
				return fmt.Errorf("layout %q: invalid key %q at %d,%d", l.Name, byte(k), r, c)
			}
			if seen[k] {
				return fmt.Errorf("layout %q: key %s mapped twice", l.Name, k)
			}
			seen[k] = true
		}
	}
	return nil
}

// Size returns the number of rows and columns.
func (l Layout) Size() (rows, cols int) {
	if len(l.Keys) == 0 {
		return 0, 0
	}
	return len(l.Keys), len(l.Keys[0])
}

// At returns the symbol at (row, col), or KeyNone outside the table.
func (l Layout) At(row, col int) Key {
	if row < 0 || row >= len(l.Keys) || col < 0 || col >= len(l.Keys[row]) {
		return KeyNone
	}
	return l.Keys[row][col]
}

// Find returns the position of k.
func (l Layout) Find(k Key) (row, col int, ok bool) {
	if k == KeyNone {
		return 0, 0, false
	}
	for r, keys := range l.Keys {
		for c, kk := range keys {
			if kk == k {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// Locate maps a typed character to its position. Lower case 'c' is the clear key.
func (l Layout) Locate(r rune) (row, col int, ok bool) {
	if r == 'c' {
		r = 'C'
	}
	if r <= 0 || r > 0x7F {
		return 0, 0, false
	}
	return l.Find(Key(r))
}

// Rows renders the layout back to one string per row.
func (l Layout) Rows() []string {
	out := make([]string, len(l.Keys))
	for r, keys := range l.Keys {
		b := make([]byte, len(keys))
		for c, k := range keys {
			if k == KeyNone {
				b[c] = '.'
				continue
			}
			b[c] = byte(k)
		}
		out[r] = string(b)
	}
	return out
}
