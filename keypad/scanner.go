package keypad

import (
	"fmt"
	"runtime"
	"time"

	"keycalc/hal"
)

// DefaultDebounce is the settle time between detecting a key and confirming it.
const DefaultDebounce = 25 * time.Millisecond

// Lines are the matrix lines seen from the scanner: Drive lines are pulled low one at
// a time, Sense lines are pulled-up inputs that read low through a closed switch.
type Lines struct {
	Drive []hal.GPIOPin
	Sense []hal.GPIOPin
}

// MatrixLines picks drive and sense lines from a keypad. Columns are driven unless
// driveRows is set.
func MatrixLines(k hal.Keypad, driveRows bool) Lines {
	if driveRows {
		return Lines{Drive: k.Rows(), Sense: k.Cols()}
	}
	return Lines{Drive: k.Cols(), Sense: k.Rows()}
}

// Config controls a Scanner.
type Config struct {
	Layout   Layout
	Debounce time.Duration

	// DriveRows must match how Lines were picked; it decides how a (drive, sense)
	// pair maps onto Layout rows and columns.
	DriveRows bool

	Log hal.Logger
}

// Scanner reads one key symbol per physical press from a switch matrix.
type Scanner struct {
	lines    Lines
	layout   Layout
	debounce time.Duration
	driveRow bool
	clock    hal.Clock
	log      hal.Logger

	readErrLogged bool
}

// New configures the matrix lines and returns a scanner.
func New(lines Lines, clock hal.Clock, cfg Config) (*Scanner, error) {
	if clock == nil {
		clock = hal.SleepClock{}
	}
	if cfg.Log == nil {
		cfg.Log = hal.NopLogger
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if err := cfg.Layout.Validate(); err != nil {
		return nil, fmt.Errorf("keypad: %w", err)
	}

	rows, cols := cfg.Layout.Size()
	wantDrive, wantSense := cols, rows
	if cfg.DriveRows {
		wantDrive, wantSense = rows, cols
	}
	if len(lines.Drive) != wantDrive || len(lines.Sense) != wantSense {
		return nil, fmt.Errorf("keypad: layout %q is %dx%d, lines are %d drive/%d sense: %w",
			cfg.Layout.Name, rows, cols, len(lines.Drive), len(lines.Sense), ErrLayoutShape)
	}

	for _, p := range lines.Drive {
		if err := p.Configure(hal.GPIOModeOutput, hal.GPIOPullNone); err != nil {
			return nil, fmt.Errorf("keypad: drive line %s: %w", p.Name(), err)
		}
		if err := p.Write(true); err != nil {
			return nil, fmt.Errorf("keypad: release line %s: %w", p.Name(), err)
		}
	}
	for _, p := range lines.Sense {
		if err := p.Configure(hal.GPIOModeInput, hal.GPIOPullUp); err != nil {
			return nil, fmt.Errorf("keypad: sense line %s: %w", p.Name(), err)
		}
	}

	return &Scanner{
		lines:    lines,
		layout:   cfg.Layout,
		debounce: cfg.Debounce,
		driveRow: cfg.DriveRows,
		clock:    clock,
		log:      cfg.Log,
	}, nil
}

// Layout returns the symbol table in use.
func (s *Scanner) Layout() Layout { return s.layout }

// Scan performs one raster pass and returns the first asserted key.
//
// Drive lines are visited in order and, within each, sense lines in order; the first
// closed switch that maps to a symbol wins.
func (s *Scanner) Scan() (Key, bool) {
	for _, p := range s.lines.Drive {
		_ = p.Write(true)
	}

	for d, dp := range s.lines.Drive {
		if d > 0 {
			_ = s.lines.Drive[d-1].Write(true)
		}
		_ = dp.Write(false)

		for n, sp := range s.lines.Sense {
			level, err := sp.Read()
			if err != nil {
				s.logReadErr(sp, err)
				continue
			}
			if level {
				continue
			}
			k := s.at(d, n)
			if k == KeyNone {
				continue
			}
			_ = dp.Write(true)
			return k, true
		}
	}

	if n := len(s.lines.Drive); n > 0 {
		_ = s.lines.Drive[n-1].Write(true)
	}
	return KeyNone, false
}

func (s *Scanner) at(drive, sense int) Key {
	if s.driveRow {
		return s.layout.At(drive, sense)
	}
	return s.layout.At(sense, drive)
}

func (s *Scanner) logReadErr(p hal.GPIOPin, err error) {
	if s.readErrLogged {
		return
	}
	s.readErrLogged = true
	s.log.WriteLineString(fmt.Sprintf("keypad: read %s: %v", p.Name(), err))
}

// GetKey blocks until a key has been pressed, confirmed after the debounce interval
// and released, then returns it.
func (s *Scanner) GetKey() Key {
	return getKey(s.Scan, s.clock, s.debounce)
}

func getKey(scan func() (Key, bool), clock hal.Clock, debounce time.Duration) Key {
	for {
		k, ok := scan()
		if !ok {
			runtime.Gosched()
			continue
		}

		clock.Sleep(debounce)
		if again, ok := scan(); !ok || again != k {
			continue
		}

		for {
			if _, ok := scan(); !ok {
				return k
			}
			runtime.Gosched()
		}
	}
}
