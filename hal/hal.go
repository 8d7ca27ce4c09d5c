package hal

import (
	"errors"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// CharDisplay is a character LCD (HD44780 class).
//
// Rows and columns are zero based. Write advances the cursor; characters past the
// last column are dropped by the host model and wrapped by some drivers.
type CharDisplay interface {
	Size() (cols, rows int)
	Clear() error
	SetCursor(row, col int) error
	Write(p []byte) (int, error)
}

// Keypad exposes the row and column lines of a switch matrix.
type Keypad interface {
	Rows() []GPIOPin
	Cols() []GPIOPin
}

// Clock provides the blocking wait used for debounce and splash timing.
type Clock interface {
	Sleep(d time.Duration)
}

// HAL provides the only contact point between the firmware and the outside world.
type HAL interface {
	Logger() Logger
	LED() LED
	Keypad() Keypad
	Display() CharDisplay
	Clock() Clock
}

// SleepClock implements Clock with time.Sleep.
type SleepClock struct{}

func (SleepClock) Sleep(d time.Duration) { time.Sleep(d) }

type nullLogger struct{}

func (nullLogger) WriteLineString(string) {}
func (nullLogger) WriteLineBytes([]byte)  {}

// NopLogger discards every line.
var NopLogger Logger = nullLogger{}
