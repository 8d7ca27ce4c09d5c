//go:build !tinygo

package hal

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SimConfig describes the simulated keypad used by the host runners.
type SimConfig struct {
	Rows, Cols int

	// Locate maps a typed character to the switch that produces it.
	Locate func(r rune) (row, col int, ok bool)

	Bounce time.Duration // contact chatter on each edge
	Hold   time.Duration // how long a scripted or typed key stays closed
}

const (
	DefaultSimBounce = 3 * time.Millisecond
	DefaultSimHold   = 80 * time.Millisecond
)

func (c SimConfig) withDefaults() SimConfig {
	if c.Rows <= 0 {
		c.Rows = 4
	}
	if c.Cols <= 0 {
		c.Cols = 4
	}
	if c.Bounce < 0 {
		c.Bounce = 0
	}
	if c.Hold <= 0 {
		c.Hold = DefaultSimHold
	}
	return c
}

type hostHAL struct {
	logger *hostLogger
	led    *hostLED
	matrix *Matrix
	lcd    *hostLCD
	kbd    *hostKeyboard
	sim    SimConfig
}

// New returns a host HAL with a 4x4 simulated keypad, a 16x2 LCD and a logger on
// stderr.
func New() HAL {
	return newHostHAL(SimConfig{Bounce: DefaultSimBounce}, os.Stderr)
}

func newHostHAL(sim SimConfig, logOut io.Writer) *hostHAL {
	sim = sim.withDefaults()
	logger := newHostLogger(logOut)
	return &hostHAL{
		logger: logger,
		led:    &hostLED{logger: logger},
		matrix: NewMatrix(sim.Rows, sim.Cols),
		lcd:    newHostLCD(16, 2),
		kbd:    newHostKeyboard(),
		sim:    sim,
	}
}

func (h *hostHAL) Logger() Logger       { return h.logger }
func (h *hostHAL) LED() LED             { return h.led }
func (h *hostHAL) Keypad() Keypad       { return h.matrix }
func (h *hostHAL) Display() CharDisplay { return h.lcd }
func (h *hostHAL) Clock() Clock         { return SleepClock{} }

// hostLogger writes firmware log lines through zap. The text before the first ": "
// names the logger, so "calc: 5 + 3 = 8" logs "5 + 3 = 8" under "calc".
type hostLogger struct {
	zl *zap.Logger

	mu     sync.Mutex
	recent []string
	tee    func(line string)
}

const hostLogRecent = 64

func newHostLogger(w io.Writer) *hostLogger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = "T"
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), zapcore.DebugLevel)
	return newHostLoggerWithCore(core)
}

func newHostLoggerWithCore(core zapcore.Core) *hostLogger {
	return &hostLogger{zl: zap.New(core)}
}

func (l *hostLogger) WriteLineString(s string) {
	name, msg := splitComponent(s)
	zl := l.zl
	if name != "" {
		zl = zl.Named(name)
	}
	zl.Info(msg)

	l.mu.Lock()
	l.recent = append(l.recent, s)
	if len(l.recent) > hostLogRecent {
		l.recent = append(l.recent[:0], l.recent[len(l.recent)-hostLogRecent:]...)
	}
	tee := l.tee
	l.mu.Unlock()

	if tee != nil {
		tee(s)
	}
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.WriteLineString(string(b))
}

// setTee forwards every line to fn as well.
func (l *hostLogger) setTee(fn func(line string)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tee = fn
}

// tail returns up to n of the most recent lines, oldest first.
func (l *hostLogger) tail(n int) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n > len(l.recent) {
		n = len(l.recent)
	}
	return append([]string(nil), l.recent[len(l.recent)-n:]...)
}

func (l *hostLogger) sync() { _ = l.zl.Sync() }

func splitComponent(s string) (name, msg string) {
	i := strings.Index(s, ": ")
	if i <= 0 || strings.ContainsAny(s[:i], " \t") {
		return "", s
	}
	return s[:i], s[i+2:]
}

type hostLED struct {
	mu     sync.Mutex
	on     bool
	logger *hostLogger
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.on {
		return
	}
	l.on = true
	l.logger.WriteLineString("led: HIGH")
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.on {
		return
	}
	l.on = false
	l.logger.WriteLineString("led: LOW")
}

func (l *hostLED) lit() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}
