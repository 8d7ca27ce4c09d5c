package app

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"keycalc/hal"
	"keycalc/keypad"
)

type testClock struct {
	mu    sync.Mutex
	t     time.Time
	slept []time.Duration
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(100 * time.Microsecond)
	return c.t
}

func (c *testClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slept = append(c.slept, d)
	c.t = c.t.Add(d)
}

func (c *testClock) sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.slept...)
}

type testLCD struct {
	mu       sync.Mutex
	text     [2][16]byte
	row, col int
	history  []string
	panicOn  byte
}

func newTestLCD() *testLCD {
	d := &testLCD{}
	_ = d.Clear()
	return d
}

func (d *testLCD) Size() (int, int) { return 16, 2 }

func (d *testLCD) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for r := range d.text {
		for c := range d.text[r] {
			d.text[r][c] = ' '
		}
	}
	d.row, d.col = 0, 0
	return nil
}

func (d *testLCD) SetCursor(row, col int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.row, d.col = row, col
	return nil
}

func (d *testLCD) Write(p []byte) (int, error) {
	if d.panicOn != 0 && strings.IndexByte(string(p), d.panicOn) >= 0 {
		panic("lcd: bad glyph")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.history = append(d.history, string(p))
	for _, b := range p {
		if d.col < len(d.text[d.row]) {
			d.text[d.row][d.col] = b
		}
		d.col++
	}
	return len(p), nil
}

func (d *testLCD) line(row int) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return strings.TrimRight(string(d.text[row][:]), " ")
}

func (d *testLCD) wrote(s string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, h := range d.history {
		if h == s {
			return true
		}
	}
	return false
}

type testLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *testLog) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
}

func (l *testLog) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func (l *testLog) contains(sub string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.lines {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

type testLED struct {
	mu sync.Mutex
	on bool
}

func (l *testLED) set(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = on
}

func (l *testLED) High() { l.set(true) }
func (l *testLED) Low()  { l.set(false) }

func (l *testLED) lit() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}

type testHAL struct {
	log     *testLog
	led     *testLED
	matrix  *hal.Matrix
	lcd     *testLCD
	clock   *testClock
	display hal.CharDisplay
	stopped atomic.Bool
}

var errStopped = errors.New("keypad stopped")

// stopPin panics on Read once the HAL is stopped. The panic unwinds a control loop
// parked in GetKey through the app's recovery, so the loop goroutine returns.
type stopPin struct {
	hal.GPIOPin
	stopped *atomic.Bool
}

func (p stopPin) Read() (bool, error) {
	if p.stopped.Load() {
		panic(errStopped)
	}
	return p.GPIOPin.Read()
}

type stopKeypad struct{ h *testHAL }

func (k stopKeypad) Rows() []hal.GPIOPin { return k.h.wrap(k.h.matrix.Rows()) }
func (k stopKeypad) Cols() []hal.GPIOPin { return k.h.wrap(k.h.matrix.Cols()) }

func (h *testHAL) wrap(pins []hal.GPIOPin) []hal.GPIOPin {
	out := make([]hal.GPIOPin, len(pins))
	for i, p := range pins {
		out[i] = stopPin{GPIOPin: p, stopped: &h.stopped}
	}
	return out
}

func newTestHAL() *testHAL {
	clk := &testClock{t: time.Unix(0, 0)}
	lcd := newTestLCD()
	return &testHAL{
		log:     &testLog{},
		led:     &testLED{},
		matrix:  hal.NewMatrixWithClock(4, 4, clk.Now),
		lcd:     lcd,
		clock:   clk,
		display: lcd,
	}
}

func (h *testHAL) Logger() hal.Logger       { return h.log }
func (h *testHAL) LED() hal.LED             { return h.led }
func (h *testHAL) Keypad() hal.Keypad       { return stopKeypad{h} }
func (h *testHAL) Display() hal.CharDisplay { return h.display }
func (h *testHAL) Clock() hal.Clock         { return h.clock }

// start boots the app on h and stops its control loop when the test ends.
func start(t *testing.T, h *testHAL, cfg Config) func() error {
	t.Helper()
	step := NewWithConfig(h, cfg)
	t.Cleanup(func() {
		h.stopped.Store(true)
		waitFor(t, "control loop exit", func() bool { return step() != nil })
	})
	return step
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func typeKeys(t *testing.T, h *testHAL, keys string) {
	t.Helper()
	for i := 0; i < len(keys); i++ {
		row, col, ok := keypad.LayoutCalculator.Locate(rune(keys[i]))
		if !ok {
			t.Fatalf("no key for %q", keys[i])
		}
		if err := h.matrix.Tap(row, col, 2*time.Millisecond, 60*time.Millisecond); err != nil {
			t.Fatalf("Tap: %v", err)
		}
		waitFor(t, "key release", func() bool { return !h.matrix.Active() })
	}
}

func TestBootShowsSplashThenPrompt(t *testing.T) {
	h := newTestHAL()
	step := start(t, h, DefaultConfig())

	waitFor(t, "prompt", func() bool { return h.lcd.line(0) == "Enter:" })
	if err := step(); err != nil {
		t.Fatalf("step() = %v", err)
	}
	if !h.lcd.wrote("Keycalc") {
		t.Fatal("splash banner never written")
	}
	if s := h.clock.sleeps(); len(s) == 0 || s[0] != DefaultSplash {
		t.Fatalf("first sleep = %v, want %v", s, DefaultSplash)
	}
	if !h.log.contains("app: Keycalc") {
		t.Fatal("boot line missing from log")
	}
}

func TestKeypadToDisplay(t *testing.T) {
	for _, driveRows := range []bool{false, true} {
		h := newTestHAL()
		cfg := DefaultConfig()
		cfg.Splash = 0
		cfg.DriveRows = driveRows
		_ = start(t, h, cfg)
		waitFor(t, "prompt", func() bool { return h.lcd.line(0) == "Enter:" })

		typeKeys(t, h, "12*3")
		waitFor(t, "echo", func() bool { return h.lcd.line(1) == "12 * 3" })

		typeKeys(t, h, "=")
		waitFor(t, "result", func() bool { return h.lcd.line(1) == "36" })
		if got := h.lcd.line(0); got != "Result:" {
			t.Fatalf("driveRows=%v: line 0 = %q, want Result:", driveRows, got)
		}
	}
}

func TestFaultLED(t *testing.T) {
	h := newTestHAL()
	cfg := DefaultConfig()
	cfg.Splash = 0
	_ = start(t, h, cfg)
	waitFor(t, "prompt", func() bool { return h.lcd.line(0) == "Enter:" })

	typeKeys(t, h, "5/0=")
	waitFor(t, "fault text", func() bool { return h.lcd.line(1) == "Error: /0" })
	if !h.led.lit() {
		t.Fatal("LED off after division by zero")
	}
	if !h.log.contains("division by zero") {
		t.Fatal("fault not logged")
	}

	typeKeys(t, h, "C")
	waitFor(t, "LED off", func() bool { return !h.led.lit() })
	if got := h.lcd.line(0); got != "Enter:" {
		t.Fatalf("line 0 = %q, want Enter:", got)
	}
}

func TestPanicIsReported(t *testing.T) {
	h := newTestHAL()
	h.lcd.panicOn = '9'
	cfg := DefaultConfig()
	cfg.Splash = 0
	step := start(t, h, cfg)
	waitFor(t, "prompt", func() bool { return h.lcd.line(0) == "Enter:" })

	typeKeys(t, h, "9")

	var err error
	waitFor(t, "loop error", func() bool {
		err = step()
		return err != nil
	})
	if !strings.Contains(err.Error(), "lcd: bad glyph") {
		t.Fatalf("step() = %v, want the panic value", err)
	}
	if got := h.lcd.line(0); got != "Panic:" {
		t.Fatalf("line 0 = %q, want Panic:", got)
	}
	if got := h.lcd.line(1); got != "lcd: bad glyph" {
		t.Fatalf("line 1 = %q", got)
	}
	if !h.log.contains("app: panic: lcd: bad glyph") {
		t.Fatal("panic not logged")
	}
	if step() != err {
		t.Fatal("step() changed after the loop stopped")
	}
}

func TestStopEndsControlLoop(t *testing.T) {
	h := newTestHAL()
	cfg := DefaultConfig()
	cfg.Splash = 0
	step := NewWithConfig(h, cfg)
	waitFor(t, "prompt", func() bool { return h.lcd.line(0) == "Enter:" })
	if err := step(); err != nil {
		t.Fatalf("step() = %v while waiting for a key", err)
	}

	h.stopped.Store(true)
	var err error
	waitFor(t, "loop error", func() bool {
		err = step()
		return err != nil
	})
	if !strings.Contains(err.Error(), errStopped.Error()) {
		t.Fatalf("step() = %v, want %v", err, errStopped)
	}
}

func TestWiringError(t *testing.T) {
	h := newTestHAL()
	h.display = nil
	step := NewWithConfig(h, DefaultConfig())
	if err := step(); !errors.Is(err, hal.ErrNotImplemented) {
		t.Fatalf("step() = %v, want ErrNotImplemented", err)
	}
	if !h.log.contains("app: display") {
		t.Fatal("wiring error not logged")
	}
}

func TestFitLine(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"runtime error: index out of range", 16, "runtime error: i"},
		{"short", 16, "short"},
		{"tab\there", 16, "tab?here"},
		{"π=3", 2, "?="},
		{"x", 0, ""},
	}
	for _, tt := range tests {
		if got := fitLine(tt.in, tt.n); got != tt.want {
			t.Fatalf("fitLine(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
