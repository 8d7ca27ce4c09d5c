package app

import (
	"fmt"
	"time"

	"keycalc/calc"
	"keycalc/display"
	"keycalc/hal"
	"keycalc/internal/buildinfo"
	"keycalc/keypad"
)

// DefaultSplash is how long the boot banner stays on the LCD.
const DefaultSplash = 800 * time.Millisecond

type Config struct {
	Layout    keypad.Layout
	Debounce  time.Duration
	Splash    time.Duration // 0 skips the banner
	DriveRows bool
}

// DefaultConfig matches the stock board: column drive, 25 ms debounce and
// keypad.DefaultLayout.
func DefaultConfig() Config {
	return Config{
		Layout:   keypad.DefaultLayout,
		Debounce: keypad.DefaultDebounce,
		Splash:   DefaultSplash,
	}
}

type calculator struct {
	h    hal.HAL
	cfg  Config
	log  hal.Logger
	lcd  *display.LCD
	keys *keypad.Scanner
	ctl  *calc.Controller
}

// New starts the calculator with the default config.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, DefaultConfig())
}

// Run starts the calculator and blocks forever (TinyGo/native entrypoint).
func Run(h hal.HAL) {
	RunWithConfig(h, DefaultConfig())
}

// NewWithConfig starts the control loop in its own goroutine. The returned step
// function reports a wiring error or a panic of the loop; until then it returns nil.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	c, err := newCalculator(h, cfg)
	if err != nil {
		loggerOf(h).WriteLineString("app: " + err.Error())
		return func() error { return err }
	}

	errc := make(chan error, 1)
	go func() { errc <- c.run() }()

	var loopErr error
	return func() error {
		if loopErr == nil {
			select {
			case loopErr = <-errc:
			default:
			}
		}
		return loopErr
	}
}

func RunWithConfig(h hal.HAL, cfg Config) {
	_ = NewWithConfig(h, cfg)
	select {}
}

func newCalculator(h hal.HAL, cfg Config) (*calculator, error) {
	if len(cfg.Layout.Keys) == 0 {
		cfg.Layout = keypad.DefaultLayout
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = keypad.DefaultDebounce
	}

	log := loggerOf(h)
	if h.Display() == nil {
		return nil, fmt.Errorf("display: %w", hal.ErrNotImplemented)
	}
	if h.Keypad() == nil {
		return nil, fmt.Errorf("keypad: %w", hal.ErrNotImplemented)
	}

	keys, err := keypad.New(keypad.MatrixLines(h.Keypad(), cfg.DriveRows), h.Clock(), keypad.Config{
		Layout:    cfg.Layout,
		Debounce:  cfg.Debounce,
		DriveRows: cfg.DriveRows,
		Log:       log,
	})
	if err != nil {
		return nil, err
	}

	lcd := display.NewLCD(h.Display())
	ctl := calc.NewController(lcd, calc.Config{Log: log, FaultLED: h.LED()})

	return &calculator{h: h, cfg: cfg, log: log, lcd: lcd, keys: keys, ctl: ctl}, nil
}

// run boots the display and handles keys until the loop panics.
func (c *calculator) run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = c.reportPanic(r)
		}
	}()

	c.log.WriteLineString(fmt.Sprintf("app: %s %s, layout %s, debounce %s",
		buildinfo.Name, buildinfo.Short(), c.cfg.Layout.Name, c.cfg.Debounce))

	c.splash()
	c.ctl.Reset()
	c.ctl.Run(c.keys)
	return nil
}

func (c *calculator) splash() {
	if c.cfg.Splash <= 0 {
		return
	}
	c.lcd.Clear()
	c.lcd.SetCursor(0, 0)
	c.lcd.WriteString(buildinfo.Name)
	c.lcd.SetCursor(1, 0)
	c.lcd.WriteString(buildinfo.Short())
	if clk := c.h.Clock(); clk != nil {
		clk.Sleep(c.cfg.Splash)
	}
}

func loggerOf(h hal.HAL) hal.Logger {
	if l := h.Logger(); l != nil {
		return l
	}
	return hal.NopLogger
}
