//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64 // 0: run until the script is done

	// Script is typed on the keypad, one character per key press.
	Script string

	// Settle is how long the LCD and keypad must stay idle, once the script is done,
	// before the runner returns.
	Settle time.Duration

	Sim SimConfig
	Out io.Writer // LCD frames; stdout when nil
	Log io.Writer // log lines; stderr when nil
}

// RunHeadless runs the firmware without a window, typing cfg.Script and printing
// every LCD state seen at a tick. Writes landing within one tick share a frame.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Settle <= 0 {
		cfg.Settle = 200 * time.Millisecond
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Log == nil {
		cfg.Log = os.Stderr
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHostHAL(cfg.Sim, cfg.Log)
	defer h.logger.sync()

	q := newTapQueue(h.matrix, h.sim)
	for _, r := range cfg.Script {
		if err := q.push(r); err != nil {
			return err
		}
	}

	step := newApp(h)

	t := time.NewTicker(d)
	defer t.Stop()

	var (
		tick      uint64
		printed   uint64
		last      uint64
		changedAt = time.Now()
		busyAt    = changedAt
	)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			if err := q.pump(); err != nil {
				return err
			}

			lines, v := h.lcd.snapshot()
			// A version is printed once it has held for a whole tick, so a frame is
			// never taken between a clear and the text that follows it.
			if v == last && v != printed {
				printed = v
				if _, err := io.WriteString(cfg.Out, frame(lines, h.lcd.cols)); err != nil {
					return err
				}
			}
			if v != last {
				last = v
				changedAt = now
			}
			if !q.idle() {
				busyAt = now
			}
			settled := v == printed && now.Sub(changedAt) >= cfg.Settle

			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
			if cfg.Ticks == 0 && cfg.Script != "" && settled && now.Sub(busyAt) >= cfg.Settle {
				return nil
			}
		}
	}
}
