//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"keycalc/app"
	"keycalc/hal"
	"keycalc/keypad"
)

func main() {
	acfg := app.DefaultConfig()
	var hcfg hal.HeadlessConfig
	var sim hal.SimConfig
	var layout string
	var tui bool

	flag.StringVar(&layout, "layout", keypad.DefaultLayout.Name,
		"Keypad layout: "+strings.Join(keypad.LayoutNames(), ", ")+" or a .yaml file.")
	flag.DurationVar(&acfg.Debounce, "debounce", acfg.Debounce, "Keypad debounce interval.")
	flag.DurationVar(&acfg.Splash, "splash", acfg.Splash, "Boot banner duration (0 = skip).")
	flag.BoolVar(&acfg.DriveRows, "drive-rows", false, "Drive keypad rows and sense columns.")
	flag.BoolVar(&hcfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = stop when the script is done).")
	flag.StringVar(&hcfg.Script, "script", "", "Keys to type in headless mode, e.g. 12+30=.")
	flag.BoolVar(&tui, "tui", false, "Run in the terminal.")
	flag.DurationVar(&sim.Bounce, "bounce", hal.DefaultSimBounce, "Simulated contact bounce.")
	flag.DurationVar(&sim.Hold, "hold", hal.DefaultSimHold, "How long a typed key stays pressed.")
	flag.Parse()

	l, err := keypad.ResolveLayout(layout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	acfg.Layout = l
	sim.Rows, sim.Cols = l.Size()
	sim.Locate = l.Locate

	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, acfg)
	}

	switch {
	case hcfg.Enabled:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		hcfg.Sim = sim
		err = hal.RunHeadless(ctx, newApp, hcfg)
		if errors.Is(err, context.Canceled) {
			return
		}
	case tui:
		err = hal.RunTerminal(newApp, sim)
	default:
		err = hal.RunWindow(newApp, sim)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
