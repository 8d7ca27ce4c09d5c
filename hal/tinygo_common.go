//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"machine"
)

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

type pinLED struct {
	pin machine.Pin
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }

// machinePin adapts a machine.Pin to GPIOPin.
type machinePin struct {
	name string
	pin  machine.Pin
	mode GPIOMode

	configured bool
}

func newMachinePin(name string, pin machine.Pin) *machinePin {
	return &machinePin{name: name, pin: pin}
}

func (p *machinePin) Name() string   { return p.name }
func (p *machinePin) Caps() GPIOCaps { return GPIOCapAll }

func (p *machinePin) Configure(mode GPIOMode, pull GPIOPull) error {
	if err := checkPinConfig(p.name, p.Caps(), mode, pull); err != nil {
		return err
	}

	var m machine.PinMode
	switch {
	case mode == GPIOModeOutput:
		m = machine.PinOutput
	case pull == GPIOPullUp:
		m = machine.PinInputPullup
	case pull == GPIOPullDown:
		m = machine.PinInputPulldown
	default:
		m = machine.PinInput
	}
	p.pin.Configure(machine.PinConfig{Mode: m})
	if mode == GPIOModeOutput {
		p.pin.High()
	}
	p.mode = mode
	p.configured = true
	return nil
}

func (p *machinePin) Read() (bool, error) {
	if !p.configured {
		return false, fmt.Errorf("gpio: pin %s: not configured", p.name)
	}
	return p.pin.Get(), nil
}

func (p *machinePin) Write(level bool) error {
	if !p.configured || p.mode != GPIOModeOutput {
		return fmt.Errorf("gpio: pin %s: not in output mode", p.name)
	}
	p.pin.Set(level)
	return nil
}

// pinKeypad is a switch matrix wired straight to MCU pins.
type pinKeypad struct {
	rows []GPIOPin
	cols []GPIOPin
}

func newPinKeypad(rows, cols []machine.Pin) *pinKeypad {
	k := &pinKeypad{}
	for i, p := range rows {
		k.rows = append(k.rows, newMachinePin(fmt.Sprintf("ROW%d", i), p))
	}
	for i, p := range cols {
		k.cols = append(k.cols, newMachinePin(fmt.Sprintf("COL%d", i), p))
	}
	return k
}

func (k *pinKeypad) Rows() []GPIOPin { return k.rows }
func (k *pinKeypad) Cols() []GPIOPin { return k.cols }

// clipLine returns how many of n bytes written at col fit on a line of width cols.
func clipLine(col, cols, n int) int {
	room := cols - col
	if room < 0 {
		room = 0
	}
	if n > room {
		return room
	}
	return n
}
