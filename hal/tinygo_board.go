//go:build tinygo && baremetal

package hal

import "machine"

// Board wiring for a Raspberry Pi Pico.
//
// Keypad columns are driven, rows are sensed with pull-ups. The LCD runs in 8-bit
// parallel mode unless built with -tags lcdi2c, which expects a PCF8574 backpack.
var (
	keypadRowPins = []machine.Pin{machine.GP6, machine.GP7, machine.GP8, machine.GP9}
	keypadColPins = []machine.Pin{machine.GP2, machine.GP3, machine.GP4, machine.GP5}

	lcdDataPins = []machine.Pin{
		machine.GP10, machine.GP11, machine.GP12, machine.GP13,
		machine.GP14, machine.GP15, machine.GP16, machine.GP17,
	}
	lcdRS = machine.GP18
	lcdRW = machine.GP19
	lcdEN = machine.GP20

	lcdI2CSDA = machine.GP26
	lcdI2CSCL = machine.GP27
)

const (
	lcdCols    = 16
	lcdRows    = 2
	lcdI2CAddr = 0x27
)

type boardHAL struct {
	logger *uartLogger
	led    *pinLED
	keypad *pinKeypad
	lcd    CharDisplay
}

// New returns the Pico board HAL.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	ledPin.Low()

	h := &boardHAL{
		logger: logger,
		led:    &pinLED{pin: ledPin},
		keypad: newPinKeypad(keypadRowPins, keypadColPins),
	}

	lcd, err := newBoardLCD()
	if err != nil {
		logger.WriteLineString("hal: lcd: " + err.Error())
	} else {
		h.lcd = lcd
	}
	return h
}

func (h *boardHAL) Logger() Logger       { return h.logger }
func (h *boardHAL) LED() LED             { return h.led }
func (h *boardHAL) Keypad() Keypad       { return h.keypad }
func (h *boardHAL) Display() CharDisplay { return h.lcd }
func (h *boardHAL) Clock() Clock         { return SleepClock{} }
