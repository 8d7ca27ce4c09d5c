//go:build tinygo && baremetal && lcdi2c

package hal

import (
	"fmt"
	"machine"

	"tinygo.org/x/drivers/hd44780i2c"
)

// i2cLCD drives an HD44780 behind a PCF8574 I2C backpack.
type i2cLCD struct {
	dev      hd44780i2c.Device
	row, col int
}

func newBoardLCD() (CharDisplay, error) {
	bus := machine.I2C1
	if err := bus.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       lcdI2CSDA,
		SCL:       lcdI2CSCL,
	}); err != nil {
		return nil, fmt.Errorf("i2c: %w", err)
	}

	dev := hd44780i2c.New(bus, lcdI2CAddr)
	if err := dev.Configure(hd44780i2c.Config{
		Width:    lcdCols,
		Height:   lcdRows,
		CursorOn: true,
	}); err != nil {
		return nil, fmt.Errorf("hd44780i2c: configure: %w", err)
	}
	return &i2cLCD{dev: dev}, nil
}

func (d *i2cLCD) Size() (int, int) { return lcdCols, lcdRows }

func (d *i2cLCD) Clear() error {
	d.dev.ClearDisplay()
	d.row, d.col = 0, 0
	return nil
}

func (d *i2cLCD) SetCursor(row, col int) error {
	if row < 0 || row >= lcdRows || col < 0 || col >= lcdCols {
		return fmt.Errorf("lcd: cursor %d,%d outside %dx%d", row, col, lcdCols, lcdRows)
	}
	d.dev.SetCursor(uint8(col), uint8(row))
	d.row, d.col = row, col
	return nil
}

// Write puts p at the cursor. Characters past the last column are dropped rather
// than wrapped onto the next row.
func (d *i2cLCD) Write(p []byte) (int, error) {
	if n := clipLine(d.col, lcdCols, len(p)); n > 0 {
		d.dev.Print(p[:n])
	}
	d.col += len(p)
	return len(p), nil
}
