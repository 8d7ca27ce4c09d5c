//go:build tinygo && baremetal && !lcdi2c

package hal

import (
	"fmt"

	"tinygo.org/x/drivers/hd44780"
)

// gpioLCD drives an HD44780 over the 8-bit parallel bus.
type gpioLCD struct {
	dev      hd44780.Device
	row, col int
}

func newBoardLCD() (CharDisplay, error) {
	dev, err := hd44780.NewGPIO8Bit(lcdDataPins, lcdEN, lcdRS, lcdRW)
	if err != nil {
		return nil, fmt.Errorf("hd44780: %w", err)
	}
	if err := dev.Configure(hd44780.Config{
		Width:       lcdCols,
		Height:      lcdRows,
		CursorOnOff: true,
		Font:        hd44780.FONT_5X8,
	}); err != nil {
		return nil, fmt.Errorf("hd44780: configure: %w", err)
	}
	return &gpioLCD{dev: dev}, nil
}

func (d *gpioLCD) Size() (int, int) { return lcdCols, lcdRows }

func (d *gpioLCD) Clear() error {
	d.dev.ClearDisplay()
	d.dev.SetCursor(0, 0)
	d.row, d.col = 0, 0
	return nil
}

func (d *gpioLCD) SetCursor(row, col int) error {
	if row < 0 || row >= lcdRows || col < 0 || col >= lcdCols {
		return fmt.Errorf("lcd: cursor %d,%d outside %dx%d", row, col, lcdCols, lcdRows)
	}
	d.dev.SetCursor(uint8(col), uint8(row))
	d.row, d.col = row, col
	return nil
}

// Write puts p at the cursor. Characters past the last column are dropped rather
// than wrapped onto the next row.
func (d *gpioLCD) Write(p []byte) (int, error) {
	n := clipLine(d.col, lcdCols, len(p))
	if n > 0 {
		if _, err := d.dev.Write(p[:n]); err != nil {
			return 0, err
		}
		if err := d.dev.Display(); err != nil {
			return 0, err
		}
	}
	d.col += len(p)
	return len(p), nil
}
