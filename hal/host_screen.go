//go:build !tinygo

package hal

import (
	"fmt"
	"image"
	"sync"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

var screenFont = &proggy.TinySZ8pt7b

var _ tinyterm.Displayer = (*scrollPane)(nil)

const (
	screenWidth  = 256
	screenHeight = 208

	fontHeight = 10
	fontOffset = 7
	lcdPad     = 4
)

var (
	colBezel   = rgba(0x20, 0x20, 0x20)
	colLCDBack = rgba(0x6f, 0x8f, 0x1f)
	colLCDCell = rgba(0x7f, 0xa3, 0x27)
	colLCDInk  = rgba(0x10, 0x20, 0x08)
	colLEDOn   = rgba(0xf0, 0x30, 0x20)
	colLEDOff  = rgba(0x40, 0x14, 0x10)
)

// hostScreen composes the window contents: the character LCD drawn cell by cell,
// the board LED, and a terminal pane that shows the UART log.
type hostScreen struct {
	fb    *hostFramebuffer
	lcd   fbRegion
	led   fbRegion
	pane  *scrollPane
	term  *tinyterm.Terminal
	cellW int16
	cellH int16

	mu      sync.Mutex
	pending []string

	drawn      bool
	lcdVersion uint64
	ledOn      bool
}

func newHostScreen(cols, rows int) *hostScreen {
	_, w := tinyfont.LineWidth(screenFont, "0")
	cellW := int16(w) + 2
	cellH := int16(fontHeight) + 4

	fb := newHostFramebuffer(screenWidth, screenHeight)
	fb.ClearRGB(colBezel.R, colBezel.G, colBezel.B)

	lcdW := cellW*int16(cols) + 2*lcdPad
	lcdH := cellH*int16(rows) + 2*lcdPad
	paneY := 8 + lcdH + 8
	// Whole text rows only, so the terminal's ring of lines matches the pane height.
	paneH := (screenHeight - paneY) / fontHeight * fontHeight

	s := &hostScreen{
		fb:    fb,
		lcd:   fbRegion{fb: fb, x0: 8, y0: 8, w: lcdW, h: lcdH},
		led:   fbRegion{fb: fb, x0: screenWidth - 20, y0: 8, w: 12, h: 12},
		pane:  newScrollPane(fb, 0, int(paneY), screenWidth, paneH),
		cellW: cellW,
		cellH: cellH,
	}
	s.term = tinyterm.NewTerminal(s.pane)
	s.term.Configure(&tinyterm.Config{
		ScreenBounds: image.Rect(0, 0, screenWidth, int(paneH)),
		Font:         screenFont,
		FontHeight:   fontHeight,
		FontOffset:   fontOffset,
	})
	_ = s.pane.Display()
	return s
}

// log queues a line for the terminal pane. Safe from any goroutine.
func (s *hostScreen) log(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, line)
}

// render brings the framebuffer up to date. Call from the window goroutine.
func (s *hostScreen) render(lines []string, version uint64, ledOn bool) {
	if !s.drawn || version != s.lcdVersion {
		s.paintLCD(lines)
		s.lcdVersion = version
	}
	if !s.drawn || ledOn != s.ledOn {
		c := colLEDOff
		if ledOn {
			c = colLEDOn
		}
		_ = s.led.FillRectangle(0, 0, s.led.w, s.led.h, c)
		s.ledOn = ledOn
	}
	s.drawn = true

	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()
	for _, line := range pending {
		fmt.Fprintf(s.term, "\n%s", line)
	}
	if len(pending) > 0 {
		_ = s.pane.Display()
	}
}

func (s *hostScreen) paintLCD(lines []string) {
	_ = s.lcd.FillRectangle(0, 0, s.lcd.w, s.lcd.h, colLCDBack)
	for row, line := range lines {
		y := lcdPad + int16(row)*s.cellH
		for col := 0; col < len(line); col++ {
			x := lcdPad + int16(col)*s.cellW
			_ = s.lcd.FillRectangle(x, y, s.cellW-1, s.cellH-1, colLCDCell)
			if line[col] != ' ' {
				tinyfont.DrawChar(s.lcd, screenFont, x+1, y+2+fontOffset, rune(line[col]), colLCDInk)
			}
		}
	}
}

// cellInk counts ink pixels inside one LCD cell.
func (s *hostScreen) cellInk(row, col int) int {
	ink := rgb565(colLCDInk.R, colLCDInk.G, colLCDInk.B)
	n := 0
	x0 := int(s.lcd.x0 + lcdPad + int16(col)*s.cellW)
	y0 := int(s.lcd.y0 + lcdPad + int16(row)*s.cellH)
	for y := y0; y < y0+int(s.cellH); y++ {
		for x := x0; x < x0+int(s.cellW); x++ {
			if s.fb.pixel(x, y) == ink {
				n++
			}
		}
	}
	return n
}
