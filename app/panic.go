package app

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// reportPanic logs a recovered panic with its stack and puts it on the LCD.
func (c *calculator) reportPanic(v any) error {
	c.log.WriteLineString(fmt.Sprintf("app: panic: %v", v))
	if stack := captureStack(); len(stack) > 0 {
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			c.log.WriteLineString(line)
		}
	}

	c.showPanic(v)
	return fmt.Errorf("app: panic: %v", v)
}

func (c *calculator) showPanic(v any) {
	// The display may be what panicked.
	defer func() {
		if r := recover(); r != nil {
			c.log.WriteLineString(fmt.Sprintf("app: panic screen: %v", r))
		}
	}()

	cols, _ := c.h.Display().Size()
	c.lcd.Clear()
	c.lcd.SetCursor(0, 0)
	c.lcd.WriteString("Panic:")
	c.lcd.SetCursor(1, 0)
	c.lcd.WriteString(fitLine(fmt.Sprint(v), cols))
}

// fitLine cuts s to n characters and replaces anything outside printable ASCII,
// which the HD44780 character ROM does not map reliably.
func fitLine(s string, n int) string {
	if n <= 0 || s == "" {
		return ""
	}
	var b strings.Builder
	count := 0
	for len(s) > 0 && count < n {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		if r < 0x20 || r > 0x7e {
			r = '?'
		}
		b.WriteRune(r)
		count++
	}
	return b.String()
}
