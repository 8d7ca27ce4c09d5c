// Package display renders calculator output on a character display.
package display

import (
	"strconv"

	"keycalc/hal"
)

// Sink is the rendering surface the calculator writes to.
type Sink interface {
	Clear()
	SetCursor(row, col int)
	WriteChar(c byte)
	WriteString(s string)
	WriteInteger(n int32)
}

// LCD adapts a hal.CharDisplay to Sink. Device errors are dropped.
type LCD struct {
	dev hal.CharDisplay
	one [1]byte
	num [12]byte
}

func NewLCD(dev hal.CharDisplay) *LCD {
	return &LCD{dev: dev}
}

func (l *LCD) Clear() {
	_ = l.dev.Clear()
}

func (l *LCD) SetCursor(row, col int) {
	_ = l.dev.SetCursor(row, col)
}

func (l *LCD) WriteChar(c byte) {
	l.one[0] = c
	_, _ = l.dev.Write(l.one[:])
}

func (l *LCD) WriteString(s string) {
	if s == "" {
		return
	}
	_, _ = l.dev.Write([]byte(s))
}

// WriteInteger prints n in decimal: leading '-' when negative, no leading zeros.
func (l *LCD) WriteInteger(n int32) {
	_, _ = l.dev.Write(AppendInteger(l.num[:0], n))
}

// AppendInteger appends the decimal form of n to dst.
func AppendInteger(dst []byte, n int32) []byte {
	return strconv.AppendInt(dst, int64(n), 10)
}
