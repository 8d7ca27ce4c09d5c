//go:build !tinygo

package hal

import (
	"image/color"
	"sync"

	"tinygo.org/x/drivers"
)

type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 2
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.fillRect(0, 0, f.width, f.height, rgb565(r, g, b))
}

func (f *hostFramebuffer) setPixel(x, y int, pixel uint16) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	off := y*f.stride + x*2
	f.buf[off] = byte(pixel)
	f.buf[off+1] = byte(pixel >> 8)
}

func (f *hostFramebuffer) pixel(x, y int) uint16 {
	f.mu.Lock()
	defer f.mu.Unlock()
	off := y*f.stride + x*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

func (f *hostFramebuffer) fillRect(x, y, w, h int, pixel uint16) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, f.width), min(y+h, f.height)
	lo, hi := byte(pixel), byte(pixel>>8)

	f.mu.Lock()
	defer f.mu.Unlock()
	for yy := y0; yy < y1; yy++ {
		row := yy * f.stride
		for xx := x0; xx < x1; xx++ {
			f.buf[row+xx*2] = lo
			f.buf[row+xx*2+1] = hi
		}
	}
}

func (f *hostFramebuffer) snapshotRGB565(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
}

// fbRegion is a clipped window into the framebuffer that satisfies the TinyGo
// display interfaces, so tinyfont and tinyterm can draw into part of the screen.
type fbRegion struct {
	fb     *hostFramebuffer
	x0, y0 int16
	w, h   int16
}

func (r fbRegion) Size() (x, y int16) { return r.w, r.h }

func (r fbRegion) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || x >= r.w || y < 0 || y >= r.h {
		return
	}
	r.fb.setPixel(int(r.x0+x), int(r.y0+y), rgb565(c.R, c.G, c.B))
}

func (r fbRegion) Display() error { return nil }

func (r fbRegion) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	x1, y1 := min(x+width, r.w), min(y+height, r.h)
	x, y = max(x, 0), max(y, 0)
	if x1 <= x || y1 <= y {
		return nil
	}
	r.fb.fillRect(int(r.x0+x), int(r.y0+y), int(x1-x), int(y1-y), rgb565(c.R, c.G, c.B))
	return nil
}

func (r fbRegion) SetScroll(line int16) {}

func (r fbRegion) SetRotation(rotation drivers.Rotation) error {
	if rotation != drivers.Rotation0 {
		return ErrNotImplemented
	}
	return nil
}

var _ drivers.Displayer = fbRegion{}

// scrollPane is an off-screen ring of pixel rows shown at dst through a vertical
// scroll offset, like a panel controller with a scroll start register. Display
// copies the ring to dst with row top at the top edge.
type scrollPane struct {
	fbRegion
	dst        *hostFramebuffer
	dstX, dstY int
	top        int16
}

func newScrollPane(dst *hostFramebuffer, x, y int, w, h int16) *scrollPane {
	ring := newHostFramebuffer(int(w), int(h))
	return &scrollPane{
		fbRegion: fbRegion{fb: ring, w: w, h: h},
		dst:      dst,
		dstX:     x,
		dstY:     y,
	}
}

func (p *scrollPane) SetScroll(line int16) {
	if p.h > 0 {
		p.top = ((line % p.h) + p.h) % p.h
	}
}

func (p *scrollPane) Display() error {
	ring := p.fbRegion.fb
	rowBytes := int(p.w) * 2

	ring.mu.Lock()
	defer ring.mu.Unlock()
	p.dst.mu.Lock()
	defer p.dst.mu.Unlock()
	for y := 0; y < int(p.h); y++ {
		dy := p.dstY + y
		if dy < 0 || dy >= p.dst.height {
			continue
		}
		src := ((y + int(p.top)) % int(p.h)) * ring.stride
		copy(p.dst.buf[dy*p.dst.stride+p.dstX*2:], ring.buf[src:src+rowBytes])
	}
	return nil
}
