//go:build !tinygo && cgo

package hal

import (
	"image"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"keycalc/internal/buildinfo"
)

// RunWindow starts a desktop window that shows the LCD and the UART log and turns
// held keyboard keys into closed keypad switches. It blocks until the window closes.
func RunWindow(newApp func(HAL) func() error, sim SimConfig) error {
	h := newHostHAL(sim, os.Stderr)
	defer h.logger.sync()

	cols, rows := h.lcd.Size()
	scr := newHostScreen(cols, rows)
	h.logger.setTee(scr.log)

	step := newApp(h)

	g := &hostGame{h: h, scr: scr, step: step}
	ebiten.SetWindowTitle(buildinfo.Name + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(scr.fb.width*3, scr.fb.height*3)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	scr     *hostScreen
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
}

func (g *hostGame) Update() error {
	g.h.kbd.poll(g.h.matrix, g.h.sim)
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	lines, v := g.h.lcd.snapshot()
	g.scr.render(lines, v, g.h.led.lit())
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.scr.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.snapshotRGB565(g.scratch)

	src := g.scratch
	dst := g.img.Pix
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, gg, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = gg
		dst[j+2] = b
		dst[j+3] = 0xFF
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.scr.fb.width, g.scr.fb.height
}
