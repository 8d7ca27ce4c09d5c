//go:build !tinygo && cgo

package hal

import "github.com/hajimehoshi/ebiten/v2"

type keyChar struct {
	key     ebiten.Key
	plain   rune
	shifted rune
}

// keyChars maps physical keys to keypad characters for a US layout.
var keyChars = []keyChar{
	{ebiten.KeyDigit0, '0', 0},
	{ebiten.KeyDigit1, '1', 0},
	{ebiten.KeyDigit2, '2', 0},
	{ebiten.KeyDigit3, '3', 0},
	{ebiten.KeyDigit4, '4', 0},
	{ebiten.KeyDigit5, '5', 0},
	{ebiten.KeyDigit6, '6', 0},
	{ebiten.KeyDigit7, '7', 0},
	{ebiten.KeyDigit8, '8', '*'},
	{ebiten.KeyDigit9, '9', 0},
	{ebiten.KeyEqual, '=', '+'},
	{ebiten.KeyMinus, '-', 0},
	{ebiten.KeySlash, '/', 0},
	{ebiten.KeyEnter, '=', '='},
	{ebiten.KeyC, 'C', 'C'},
	{ebiten.KeyEscape, 'C', 'C'},
	{ebiten.KeyBackspace, 'C', 'C'},
	{ebiten.KeyNumpad0, '0', '0'},
	{ebiten.KeyNumpad1, '1', '1'},
	{ebiten.KeyNumpad2, '2', '2'},
	{ebiten.KeyNumpad3, '3', '3'},
	{ebiten.KeyNumpad4, '4', '4'},
	{ebiten.KeyNumpad5, '5', '5'},
	{ebiten.KeyNumpad6, '6', '6'},
	{ebiten.KeyNumpad7, '7', '7'},
	{ebiten.KeyNumpad8, '8', '8'},
	{ebiten.KeyNumpad9, '9', '9'},
	{ebiten.KeyNumpadAdd, '+', '+'},
	{ebiten.KeyNumpadSubtract, '-', '-'},
	{ebiten.KeyNumpadMultiply, '*', '*'},
	{ebiten.KeyNumpadDivide, '/', '/'},
	{ebiten.KeyNumpadEnter, '=', '='},
	{ebiten.KeyNumpadEqual, '=', '='},
}

type hostKeyboard struct {
	heldKeys
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{}
}

// poll closes the switch of every keypad character whose key is held down.
func (k *hostKeyboard) poll(m *Matrix, sim SimConfig) {
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)

	now := make(map[rune]bool)
	for _, kc := range keyChars {
		if !ebiten.IsKeyPressed(kc.key) {
			continue
		}
		r := kc.plain
		if shift {
			r = kc.shifted
		}
		if r != 0 {
			now[r] = true
		}
	}
	k.update(m, sim, now)
}
