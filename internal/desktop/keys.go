package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/chaos-survival/internal/input"
)

// keyMap binds simulation keys to physical keys.
var keyMap = map[input.Key]ebiten.Key{
	input.KeyArrowLeft:  ebiten.KeyArrowLeft,
	input.KeyArrowRight: ebiten.KeyArrowRight,
	input.KeyArrowUp:    ebiten.KeyArrowUp,
	input.KeyArrowDown:  ebiten.KeyArrowDown,
	input.KeyW:          ebiten.KeyW,
	input.KeyA:          ebiten.KeyA,
	input.KeyS:          ebiten.KeyS,
	input.KeyD:          ebiten.KeyD,
	input.KeyQ:          ebiten.KeyQ,
	input.KeyE:          ebiten.KeyE,
	input.KeyZ:          ebiten.KeyZ,
	input.KeyC:          ebiten.KeyC,
}

// numberKeys select a player color on the title screen, in config.PlayerColors order.
var numberKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8,
}

// keyboard reads held keys straight from ebiten. Unlike a terminal, ebiten
// sees key-up events, so no hold window is needed.
type keyboard struct{}

// IsKeyDown implements input.KeyChecker.
func (keyboard) IsKeyDown(k input.Key) bool {
	ek, ok := keyMap[k]
	return ok && ebiten.IsKeyPressed(ek)
}

var _ input.KeyChecker = keyboard{}
