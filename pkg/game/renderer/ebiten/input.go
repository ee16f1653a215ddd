package ebiten

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineinput "eightcircuits/pkg/engine/input"
	"eightcircuits/pkg/game/gameplay"
)

// windowKeys lists every key the window reports, with its binding code.
func windowKeys() []keyCode {
	keys := []keyCode{
		{ebiten.KeySpace, "space"},
		{ebiten.KeyShiftLeft, "shift"},
		{ebiten.KeyShiftRight, "shift"},
		{ebiten.KeyEnter, "enter"},
		{ebiten.KeyEscape, "escape"},
		{ebiten.KeyArrowUp, "arrow_up"},
		{ebiten.KeyArrowDown, "arrow_down"},
		{ebiten.KeyArrowLeft, "arrow_left"},
		{ebiten.KeyArrowRight, "arrow_right"},
		{ebiten.KeyF12, "f12"},
		{ebiten.KeyDigit1, "1"},
		{ebiten.KeyDigit2, "2"},
		{ebiten.KeyDigit3, "3"},
		{ebiten.KeyDigit4, "4"},
		{ebiten.KeyDigit5, "5"},
		{ebiten.KeyDigit6, "6"},
		{ebiten.KeyDigit7, "7"},
		{ebiten.KeyDigit8, "8"},
	}
	for k := ebiten.KeyA; k <= ebiten.KeyZ; k++ {
		keys = append(keys, keyCode{k, string(rune('a' + (k - ebiten.KeyA)))})
	}
	return keys
}

// Update handles input and advances the simulation (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	// Log window opening on first update (confirms window is actually running)
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		log.Printf("Main window opened successfully (%dx%d)", w, h)
	}

	g := e.g
	if g == nil || g.Quit {
		return ebiten.Termination
	}

	e.handleZoom()
	for _, kc := range e.keys {
		if inpututil.IsKeyJustPressed(kc.key) {
			e.press(engineinput.DeviceKeyboard, kc.code)
		} else if inpututil.IsKeyJustReleased(kc.key) {
			e.release(engineinput.DeviceKeyboard, kc.code)
		}
	}
	e.handlePointer()

	now := time.Now()
	gameplay.Advance(g, now.Sub(e.last))
	e.last = now

	if g.Quit {
		return ebiten.Termination
	}
	return nil
}

// intentFor runs a key code through the binding layers.
func intentFor(device engineinput.Device, code string) engineinput.Intent {
	return engineinput.MapToIntent(engineinput.NewDebouncedInput(engineinput.RawInput{
		Device:    device,
		Code:      code,
		Timestamp: time.Now(),
	}))
}

// press holds continuous controls until release; window keys report both edges.
func (e *EbitenRenderer) press(device engineinput.Device, code string) {
	gameplay.Dispatch(e.g, intentFor(device, code), 0)
}

func (e *EbitenRenderer) release(device engineinput.Device, code string) {
	intent := intentFor(device, code)
	if engineinput.IsContinuous(intent.Action) {
		gameplay.Release(e.g, intent.Action)
	}
}

// handlePointer turns the avatar while the left button drags.
func (e *EbitenRenderer) handlePointer() {
	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		e.dragging = true
		e.press(engineinput.DevicePointer, "pointer_left")
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		e.dragging = false
		e.release(engineinput.DevicePointer, "pointer_left")
	case e.dragging:
		dx, dy := x-e.lastCursor[0], y-e.lastCursor[1]
		if dx != 0 || dy != 0 {
			gameplay.Look(e.g, float64(dx), float64(dy))
		}
	}
	e.lastCursor = [2]int{x, y}
}

// handleZoom handles =/- for map scale adjustment
func (e *EbitenRenderer) handleZoom() {
	changed := false
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		if e.pixelsPerUnit < maxPixelsPerUnit {
			e.pixelsPerUnit += pixelsPerUnitStep
			changed = true
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		if e.pixelsPerUnit > minPixelsPerUnit {
			e.pixelsPerUnit -= pixelsPerUnitStep
			changed = true
		}
	}
	if changed {
		e.invalidateFontCache()
	}
}
