package gameplay

import (
	"math"

	engineinput "eightcircuits/pkg/engine/input"
	"eightcircuits/pkg/game/player"
	"eightcircuits/pkg/game/state"
)

// orbitSpeed is the orbit camera's turn rate in radians per second.
const orbitSpeed = 0.2

// ApplyHeld copies the held controls onto the avatar's input flags.
func ApplyHeld(g *state.Game) {
	h := g.Held
	g.Player.Keys = player.Keys{
		Forward:  h.Has(engineinput.ActionMoveForward),
		Backward: h.Has(engineinput.ActionMoveBackward),
		Left:     h.Has(engineinput.ActionMoveLeft),
		Right:    h.Has(engineinput.ActionMoveRight),
		Jump:     h.Has(engineinput.ActionJump),
		Sprint:   h.Has(engineinput.ActionSprint),
		Interact: h.Has(engineinput.ActionInteract),
		Action:   h.Has(engineinput.ActionAction),
		Look:     h.Has(engineinput.ActionLook),
	}
}

// Look applies a pointer drag of (dx, dy) pixels. It only turns the avatar
// while the drag button is held in player mode.
func Look(g *state.Game, dx, dy float64) {
	if g.Phase != state.PhasePlaying || g.Mode != state.ModePlayer {
		return
	}
	if !g.Held.Has(engineinput.ActionLook) {
		return
	}
	g.Player.Rotate(dx, dy)
}

// lookStep turns the avatar by one key step, for devices without a pointer.
func lookStep(g *state.Game, a engineinput.Action) {
	if g.Phase != state.PhasePlaying || g.Mode != state.ModePlayer {
		return
	}
	px := g.Config.Player.KeyLookPixels
	switch a {
	case engineinput.ActionLookLeft:
		g.Player.Rotate(-px, 0)
	case engineinput.ActionLookRight:
		g.Player.Rotate(px, 0)
	case engineinput.ActionLookUp:
		g.Player.Rotate(0, -px)
	case engineinput.ActionLookDown:
		g.Player.Rotate(0, px)
	}
}

// orbit turns the orbit camera around the origin.
func orbit(g *state.Game, dt float64) {
	g.OrbitAngle = math.Mod(g.OrbitAngle+orbitSpeed*dt, 2*math.Pi)
}
