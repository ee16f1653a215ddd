package gameplay

import (
	"fmt"
	"math"

	"eightcircuits/pkg/game/state"
)

// Header returns the title line of the HUD, with markup.
func Header(g *state.Game) string {
	if g.Phase == state.PhaseLoading {
		return "GT{Loading the eight circuits}"
	}
	r := g.Coordinator.Active()
	if r == nil {
		return ""
	}
	return fmt.Sprintf("REALM{%d %s}  SUBTLE{%s}", r.ID(), r.Name(), r.Description())
}

// Hints returns the control reminders for the current phase and mode, with
// markup. Front-ends show them under the status lines.
func Hints(g *state.Game) []string {
	switch g.Phase {
	case state.PhaseLoading:
		return []string{"KEY{L} skip loading  KEY{Q} quit"}
	case state.PhasePaused:
		return nil
	}
	if g.Mode == state.ModeOrbit {
		return []string{
			"KEY{1}-KEY{8} circuits  KEY{Esc} menu  KEY{T} walk  KEY{Q} quit",
		}
	}
	return []string{
		"KEY{WASD} move  KEY{Space} jump  KEY{Shift} sprint  KEY{E} interact  KEY{F} action",
		"KEY{1}-KEY{8} circuits  KEY{Esc} menu  KEY{T} orbit  KEY{Q} quit",
	}
}

// PlayerLine describes the avatar for the HUD.
func PlayerLine(g *state.Game) string {
	if g.Mode == state.ModeOrbit {
		return fmt.Sprintf("orbit %.0f°", g.OrbitAngle*180/math.Pi)
	}
	p := g.Player.Position()
	yaw, pitch := g.Player.Rotation()
	return fmt.Sprintf("pos %.1f %.1f %.1f  yaw %.2f pitch %.2f", p.X(), p.Y(), p.Z(), yaw, pitch)
}
