package gameplay

import (
	"time"

	"eightcircuits/pkg/engine/clock"
	"eightcircuits/pkg/game/state"
)

// Advance feeds wall time to the session clock and runs one Step per fixed
// simulation step. It returns the number of steps run.
func Advance(g *state.Game, wall time.Duration) int {
	return g.Clock.Advance(wall, func(ft clock.FrameTime) {
		Step(g, ft)
	})
}

// Step runs one simulation step: held keys age, the avatar moves, the
// interaction manager dispatches, the live realm ticks and its feeds are
// collected. While loading only the progress bar moves.
func Step(g *state.Game, ft clock.FrameTime) {
	g.Held.Decay(ft.Delta)

	switch g.Phase {
	case state.PhaseLoading:
		AdvanceLoading(g, ft.Delta)
		return
	case state.PhasePaused:
		return
	}

	if g.Mode == state.ModePlayer {
		ApplyHeld(g)
		g.Player.Tick(ft.Delta)
	} else {
		orbit(g, ft.Delta)
	}
	// Proximity checks run in both modes; in orbit mode no key is held.
	g.Interactions.Tick(g.Player)
	g.Coordinator.Tick(ft)
	collectRealmFeeds(g)
}
