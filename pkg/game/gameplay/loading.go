package gameplay

import (
	"eightcircuits/pkg/game/state"
)

// AdvanceLoading moves the progress bar by StepPercent for every
// IntervalSeconds of simulated time. The first realm opens at 100.
func AdvanceLoading(g *state.Game, dt float64) {
	if g.Phase != state.PhaseLoading {
		return
	}
	g.LoadingTimer += dt
	interval := g.Config.Loading.IntervalSeconds
	for g.LoadingTimer >= interval && g.Loading < state.MaxLoading {
		g.LoadingTimer -= interval
		g.Loading += g.Config.Loading.StepPercent
	}
	if g.Loading >= state.MaxLoading {
		finishLoading(g)
	}
}

// SkipLoading completes loading at once.
func SkipLoading(g *state.Game) {
	if g.Phase != state.PhaseLoading {
		return
	}
	finishLoading(g)
}

func finishLoading(g *state.Game) {
	g.Loading = state.MaxLoading
	g.LoadingTimer = 0
	g.Phase = state.PhasePlaying
	SwitchRealm(g, FirstRealm)
}
