package gameplay

import (
	"log"

	engineinput "eightcircuits/pkg/engine/input"
	"eightcircuits/pkg/game/devtools"
	gamemenu "eightcircuits/pkg/game/menu"
	"eightcircuits/pkg/game/player"
	"eightcircuits/pkg/game/state"
)

// Dispatch routes one key press from a front-end. Held controls go to the
// held-key state while the simulation runs: pulsed for ttl seconds when ttl
// is positive (terminal), pressed until Release otherwise (window).
// Everything else is a one-shot intent.
func Dispatch(g *state.Game, intent engineinput.Intent, ttl float64) {
	a := intent.Action
	if engineinput.IsContinuous(a) && g.Menu == nil {
		if ttl > 0 {
			g.Held.Pulse(a, ttl)
		} else {
			g.Held.Press(a)
		}
		return
	}
	ProcessIntent(g, intent)
}

// Release ends a held control pressed by Dispatch.
func Release(g *state.Game, a engineinput.Action) {
	g.Held.Release(a)
}

// ProcessIntent handles a high-level input intent from the tiered input system.
func ProcessIntent(g *state.Game, intent engineinput.Intent) {
	a := intent.Action
	switch a {
	case engineinput.ActionNone:
		return
	case engineinput.ActionQuit:
		g.Quit = true
		return
	}

	if g.Menu != nil {
		processMenuIntent(g, a)
		return
	}

	if id, ok := engineinput.RealmForAction(a); ok {
		if g.Phase == state.PhasePlaying {
			SwitchRealm(g, id)
		}
		return
	}

	switch a {
	case engineinput.ActionOpenMenu:
		if g.Phase == state.PhasePlaying {
			OpenMenu(g)
		}
	case engineinput.ActionSkipLoading:
		SkipLoading(g)
	case engineinput.ActionToggleControlMode:
		if g.Phase == state.PhasePlaying {
			ToggleControlMode(g)
		}
	case engineinput.ActionSceneDump:
		dumpScene(g)
	case engineinput.ActionLookLeft, engineinput.ActionLookRight, engineinput.ActionLookUp, engineinput.ActionLookDown:
		lookStep(g, a)
	}
}

// dumpScene writes the scene dump and an HTML screenshot of the live realm.
func dumpScene(g *state.Game) {
	if g.Phase == state.PhaseLoading {
		return
	}
	path, err := devtools.DumpSceneToFile(g)
	if err != nil {
		logMessage(g, "WARN{Scene dump failed: %v}", err)
		return
	}
	logMessage(g, "Scene dumped to STATUS{%s}", path)
	shot, err := devtools.SaveScreenshotHTML(g)
	if err != nil {
		logMessage(g, "WARN{Screenshot failed: %v}", err)
		return
	}
	logMessage(g, "Screenshot saved to STATUS{%s}", shot)
}

// SwitchRealm activates realm id. An unknown id leaves the current realm live.
func SwitchRealm(g *state.Game, id int) {
	if err := g.Coordinator.Activate(id); err != nil {
		logMessage(g, "WARN{No circuit %d}", id)
	}
}

// ToggleControlMode switches between driving the avatar and orbiting the
// scene. Returning to the avatar puts it back at its start.
func ToggleControlMode(g *state.Game) {
	g.Held.Reset()
	if g.Mode == state.ModePlayer {
		g.Mode = state.ModeOrbit
		g.Player.Keys = player.Keys{}
		logMessage(g, "Orbit camera. Press KEY{T} to walk again.")
		return
	}
	g.Mode = state.ModePlayer
	g.Player.Reset()
	logMessage(g, "Walking. Press KEY{T} to orbit.")
}

// OpenMenu pauses the simulation and opens the pause menu.
func OpenMenu(g *state.Game) {
	m, _ := gamemenu.NewGameplayMenu(g.Coordinator.ActiveID())
	pause(g, m)
}

func pause(g *state.Game, m *gamemenu.Menu) {
	g.Phase = state.PhasePaused
	g.Clock.SetPaused(true)
	g.Held.Reset()
	g.Player.Keys = player.Keys{}
	g.Menu = m
	if g.Sound != nil {
		g.Sound.SetPaused(true)
	}
}

func resume(g *state.Game) {
	g.Menu = nil
	g.Phase = state.PhasePlaying
	g.Clock.SetPaused(false)
	if g.Sound != nil {
		g.Sound.SetPaused(false)
	}
}

func processMenuIntent(g *state.Game, a engineinput.Action) {
	m := g.Menu
	switch a {
	case engineinput.ActionMenuUp, engineinput.ActionMoveForward:
		m.MoveUp()
	case engineinput.ActionMenuDown, engineinput.ActionMoveBackward:
		m.MoveDown()
	case engineinput.ActionMenuSelect, engineinput.ActionInteract, engineinput.ActionAction:
		m.Activate()
	case engineinput.ActionOpenMenu:
		m.Close()
	default:
		// Ignore other actions while in menu
	}
	if m.Closed() {
		menuClosed(g, m)
	}
}

// menuClosed applies the choice made in a menu that just closed.
func menuClosed(g *state.Game, m *gamemenu.Menu) {
	switch h := m.Handler().(type) {
	case *gamemenu.GameplayMenuHandler:
		switch h.GetSelectedAction() {
		case gamemenu.GameplayMenuActionControls:
			pause(g, gamemenu.NewBindingsMenu())
			return
		case gamemenu.GameplayMenuActionQuit:
			resume(g)
			g.Quit = true
			return
		case gamemenu.GameplayMenuActionRealm:
			resume(g)
			SwitchRealm(g, h.GetSelectedRealm())
			return
		}
		resume(g)
	case *gamemenu.BindingsMenuHandler:
		// Back to the pause menu.
		OpenMenu(g)
	default:
		log.Printf("Closed menu %q has no outcome", m.Title())
		resume(g)
	}
}
