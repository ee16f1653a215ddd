// Package gameplay provides the session logic: loading, realm switching,
// menus, control modes and the per-frame step.
package gameplay

import (
	"fmt"
	"log"

	engineinput "eightcircuits/pkg/engine/input"
	"eightcircuits/pkg/game/config"
	"eightcircuits/pkg/game/coordinator"
	"eightcircuits/pkg/game/interaction"
	"eightcircuits/pkg/game/player"
	"eightcircuits/pkg/game/realm"
	"eightcircuits/pkg/game/realms"
	"eightcircuits/pkg/game/renderer"
	"eightcircuits/pkg/game/state"
)

// FirstRealm opens when loading completes.
const FirstRealm = 1

// BuildGame creates a session: the avatar, the interaction manager and a
// coordinator with all eight circuits registered and constructed but not
// yet built. The session starts in the loading phase.
func BuildGame(cfg config.Config) (*state.Game, error) {
	if err := applyBindings(cfg.Controls); err != nil {
		return nil, err
	}

	g := state.NewGame(cfg)
	g.Player = player.New(cfg.PlayerSettings())
	g.Interactions = interaction.New()
	g.Coordinator = coordinator.New(g.Interactions)
	g.Coordinator.OnTransition = func(from, to realm.Realm) {
		onTransition(g, from, to)
	}

	if err := realms.RegisterAll(g.Coordinator, cfg); err != nil {
		return nil, fmt.Errorf("build game: %w", err)
	}
	g.Coordinator.PrepareAll()

	logMessage(g, "Welcome to the eight circuits.")
	logMessage(g, "Press KEY{L} to skip loading.")
	return g, nil
}

// Shutdown releases every realm.
func Shutdown(g *state.Game) {
	g.Menu = nil
	g.Coordinator.DisposeAll()
	g.Feeds = state.Feeds{}
	log.Printf("Session closed after %.1fs", g.Clock.Elapsed())
}

// applyBindings rebinds actions named in the configuration.
func applyBindings(controls map[string]string) error {
	for name, code := range controls {
		action, ok := engineinput.ActionByName(name)
		if !ok {
			return fmt.Errorf("controls: unknown action %q", name)
		}
		engineinput.SetSingleBinding(action, code)
	}
	return nil
}

// onTransition resolves the new realm's capabilities and announces it.
func onTransition(g *state.Game, from, to realm.Realm) {
	g.Feeds = state.FeedsOf(to)
	g.Held.Reset()
	if from != nil {
		log.Printf("Realm %d -> %d", from.ID(), to.ID())
	} else {
		log.Printf("Realm %d opened", to.ID())
	}
	if g.Sound != nil {
		g.Sound.RealmEntered(to.ID())
	}
	logMessage(g, "Entered REALM{%s}", to.Name())
	if realm.IsDegraded(to) {
		logMessage(g, "WARN{This circuit failed to build and shows a placeholder.}")
	}
}

// logMessage formats a message with markup and adds it to the log.
func logMessage(g *state.Game, msg string, a ...any) {
	g.AddMessage(renderer.ApplyMarkup(msg, a...))
}
