// Package interaction turns held interaction keys into discrete events for the active realm.
package interaction

import (
	"log"

	"eightcircuits/pkg/game/player"
	"eightcircuits/pkg/game/realm"
)

// Manager forwards interaction events to the active realm.
type Manager struct {
	active  realm.Realm
	handle  func(ev realm.Event)
	watcher realm.ProximityWatcher

	dispatched int
}

// New creates a manager with no active realm.
func New() *Manager {
	return &Manager{handle: func(realm.Event) {}}
}

// SetActive binds the manager to r. The realm's optional capabilities are
// resolved here once, so Tick never looks them up. A degraded realm gets
// the no-op handler and no watcher.
func (m *Manager) SetActive(r realm.Realm) {
	m.active = r
	m.handle = func(realm.Event) {}
	m.watcher = nil
	if r == nil || realm.IsDegraded(r) {
		return
	}
	if h, ok := r.(realm.Interactor); ok {
		m.handle = h.HandleInteraction
	}
	if w, ok := r.(realm.ProximityWatcher); ok {
		m.watcher = w
	}
}

// Active returns the realm events are forwarded to.
func (m *Manager) Active() realm.Realm {
	return m.active
}

// Dispatched returns the number of events forwarded so far.
func (m *Manager) Dispatched() int {
	return m.dispatched
}

// Tick inspects the player's held keys and dispatches interact and action
// events. Both may fire in the same tick. Held keys re-fire every tick.
func (m *Manager) Tick(p *player.Controller) {
	if m.active == nil || p == nil {
		return
	}
	if m.watcher != nil {
		m.guard("proximity", func() { m.watcher.CheckProximity(p) })
	}
	if p.Keys.Interact {
		m.dispatch(realm.Event{Kind: realm.EventInteract, Player: p, Position: p.Position()})
	}
	if p.Keys.Action {
		m.dispatch(realm.Event{Kind: realm.EventAction, Player: p, Position: p.Position()})
	}
}

func (m *Manager) dispatch(ev realm.Event) {
	m.dispatched++
	m.guard(ev.Kind.String(), func() { m.handle(ev) })
}

// guard runs fn and logs a panic instead of letting it end the frame.
func (m *Manager) guard(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Realm %d %s handler failed: %v", m.active.ID(), what, r)
		}
	}()
	fn()
}
