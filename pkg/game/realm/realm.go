// Package realm defines the contract every circuit environment implements and
// the shared lifecycle that backs it.
package realm

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"

	"eightcircuits/pkg/engine/clock"
	"eightcircuits/pkg/engine/scene"
	"eightcircuits/pkg/game/player"
)

// ErrSetupPanicked wraps a panic raised while building a realm.
var ErrSetupPanicked = errors.New("realm setup panicked")

// Realm is one themed environment with its own content and mini-simulation.
type Realm interface {
	ID() int
	Name() string
	Description() string

	// Setup builds the realm content once; later calls are no-ops.
	Setup() error
	// InstallFallback replaces any partial content with the minimal
	// fallback scene and marks the realm initialized.
	InstallFallback()
	// Tick advances animation and simulation state. It never blocks.
	Tick(ft clock.FrameTime)
	// SetVisible shows or hides the owned resources and marks the realm active or inactive.
	SetVisible(visible bool)
	// Dispose releases every owned resource; initialized reverts to false.
	Dispose()

	Initialized() bool
	Active() bool
	Scene() *scene.Scene
}

// EventKind discriminates interaction events.
type EventKind int

const (
	EventInteract EventKind = iota
	EventAction
)

// String returns the event kind as used in logs.
func (k EventKind) String() string {
	if k == EventAction {
		return "action"
	}
	return "interact"
}

// Event is a discrete interaction dispatched to the active realm.
type Event struct {
	Kind     EventKind
	Player   *player.Controller
	Position mgl64.Vec3
}

// Interactor is implemented by realms that react to interaction events.
type Interactor interface {
	HandleInteraction(ev Event)
}

// ProximityWatcher is implemented by realms that inspect the player every
// frame regardless of held keys.
type ProximityWatcher interface {
	CheckProximity(p *player.Controller)
}

// StatusReporter is implemented by realms that show HUD status lines.
type StatusReporter interface {
	Status() []string
}

// AmbientSource is implemented by realms whose ambient sound level follows
// their simulation, in the 0..1 range.
type AmbientSource interface {
	AmbientLevel() float64
}

// NoticeSource is implemented by realms that queue feedback lines for the
// HUD. Base implements it.
type NoticeSource interface {
	DrainNotices() []string
}

// Degradable is implemented by realms that can fall back to the placeholder
// scene. Base implements it.
type Degradable interface {
	Degraded() bool
}

// IsDegraded reports whether r shows the fallback scene. A degraded realm
// offers none of its optional capabilities: its content never finished
// building.
func IsDegraded(r Realm) bool {
	d, ok := r.(Degradable)
	return ok && d.Degraded()
}
