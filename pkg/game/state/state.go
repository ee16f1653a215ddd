package state

import (
	"eightcircuits/pkg/engine/clock"
	"eightcircuits/pkg/engine/input"
	"eightcircuits/pkg/game/config"
	"eightcircuits/pkg/game/coordinator"
	"eightcircuits/pkg/game/interaction"
	"eightcircuits/pkg/game/menu"
	"eightcircuits/pkg/game/player"
	"eightcircuits/pkg/game/realm"
)

// Phase is the coarse state of a session.
type Phase int

// Session phases
const (
	PhaseLoading Phase = iota
	PhasePlaying
	PhasePaused
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// ControlMode selects what the movement keys drive.
type ControlMode int

// Control modes
const (
	ModePlayer ControlMode = iota
	ModeOrbit
)

func (m ControlMode) String() string {
	if m == ModeOrbit {
		return "orbit"
	}
	return "player"
}

// Feeds are the optional HUD and audio capabilities of the live realm,
// resolved once when it becomes active. Nil fields are absent capabilities.
type Feeds struct {
	Notices realm.NoticeSource
	Status  realm.StatusReporter
	Ambient realm.AmbientSource
}

// FeedsOf resolves the capabilities of r. A degraded realm has none.
func FeedsOf(r realm.Realm) Feeds {
	var f Feeds
	if r == nil || realm.IsDegraded(r) {
		return f
	}
	f.Notices, _ = r.(realm.NoticeSource)
	f.Status, _ = r.(realm.StatusReporter)
	f.Ambient, _ = r.(realm.AmbientSource)
	return f
}

// Sound receives the session's audio cues. It is nil when audio is off.
type Sound interface {
	SetAmbient(level float64)
	RealmEntered(id int)
	SetPaused(paused bool)
}

// MaxLoading is the loading progress at which the first realm opens.
const MaxLoading = 100

const maxMessages = 5

// Game represents one running session of the eight circuits
type Game struct {
	Phase Phase
	Mode  ControlMode

	Loading      int     // progress 0..MaxLoading
	LoadingTimer float64 // simulated seconds since the last loading step

	Config       config.Config
	Clock        *clock.Clock
	Held         *input.Held
	Player       *player.Controller
	Coordinator  *coordinator.Coordinator
	Interactions *interaction.Manager

	// Menu is the open overlay menu, nil while playing.
	Menu *menu.Menu

	Feeds Feeds
	Sound Sound

	Messages []string
	Status   []string // lines reported by the active realm
	Ambient  float64  // ambient sound level of the active realm, 0..1

	OrbitAngle float64 // camera angle around the origin in orbit mode
	Quit       bool
}

// NewGame creates a session in the loading phase. The caller wires the
// realm machinery in.
func NewGame(cfg config.Config) *Game {
	return &Game{
		Phase:    PhaseLoading,
		Mode:     ModePlayer,
		Config:   cfg,
		Clock:    clock.New(cfg.ClockStep(), cfg.Clock.MaxSteps),
		Held:     input.NewHeld(),
		Messages: make([]string, 0),
	}
}

// AddMessage adds a message to the game's message log. A message equal to
// the newest one is dropped so a held key does not flood the log.
func (g *Game) AddMessage(msg string) {
	if n := len(g.Messages); n > 0 && g.Messages[n-1] == msg {
		return
	}
	g.Messages = append(g.Messages, msg)

	// Keep only the last maxMessages
	if len(g.Messages) > maxMessages {
		g.Messages = g.Messages[len(g.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (g *Game) ClearMessages() {
	g.Messages = make([]string, 0)
}

// Playing reports whether the simulation is running.
func (g *Game) Playing() bool {
	return g.Phase == PhasePlaying
}

// ActiveName returns the display name of the live realm, or "".
func (g *Game) ActiveName() string {
	if g.Coordinator == nil {
		return ""
	}
	if r := g.Coordinator.Active(); r != nil {
		return r.Name()
	}
	return ""
}
