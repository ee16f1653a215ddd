package realm

import (
	"fmt"

	"eightcircuits/pkg/engine/clock"
	"eightcircuits/pkg/engine/scene"
	"eightcircuits/pkg/engine/tasks"
)

// DefaultAmbientIntensity is the ambient light added when the lighting stage adds none.
const DefaultAmbientIntensity = 0.3

// Content is the realm-specific half of a realm: its four build stages and
// its per-frame simulation.
type Content interface {
	BuildEnvironment(s *scene.Scene) error
	BuildLighting(s *scene.Scene) error
	BuildObjects(s *scene.Scene) error
	BuildParticles(s *scene.Scene) error
	Simulate(ft clock.FrameTime)
}

// Resetter is implemented by content that must clear its private state when disposed.
type Resetter interface {
	Reset()
}

// Base implements the lifecycle shared by every realm. Concrete realms embed
// it and pass themselves as the Content.
type Base struct {
	id          int
	name        string
	description string

	content Content
	scene   *scene.Scene
	tasks   tasks.Runner

	initialized bool
	active      bool
	degraded    bool
	setupRuns   int

	notices []string
}

// NewBase creates an uninitialized, inactive realm.
func NewBase(id int, name, description string, content Content) *Base {
	return &Base{
		id:          id,
		name:        name,
		description: description,
		content:     content,
		scene:       scene.New(),
	}
}

func (b *Base) ID() int             { return b.id }
func (b *Base) Name() string        { return b.name }
func (b *Base) Description() string { return b.description }
func (b *Base) Initialized() bool   { return b.initialized }
func (b *Base) Active() bool        { return b.active }

// Scene returns the owned scene graph.
func (b *Base) Scene() *scene.Scene { return b.scene }

// Degraded reports whether the realm runs on the fallback scene.
func (b *Base) Degraded() bool { return b.degraded }

// SetupRuns returns how many times the build stages were started.
func (b *Base) SetupRuns() int { return b.setupRuns }

// Tasks returns the cosmetic task runner owned by this realm.
func (b *Base) Tasks() *tasks.Runner { return &b.tasks }

// Notify queues a short feedback line for the HUD message log.
func (b *Base) Notify(msg string) {
	b.notices = append(b.notices, msg)
}

// DrainNotices returns and clears the queued feedback lines.
func (b *Base) DrainNotices() []string {
	out := b.notices
	b.notices = nil
	return out
}

// Setup runs the build stages in order: environment, lighting, objects,
// particles. Panics are converted to errors wrapping ErrSetupPanicked.
func (b *Base) Setup() (err error) {
	if b.initialized {
		return nil
	}
	b.setupRuns++

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("realm %d: %w: %v", b.id, ErrSetupPanicked, r)
		}
	}()

	stages := []struct {
		name  string
		build func(s *scene.Scene) error
	}{
		{"environment", b.content.BuildEnvironment},
		{"lighting", b.content.BuildLighting},
		{"objects", b.content.BuildObjects},
		{"particles", b.content.BuildParticles},
	}
	for _, stage := range stages {
		if err := stage.build(b.scene); err != nil {
			return fmt.Errorf("realm %d %s: %w", b.id, stage.name, err)
		}
		if stage.name == "lighting" && b.scene.Count(scene.KindLight) == 0 {
			b.scene.Add(scene.Node{
				Kind:      scene.KindLight,
				Tag:       "ambient",
				Color:     scene.Color{R: 1, G: 1, B: 1},
				Intensity: DefaultAmbientIntensity,
			})
		}
	}

	b.initialized = true
	b.scene.SetVisible(b.active)
	return nil
}

// InstallFallback swaps in the minimal fallback scene and marks the realm initialized.
func (b *Base) InstallFallback() {
	b.tasks.CancelAll()
	BuildFallbackScene(b.scene)
	b.degraded = true
	b.initialized = true
	b.scene.SetVisible(b.active)
}

// Tick advances cosmetic tasks and the realm simulation. Degraded realms
// only animate their fallback scene.
func (b *Base) Tick(ft clock.FrameTime) {
	if !b.initialized {
		return
	}
	b.tasks.Tick(ft.Delta)
	if b.degraded {
		spinFallback(b.scene, ft)
		return
	}
	b.content.Simulate(ft)
}

// SetVisible shows or hides the scene and tracks the active flag.
func (b *Base) SetVisible(visible bool) {
	b.active = visible
	b.scene.SetVisible(visible && b.initialized)
}

// Dispose releases the scene content and cancels in-flight tasks.
func (b *Base) Dispose() {
	b.tasks.CancelAll()
	b.scene.Clear()
	b.scene.SetVisible(false)
	if r, ok := b.content.(Resetter); ok {
		r.Reset()
	}
	b.notices = nil
	b.initialized = false
	b.active = false
	b.degraded = false
}
