// Package void is the Meta Void circuit: a white space that slowly breaks
// down into glitches until the visitor stops it.
package void

import (
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/leonelquinteros/gotext"

	"eightcircuits/pkg/engine/clock"
	"eightcircuits/pkg/engine/scene"
	"eightcircuits/pkg/game/config"
	"eightcircuits/pkg/game/realm"
)

const (
	ID          = 8
	Name        = "Meta Void"
	Description = "Beyond Definition - The Unmanifest"
)

// Glitch probabilities per tick, each scaled by the instability.
const (
	recolorWeight = 0.1
	distortWeight = 0.05
	fogWeight     = 0.02
	skyWeight     = 0.02
	distortJitter = 1
)

// Remnant glyphs of the other circuits drift through the void.
var remnants = []rune{'F', 'W', 'S', '*', 'O', '@', 'Q', '#'}

var white = scene.Color{R: 1, G: 1, B: 1}

// Realm is the Meta Void circuit.
type Realm struct {
	*realm.Base

	cfg config.VoidConfig
	rng *rand.Rand

	shell       *scene.Node
	objects     []*scene.Node
	instability float64
	stopped     bool
	glitches    int

	// The switch flips once per press: held action events re-fire every
	// tick, so it stays latched until a tick passes without one.
	switchHeld    bool
	switchLatched bool
}

// New creates the realm. Nothing is built until Setup.
func New(cfg config.VoidConfig, rng *rand.Rand) *Realm {
	r := &Realm{cfg: cfg, rng: rng}
	r.Base = realm.NewBase(ID, Name, Description, r)
	r.Reset()
	return r
}

// Reset restores a stable, running void.
func (r *Realm) Reset() {
	r.shell = nil
	r.objects = nil
	r.instability = 0
	r.stopped = false
	r.glitches = 0
	r.switchHeld, r.switchLatched = false, false
}

func (r *Realm) BuildEnvironment(s *scene.Scene) error {
	s.Sky = white
	s.Fog = scene.Fog{Color: white, Density: 0.01}
	r.shell = s.Add(scene.Node{
		Kind:    scene.KindObject,
		Tag:     "shell",
		Glyph:   ' ',
		Scale:   100,
		Color:   white,
		Opacity: 0.5,
	})
	r.objects = append(r.objects, r.shell)
	return nil
}

func (r *Realm) BuildLighting(s *scene.Scene) error {
	s.Add(scene.Node{Kind: scene.KindLight, Tag: "ambient", Color: white, Intensity: 1})
	return nil
}

func (r *Realm) BuildObjects(s *scene.Scene) error {
	for i := 0; i < r.cfg.ObjectCount; i++ {
		r.objects = append(r.objects, s.Add(scene.Node{
			Kind:     scene.KindObject,
			Tag:      "remnant",
			Label:    fmt.Sprintf("remnant-%d", i),
			Glyph:    remnants[i%len(remnants)],
			Position: realm.ScatterDisc(r.rng, mgl64.Vec3{}, 30, realm.RandRange(r.rng, 1, 8)),
			Color:    scene.RGB(0xdd, 0xdd, 0xdd),
			Opacity:  0.6,
		}))
	}
	return nil
}

func (r *Realm) BuildParticles(*scene.Scene) error {
	return nil
}

// Simulate grows the instability and rolls each glitch. Nothing happens
// while stopped.
func (r *Realm) Simulate(ft clock.FrameTime) {
	r.switchLatched = r.switchHeld
	r.switchHeld = false
	if r.stopped {
		return
	}
	r.instability += r.cfg.InstabilityRate * ft.Delta
	r.glitch(r.Scene())
}

func (r *Realm) glitch(s *scene.Scene) {
	if len(r.objects) > 0 && r.rng.Float64() < r.instability*recolorWeight {
		r.objects[r.rng.Intn(len(r.objects))].Color = r.randomColor()
		r.glitches++
	}
	if len(r.objects) > 0 && r.rng.Float64() < r.instability*distortWeight {
		n := r.objects[r.rng.Intn(len(r.objects))]
		n.Position = n.Position.Add(mgl64.Vec3{
			realm.RandRange(r.rng, -distortJitter, distortJitter),
			realm.RandRange(r.rng, -distortJitter, distortJitter),
			realm.RandRange(r.rng, -distortJitter, distortJitter),
		})
		n.Scale = math.Max(0.1, n.Scale+realm.RandRange(r.rng, -distortJitter, distortJitter)*0.1)
		r.glitches++
	}
	if r.rng.Float64() < r.instability*fogWeight {
		s.Fog.Color = r.randomColor()
		r.glitches++
	}
	if r.rng.Float64() < r.instability*skyWeight {
		s.Sky = r.randomColor()
		r.shell.Color = s.Sky
		r.glitches++
	}
}

func (r *Realm) randomColor() scene.Color {
	cr, cg, cb := realm.RandomColor(r.rng)
	return scene.Color{R: cr, G: cg, B: cb}
}

// HandleInteraction toggles the stop switch when action is pressed, not on
// every tick it stays held. Interacting has no consequence beyond the log.
func (r *Realm) HandleInteraction(ev realm.Event) {
	switch ev.Kind {
	case realm.EventAction:
		r.switchHeld = true
		if r.switchLatched {
			return
		}
		r.switchLatched = true
		r.stopped = !r.stopped
		r.Notify(r.SwitchLabel())
	case realm.EventInteract:
		log.Printf("Interaction in the void at %.1f, %.1f, %.1f", ev.Position.X(), ev.Position.Y(), ev.Position.Z())
	}
}

// Stopped reports whether the breakdown is paused.
func (r *Realm) Stopped() bool { return r.stopped }

// Instability returns the accumulated breakdown; it is not bounded.
func (r *Realm) Instability() float64 { return r.instability }

// Glitches returns how many glitches fired since setup.
func (r *Realm) Glitches() int { return r.glitches }

// SwitchLabel is the caption of the stop switch.
func (r *Realm) SwitchLabel() string {
	if r.stopped {
		return gotext.Get("Paused")
	}
	return gotext.Get("WOW!!!")
}

// Status implements realm.StatusReporter.
func (r *Realm) Status() []string {
	return []string{
		gotext.Get("Instability %.3f  glitches %d", r.instability, r.glitches),
		gotext.Get("[F] %s", r.SwitchLabel()),
	}
}

// AmbientLevel follows the instability, saturating at 1 and silent while stopped.
func (r *Realm) AmbientLevel() float64 {
	if r.stopped {
		return 0
	}
	return math.Min(1, r.instability)
}
