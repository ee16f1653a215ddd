// Package quantum is the Quantum-Nonlocal circuit: entangled pairs that
// drift, flicker and teleport, and answer a touch on either partner.
package quantum

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/leonelquinteros/gotext"
	"github.com/zyedidia/generic/mapset"

	"eightcircuits/pkg/engine/clock"
	"eightcircuits/pkg/engine/scene"
	"eightcircuits/pkg/engine/tasks"
	"eightcircuits/pkg/game/config"
	"eightcircuits/pkg/game/realm"
)

const (
	ID          = 7
	Name        = "Quantum-Nonlocal"
	Description = "Universal Consciousness and Non-Locality"
)

const (
	fieldHalf      = 40
	minHeight      = 1
	maxHeight      = 5
	pulsePeak      = 2
	breathMin      = 0.98
	breathMax      = 1.02
	breathStep     = 0.0005
	entangledGlow  = 0.6
	entangledScale = 1
)

var (
	primary   = scene.RGB(0x00, 0x00, 0x8b)
	secondary = scene.RGB(0x8a, 0x2b, 0xe2)
	accent    = scene.RGB(0xff, 0xd7, 0x00)
	void      = scene.RGB(0x00, 0x00, 0x11)
)

// Particle is one half of an entangled pair.
type Particle struct {
	ID      int
	Node    *scene.Node
	Partner *Particle

	trail     []mgl64.Vec3
	trailNode *scene.Node
}

// Trail returns the recent positions, oldest first.
func (p *Particle) Trail() []mgl64.Vec3 {
	return p.trail
}

// Realm is the Quantum-Nonlocal circuit.
type Realm struct {
	*realm.Base

	cfg config.QuantumConfig
	rng *rand.Rand

	particles  []*Particle
	flickered  mapset.Set[int]
	pulses     map[int]*tasks.Token
	symbol     *scene.Node
	breath     float64
	breathDir  float64
	teleports  int
	entangling int
}

// New creates the realm. Nothing is built until Setup.
func New(cfg config.QuantumConfig, rng *rand.Rand) *Realm {
	r := &Realm{cfg: cfg, rng: rng}
	r.Base = realm.NewBase(ID, Name, Description, r)
	r.Reset()
	return r
}

// Reset forgets the pairs and every pending pulse.
func (r *Realm) Reset() {
	r.particles = nil
	r.flickered = mapset.New[int]()
	r.pulses = make(map[int]*tasks.Token)
	r.symbol = nil
	r.breath = 1
	r.breathDir = 1
	r.teleports = 0
	r.entangling = 0
}

func (r *Realm) BuildEnvironment(s *scene.Scene) error {
	s.Sky = void
	s.Fog = scene.Fog{Color: void, Density: 0.001}
	return nil
}

func (r *Realm) BuildLighting(s *scene.Scene) error {
	s.Add(scene.Node{Kind: scene.KindLight, Tag: "ambient", Color: scene.RGB(0x22, 0x22, 0x44), Intensity: 0.5})
	s.Add(scene.Node{Kind: scene.KindLight, Tag: "directional", Position: mgl64.Vec3{1, 1, -1}, Color: scene.RGB(0x44, 0x66, 0x88), Intensity: 0.3})
	s.Add(scene.Node{Kind: scene.KindLight, Tag: "point", Position: mgl64.Vec3{20, 30, 20}, Color: primary, Intensity: 0.4})
	s.Add(scene.Node{Kind: scene.KindLight, Tag: "point", Position: mgl64.Vec3{-20, 30, -20}, Color: secondary, Intensity: 0.4})
	return nil
}

func (r *Realm) BuildObjects(s *scene.Scene) error {
	for i := 0; i < r.cfg.Pairs; i++ {
		a := r.newParticle(s, i*2)
		b := r.newParticle(s, i*2+1)
		a.Partner, b.Partner = b, a
		r.particles = append(r.particles, a, b)
	}
	r.symbol = s.Add(scene.Node{
		Kind:      scene.KindObject,
		Tag:       "integration",
		Glyph:     'A',
		Position:  mgl64.Vec3{0, 20, 0},
		Scale:     5,
		Color:     accent,
		Opacity:   0.2,
		Wireframe: true,
	})
	return nil
}

func (r *Realm) newParticle(s *scene.Scene, id int) *Particle {
	pos := r.randomPosition()
	return &Particle{
		ID: id,
		Node: s.Add(scene.Node{
			Kind:      scene.KindObject,
			Tag:       "entangled",
			Label:     fmt.Sprintf("particle-%d", id),
			Glyph:     'Q',
			Position:  pos,
			Scale:     entangledScale,
			Color:     secondary,
			Intensity: entangledGlow,
		}),
		trail: []mgl64.Vec3{pos},
		trailNode: s.Add(scene.Node{
			Kind:     scene.KindParticles,
			Tag:      "trail",
			Glyph:    '.',
			Position: pos,
			Color:    secondary,
			Count:    1,
			Opacity:  0.5 / float64(r.cfg.TrailLength),
		}),
	}
}

func (r *Realm) randomPosition() mgl64.Vec3 {
	return mgl64.Vec3{
		realm.RandRange(r.rng, -fieldHalf, fieldHalf),
		realm.RandRange(r.rng, minHeight, maxHeight),
		realm.RandRange(r.rng, -fieldHalf, fieldHalf),
	}
}

func (r *Realm) BuildParticles(s *scene.Scene) error {
	s.Add(scene.Node{
		Kind:     scene.KindParticles,
		Tag:      "stars",
		Glyph:    '.',
		Position: mgl64.Vec3{0, 50, 0},
		Scale:    200,
		Color:    accent,
		Count:    300,
		Opacity:  0.3,
	})
	return nil
}

// Simulate applies the nonlocal effects, then pulses the pairs in unison and
// records their trails.
func (r *Realm) Simulate(ft clock.FrameTime) {
	for _, p := range r.particles {
		r.nonlocal(p, ft)
	}
	for _, p := range r.particles {
		if _, busy := r.pulses[p.ID/2]; !busy {
			wave := math.Sin(ft.Elapsed*3 + float64(p.ID-p.ID%2))
			p.Node.Scale = entangledScale + 0.1*wave
			p.Node.Intensity = entangledGlow + 0.2*wave
		}
		r.record(p)
	}

	r.breath += breathStep * r.breathDir
	if r.breath > breathMax || r.breath < breathMin {
		r.breathDir = -r.breathDir
	}
	r.symbol.Scale = 5 * r.breath
}

func (r *Realm) nonlocal(p *Particle, ft clock.FrameTime) {
	if r.rng.Float64() < r.cfg.TeleportChance {
		p.Node.Position = r.randomPosition()
		r.teleports++
	}
	if r.rng.Float64() < r.cfg.FlickerChance {
		p.Node.Hidden = !p.Node.Hidden
		if p.Node.Hidden {
			r.flickered.Put(p.ID)
		} else {
			r.flickered.Remove(p.ID)
		}
	}
	phase := ft.Elapsed + float64(p.ID)
	p.Node.Position[0] += math.Sin(phase) * r.cfg.Displacement * ft.Delta
	p.Node.Position[2] += math.Cos(phase) * r.cfg.Displacement * ft.Delta
}

// record appends the current position to the bounded trail.
func (r *Realm) record(p *Particle) {
	p.trail = append(p.trail, p.Node.Position)
	if over := len(p.trail) - r.cfg.TrailLength; over > 0 {
		p.trail = append(p.trail[:0], p.trail[over:]...)
	}
	p.trailNode.Position = p.trail[0]
	p.trailNode.Count = len(p.trail)
	p.trailNode.Opacity = 0.5 * float64(len(p.trail)) / float64(r.cfg.TrailLength)
}

// HandleInteraction entangles the pair of the nearest particle within reach.
func (r *Realm) HandleInteraction(ev realm.Event) {
	if ev.Kind != realm.EventInteract {
		return
	}
	var nearest *Particle
	best := math.Inf(1)
	for _, p := range r.particles {
		if d := p.Node.Position.Sub(ev.Position).Len(); d < best {
			nearest, best = p, d
		}
	}
	if nearest == nil || best >= r.cfg.InteractRadius {
		return
	}
	r.Entangle(nearest)
}

// Entangle recolours p and its partner alike and swells both, then lets
// them settle back.
func (r *Realm) Entangle(p *Particle) {
	cr, cg, cb := realm.RandomColor(r.rng)
	c := scene.Color{R: cr, G: cg, B: cb}
	p.Node.Color, p.Partner.Node.Color = c, c
	r.entangling++

	pair := p.ID / 2
	if tok, ok := r.pulses[pair]; ok {
		tok.Cancel()
	}
	a, b := p.Node, p.Partner.Node
	r.pulses[pair] = r.Tasks().Spawn(tasks.Task{
		Name:     "entangle",
		Duration: r.cfg.PulseSeconds,
		Step: func(progress float64) {
			// Up for the first half, down for the second.
			swell := 1 - math.Abs(2*progress-1)
			a.Scale = entangledScale + (pulsePeak-entangledScale)*swell
			b.Scale = a.Scale
		},
		Done: func() {
			a.Scale, b.Scale = entangledScale, entangledScale
			delete(r.pulses, pair)
		},
	})
	r.Notify(gotext.Get("Particles %d and %d resonate together", p.ID, p.Partner.ID))
}

// Particles returns both halves of every pair.
func (r *Realm) Particles() []*Particle { return r.particles }

// Flickered reports whether the particle with id is currently hidden.
func (r *Realm) Flickered(id int) bool { return r.flickered.Has(id) }

// Status implements realm.StatusReporter.
func (r *Realm) Status() []string {
	return []string{
		gotext.Get("Entangled pairs %d  hidden %d", len(r.particles)/2, r.flickered.Size()),
		gotext.Get("Teleports %d  entanglements %d", r.teleports, r.entangling),
	}
}

// AmbientLevel follows how many particles are hidden.
func (r *Realm) AmbientLevel() float64 {
	if len(r.particles) == 0 {
		return 0
	}
	return 0.3 + 0.7*float64(r.flickered.Size())/float64(len(r.particles))
}
