// Package neurogenetic is the Neurogenetic circuit: rotating DNA helices,
// drifting information streams and three evolution choices.
package neurogenetic

import (
	"fmt"
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
	ID          = 6
	Name        = "Neurogenetic"
	Description = "Future Evolution and the Expansion of Consciousness"
)

const (
	helixHeight  = 50
	helixSamples = 24
	streamPoints = 30
	choiceHeight = 2
)

// Choice is one of the evolution paths the visitor can take.
type Choice int

const (
	// ChoiceMutate recolours every DNA helix.
	ChoiceMutate Choice = iota
	// ChoiceAccelerate doubles the speed of the information streams.
	ChoiceAccelerate
	// ChoiceExpand adds a batch of particles.
	ChoiceExpand
	choiceCount
)

func (c Choice) String() string {
	switch c {
	case ChoiceMutate:
		return "mutate"
	case ChoiceAccelerate:
		return "accelerate"
	case ChoiceExpand:
		return "expand"
	default:
		return "unknown"
	}
}

var (
	primary   = scene.RGB(0x00, 0xbf, 0xff)
	secondary = scene.RGB(0x32, 0xcd, 0x32)
	silver    = scene.RGB(0xc0, 0xc0, 0xc0)
	gold      = scene.RGB(0xff, 0xd7, 0x00)
	backbone  = scene.RGB(0x40, 0xe0, 0xd0)
	mutated   = scene.RGB(0xff, 0x00, 0x00)
	sky       = scene.RGB(0x11, 0x11, 0x22)

	// T, G, C, A; a base pairs with the one two steps along.
	nucleotides = []struct {
		glyph rune
		color scene.Color
	}{
		{'T', scene.RGB(0x80, 0x80, 0x80)},
		{'G', scene.RGB(0x00, 0xff, 0x00)},
		{'C', scene.RGB(0x00, 0x00, 0xff)},
		{'A', scene.RGB(0xff, 0x8c, 0x00)},
	}
)

// helix is one double strand. Its parts orbit the centre as it rotates.
type helix struct {
	center mgl64.Vec3
	angle  float64
	parts  []*scene.Node
	local  []mgl64.Vec3
}

type stream struct {
	node   *scene.Node
	base   []mgl64.Vec3
	speed  float64
	offset float64
}

// Realm is the Neurogenetic circuit.
type Realm struct {
	*realm.Base

	cfg config.NeurogeneticConfig
	rng *rand.Rand

	helices []*helix
	streams []*stream
	choices []*scene.Node
	batches []*scene.Node
	taken   [choiceCount]int
}

// New creates the realm. Nothing is built until Setup.
func New(cfg config.NeurogeneticConfig, rng *rand.Rand) *Realm {
	r := &Realm{cfg: cfg, rng: rng}
	r.Base = realm.NewBase(ID, Name, Description, r)
	r.Reset()
	return r
}

// Reset forgets the built content and the choices taken.
func (r *Realm) Reset() {
	r.helices = nil
	r.streams = nil
	r.choices = nil
	r.batches = nil
	r.taken = [choiceCount]int{}
}

func (r *Realm) BuildEnvironment(s *scene.Scene) error {
	s.Sky = sky
	s.Fog = scene.Fog{Color: sky, Density: 0.008}
	s.Add(scene.Node{
		Kind:      scene.KindObject,
		Tag:       "grid",
		Glyph:     '+',
		Scale:     100,
		Color:     silver,
		Wireframe: true,
	})
	return nil
}

func (r *Realm) BuildLighting(s *scene.Scene) error {
	s.Add(scene.Node{Kind: scene.KindLight, Tag: "ambient", Color: scene.RGB(0x44, 0x44, 0x66), Intensity: 0.4})
	s.Add(scene.Node{Kind: scene.KindLight, Tag: "directional", Position: mgl64.Vec3{1, 1, 1}, Color: scene.RGB(0x88, 0xaa, 0xff), Intensity: 0.7})
	s.Add(scene.Node{Kind: scene.KindLight, Tag: "point", Position: mgl64.Vec3{-10, 15, -10}, Color: primary, Intensity: 0.6})
	s.Add(scene.Node{Kind: scene.KindLight, Tag: "point", Position: mgl64.Vec3{10, 15, 10}, Color: secondary, Intensity: 0.6})
	return nil
}

func (r *Realm) BuildObjects(s *scene.Scene) error {
	for i := 0; i < r.cfg.StrandCount; i++ {
		r.helices = append(r.helices, r.buildHelix(s, i))
	}
	for i := 0; i < int(choiceCount); i++ {
		r.choices = append(r.choices, s.Add(scene.Node{
			Kind:      scene.KindObject,
			Tag:       "choice",
			Label:     Choice(i).String(),
			Glyph:     '@',
			Position:  realm.RingPoint(i, int(choiceCount), r.cfg.ChoiceRadius, choiceHeight),
			Scale:     2,
			Color:     secondary,
			Intensity: 0.5,
		}))
	}
	for i := 0; i < r.cfg.StreamCount; i++ {
		st := &stream{
			speed:  realm.RandRange(r.rng, 0.02, 0.05),
			offset: r.rng.Float64() * 100,
		}
		for j := 0; j < streamPoints; j++ {
			st.base = append(st.base, mgl64.Vec3{
				realm.RandRange(r.rng, -30, 30),
				realm.RandRange(r.rng, -15, 15) + 5,
				realm.RandRange(r.rng, -30, 30),
			})
		}
		st.node = s.Add(scene.Node{
			Kind:     scene.KindObject,
			Tag:      "stream",
			Label:    fmt.Sprintf("stream-%d", i),
			Glyph:    '~',
			Position: st.base[0],
			Color:    silver,
			Opacity:  0.6,
		})
		r.streams = append(r.streams, st)
	}
	return nil
}

// buildHelix lays out two backbones and their base pairs around a random centre.
func (r *Realm) buildHelix(s *scene.Scene, i int) *helix {
	h := &helix{
		center: mgl64.Vec3{realm.RandRange(r.rng, -25, 25), 0, realm.RandRange(r.rng, -25, 25)},
		angle:  r.rng.Float64() * 2 * math.Pi,
	}
	radius := realm.RandRange(r.rng, 5, 7)
	twists := float64(3 + r.rng.Intn(3))
	add := func(local mgl64.Vec3, n scene.Node) {
		n.Kind = scene.KindObject
		n.Label = fmt.Sprintf("helix-%d", i)
		h.local = append(h.local, local)
		h.parts = append(h.parts, s.Add(n))
	}
	for j := 0; j < helixSamples; j++ {
		t := float64(j) / helixSamples
		angle := t * 2 * math.Pi * twists
		y := t*helixHeight - helixHeight/2
		a := mgl64.Vec3{math.Cos(angle) * radius, y, math.Sin(angle) * radius}
		b := mgl64.Vec3{-a.X(), y, -a.Z()}
		add(a, scene.Node{Tag: "backbone", Glyph: 'o', Color: backbone, Intensity: 0.2, Opacity: 0.8})
		add(b, scene.Node{Tag: "backbone", Glyph: 'o', Color: backbone, Intensity: 0.2, Opacity: 0.8})
		if j%2 == 0 {
			k := r.rng.Intn(len(nucleotides))
			base, pair := nucleotides[k], nucleotides[(k+2)%len(nucleotides)]
			add(a.Add(b).Mul(0.5), scene.Node{Tag: "base-pair", Glyph: base.glyph, Color: base.color, Intensity: 0.3, Opacity: 0.9})
			add(b.Mul(0.8), scene.Node{Tag: "nucleotide", Glyph: pair.glyph, Color: pair.color, Intensity: 0.3})
		}
	}
	h.place()
	return h
}

// place moves every part to its local offset rotated by the helix angle.
func (h *helix) place() {
	rot := mgl64.Rotate3DY(h.angle)
	for i, n := range h.parts {
		n.Position = h.center.Add(rot.Mul3x1(h.local[i]))
	}
}

func (r *Realm) BuildParticles(s *scene.Scene) error {
	r.addBatch(s)
	return nil
}

func (r *Realm) addBatch(s *scene.Scene) {
	r.batches = append(r.batches, s.Add(scene.Node{
		Kind:     scene.KindParticles,
		Tag:      "particles",
		Glyph:    '.',
		Position: mgl64.Vec3{realm.RandRange(r.rng, -5, 5), realm.RandRange(r.rng, 15, 25), realm.RandRange(r.rng, -5, 5)},
		Scale:    40,
		Color:    gold,
		Count:    r.cfg.ParticleBatch,
		Opacity:  0.6,
	}))
}

// Simulate rotates the helices, ripples the streams and pulses the choices.
func (r *Realm) Simulate(ft clock.FrameTime) {
	for _, h := range r.helices {
		h.angle += r.cfg.RotationSpeed * ft.Delta
		h.place()
	}
	for _, st := range r.streams {
		st.offset += ft.Delta * st.speed
		head := st.base[int(st.offset)%len(st.base)]
		st.node.Position = head.Add(mgl64.Vec3{
			math.Sin(st.offset) * 0.5,
			math.Cos(st.offset) * 0.3,
			math.Sin(st.offset*0.6) * 0.5,
		})
	}
	for i, c := range r.choices {
		c.Scale = 2 * (0.9 + 0.1*math.Sin(ft.Elapsed+float64(i)))
	}
	for i, b := range r.batches {
		b.Position[1] += math.Sin(ft.Elapsed+float64(i)) * 0.02
	}
}

// HandleInteraction takes the evolution choice nearest to the visitor when
// it is within reach.
func (r *Realm) HandleInteraction(ev realm.Event) {
	if ev.Kind != realm.EventInteract {
		return
	}
	best, bestDist := -1, math.Inf(1)
	for i, c := range r.choices {
		if d := c.Position.Sub(ev.Position).Len(); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 || bestDist >= r.cfg.InteractRadius {
		return
	}
	r.Choose(Choice(best))
}

// Choose applies the effect of c.
func (r *Realm) Choose(c Choice) {
	switch c {
	case ChoiceMutate:
		for _, h := range r.helices {
			for _, n := range h.parts {
				n.Color = mutated
			}
		}
		r.Notify(gotext.Get("The helices mutate"))
	case ChoiceAccelerate:
		for _, st := range r.streams {
			st.speed *= 2
		}
		r.Notify(gotext.Get("Information flows faster"))
	case ChoiceExpand:
		r.addBatch(r.Scene())
		r.Notify(gotext.Get("Consciousness expands"))
	default:
		return
	}
	r.taken[c]++
}

// Taken returns how many times c was chosen.
func (r *Realm) Taken(c Choice) int {
	if c < 0 || c >= choiceCount {
		return 0
	}
	return r.taken[c]
}

// Status implements realm.StatusReporter.
func (r *Realm) Status() []string {
	return []string{
		gotext.Get("Choices: mutate %d  accelerate %d  expand %d",
			r.taken[ChoiceMutate], r.taken[ChoiceAccelerate], r.taken[ChoiceExpand]),
	}
}

// AmbientLevel rises with every batch of particles.
func (r *Realm) AmbientLevel() float64 {
	return math.Min(1, 0.2*float64(len(r.batches)))
}
