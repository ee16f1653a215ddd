// Package symbolic is the Symbolic circuit: floating symbols, text fragments
// and a small network of concepts that light up when explored.
package symbolic

import (
	"math"
	"math/rand"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/leonelquinteros/gotext"
	"github.com/zyedidia/generic/mapset"

	"eightcircuits/pkg/engine/clock"
	"eightcircuits/pkg/engine/scene"
	"eightcircuits/pkg/engine/tasks"
	"eightcircuits/pkg/game/config"
	"eightcircuits/pkg/game/locale"
	"eightcircuits/pkg/game/realm"
)

const (
	ID          = 3
	Name        = "Symbolic"
	Description = "Realm of language, symbols, and conceptual thinking"
)

const (
	conceptRadius = 15
	conceptHeight = 3
	lightHeight   = 12

	symbolGlow    = 0.5
	textOpacity   = 0.5
	symbolSeconds = 1
	revealSeconds = 2
)

var (
	primary   = scene.RGB(0x4b, 0x00, 0x82)
	secondary = scene.RGB(0xff, 0xff, 0xff)
	accent    = scene.RGB(0xff, 0xa5, 0x00)
)

type shape struct {
	glyph   rune
	meaning string
}

var shapes = []shape{
	{'#', "structure"},
	{'O', "wholeness"},
	{'A', "stability"},
	{'@', "cycle"},
	{'X', "expansion"},
}

var fragments = []string{
	"KNOWLEDGE", "LANGUAGE", "SYMBOL", "LOGIC", "REASON",
	"CONCEPT", "THOUGHT", "IDEA", "WORD", "MEANING",
}

type concept struct {
	name        string
	connections []string
}

var concepts = []concept{
	{"Language", []string{"Symbol", "Meaning"}},
	{"Symbol", []string{"Concept", "Knowledge"}},
	{"Logic", []string{"Reason", "Knowledge"}},
	{"Concept", []string{"Idea", "Thought"}},
	{"Knowledge", []string{"Meaning", "Logic"}},
}

type itemKind int

const (
	itemSymbol itemKind = iota
	itemText
	itemConcept
)

type item struct {
	kind        itemKind
	node        *scene.Node
	base        mgl64.Vec3
	text        string
	connections []string
}

// Realm is the Symbolic circuit.
type Realm struct {
	*realm.Base

	cfg config.SymbolicConfig
	rng *rand.Rand

	items    []*item
	concepts map[string]*item
	lights   []*scene.Node

	highlighted mapset.Set[scene.NodeID]
	highlights  map[scene.NodeID]*tasks.Token
	explored    string
}

// New creates the realm. Nothing is built until Setup.
func New(cfg config.SymbolicConfig, rng *rand.Rand) *Realm {
	r := &Realm{cfg: cfg, rng: rng}
	r.Base = realm.NewBase(ID, Name, Description, r)
	r.Reset()
	return r
}

// Reset forgets the built network.
func (r *Realm) Reset() {
	r.items = nil
	r.concepts = make(map[string]*item)
	r.lights = nil
	r.highlighted = mapset.New[scene.NodeID]()
	r.highlights = make(map[scene.NodeID]*tasks.Token)
	r.explored = ""
}

func (r *Realm) BuildEnvironment(s *scene.Scene) error {
	s.Sky = scene.RGB(0x0a, 0x00, 0x1a)
	s.Fog = scene.Fog{Color: primary, Density: 0.01}
	s.Add(scene.Node{
		Kind:      scene.KindObject,
		Tag:       "grid",
		Glyph:     '+',
		Scale:     r.cfg.FieldRadius * 2,
		Color:     primary,
		Wireframe: true,
	})
	return nil
}

func (r *Realm) BuildLighting(s *scene.Scene) error {
	r.lights = append(r.lights, s.Add(scene.Node{
		Kind:      scene.KindLight,
		Tag:       "central",
		Position:  mgl64.Vec3{0, lightHeight, 0},
		Color:     primary,
		Intensity: 1,
	}))
	colors := []scene.Color{scene.RGB(0xff, 0x00, 0xff), scene.RGB(0x00, 0xff, 0xff), accent}
	for i, c := range colors {
		r.lights = append(r.lights, s.Add(scene.Node{
			Kind:      scene.KindLight,
			Tag:       "accent",
			Position:  realm.RingPoint(i, len(colors), 20, lightHeight),
			Color:     c,
			Intensity: 0.8,
		}))
	}
	return nil
}

func (r *Realm) BuildObjects(s *scene.Scene) error {
	half := r.cfg.FieldRadius / 2
	for i := 0; i < r.cfg.SymbolCount; i++ {
		sh := shapes[r.rng.Intn(len(shapes))]
		pos := mgl64.Vec3{
			realm.RandRange(r.rng, -half, half),
			realm.RandRange(r.rng, 1, 6),
			realm.RandRange(r.rng, -half, half),
		}
		r.track(itemSymbol, s.Add(scene.Node{
			Kind:      scene.KindObject,
			Tag:       "symbol",
			Label:     sh.meaning,
			Glyph:     sh.glyph,
			Position:  pos,
			Color:     primary,
			Intensity: symbolGlow,
			Opacity:   0.8,
			Wireframe: true,
		}), sh.meaning, nil)
	}

	for i := 0; i < r.cfg.TextCount; i++ {
		word := fragments[i%len(fragments)]
		pos := mgl64.Vec3{
			realm.RandRange(r.rng, -half*0.8, half*0.8),
			realm.RandRange(r.rng, 2, 8),
			realm.RandRange(r.rng, -half*0.8, half*0.8),
		}
		r.track(itemText, s.Add(scene.Node{
			Kind:     scene.KindObject,
			Tag:      "text",
			Label:    word,
			Glyph:    rune(word[0]),
			Position: pos,
			Color:    secondary,
			Opacity:  textOpacity,
		}), word, nil)
	}

	for i, c := range concepts {
		n := s.Add(scene.Node{
			Kind:      scene.KindObject,
			Tag:       "concept",
			Label:     c.name,
			Glyph:     rune(c.name[0]),
			Position:  realm.RingPoint(i, len(concepts), conceptRadius, conceptHeight),
			Color:     accent,
			Intensity: 0.7,
		})
		r.concepts[c.name] = r.track(itemConcept, n, c.name, c.connections)
	}

	for _, c := range concepts {
		from := r.concepts[c.name]
		for _, name := range c.connections {
			to, ok := r.concepts[name]
			if !ok {
				continue
			}
			s.Add(scene.Node{
				Kind:     scene.KindObject,
				Tag:      "link",
				Label:    c.name + "-" + name,
				Glyph:    '-',
				Position: from.base.Add(to.base).Mul(0.5),
				Color:    secondary,
				Opacity:  0.5,
			})
		}
	}
	return nil
}

func (r *Realm) track(kind itemKind, n *scene.Node, text string, connections []string) *item {
	it := &item{kind: kind, node: n, base: n.Position, text: text, connections: connections}
	r.items = append(r.items, it)
	return it
}

func (r *Realm) BuildParticles(s *scene.Scene) error {
	for _, it := range r.items {
		if it.kind != itemText {
			continue
		}
		s.Add(scene.Node{
			Kind:     scene.KindParticles,
			Tag:      "letters",
			Glyph:    '.',
			Position: it.base,
			Scale:    float64(len(it.text)) * 0.5,
			Color:    secondary,
			Count:    len(it.text) * 20,
			Opacity:  0.5,
		})
	}
	return nil
}

// Simulate floats symbols, shimmers text and pulses concepts and lights.
func (r *Realm) Simulate(ft clock.FrameTime) {
	t := ft.Elapsed
	for _, it := range r.items {
		n := it.node
		lit := r.highlighted.Has(n.ID)
		switch it.kind {
		case itemSymbol:
			n.Position[1] = it.base.Y() + math.Sin(t+it.base.X())*0.5
		case itemText:
			if !lit {
				n.Opacity = textOpacity + math.Sin(t*2)*0.3
			}
		case itemConcept:
			n.Scale = 1 + 0.1*math.Sin(t*3+it.base.X())
			if !lit {
				n.Intensity = 0.5 + 0.3*math.Sin(t*2+it.base.Z())
			}
		}
	}
	for i, l := range r.lights {
		l.Intensity = 0.6 + 0.4*math.Sin(2*t+float64(i))
		l.Position[1] = lightHeight + math.Sin(t+float64(i))*2
	}
}

// HandleInteraction explores the first interactive item within reach.
func (r *Realm) HandleInteraction(ev realm.Event) {
	if ev.Kind != realm.EventInteract {
		return
	}
	for _, it := range r.items {
		if it.node.Position.Sub(ev.Position).Len() < r.cfg.InteractRadius {
			r.explore(it)
			return
		}
	}
}

func (r *Realm) explore(it *item) {
	n := it.node
	switch it.kind {
	case itemSymbol:
		r.highlight(n, symbolSeconds, func() { n.Intensity = 2 }, func() { n.Intensity = symbolGlow })
		r.Notify(gotext.Get("Symbol of %s", locale.Word(it.text)))
	case itemText:
		r.highlight(n, revealSeconds,
			func() { n.Opacity, n.Scale = 1, 2 },
			func() { n.Opacity, n.Scale = textOpacity, 1 })
		r.Notify(gotext.Get("Revealed: %s", it.text))
	case itemConcept:
		r.lightConcept(it)
		for _, name := range it.connections {
			if linked, ok := r.concepts[name]; ok {
				r.lightConcept(linked)
			}
		}
		r.explored = it.text
		r.Notify(gotext.Get("%s connects to %s", locale.Word(it.text), strings.Join(it.connections, ", ")))
	}
}

func (r *Realm) lightConcept(it *item) {
	n := it.node
	r.highlight(n, revealSeconds,
		func() { n.Color, n.Intensity = secondary, 1 },
		func() { n.Color = accent })
}

// highlight applies on now and restores with off after seconds. A repeated
// highlight restarts the timer instead of stacking.
func (r *Realm) highlight(n *scene.Node, seconds float64, on, off func()) {
	id := n.ID
	if tok, ok := r.highlights[id]; ok {
		tok.Cancel()
	}
	on()
	r.highlighted.Put(id)
	r.highlights[id] = r.Tasks().Spawn(tasks.Task{
		Name:     "highlight",
		Duration: seconds,
		Done: func() {
			off()
			r.highlighted.Remove(id)
			delete(r.highlights, id)
		},
	})
}

// Highlighted reports whether the node is currently lit by exploration.
func (r *Realm) Highlighted(id scene.NodeID) bool {
	return r.highlighted.Has(id)
}

// Status implements realm.StatusReporter.
func (r *Realm) Status() []string {
	if r.explored == "" {
		return []string{gotext.Get("Approach a concept and press E")}
	}
	return []string{gotext.Get("Exploring: %s", locale.Word(r.explored))}
}
