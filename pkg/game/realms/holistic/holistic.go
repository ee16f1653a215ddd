// Package holistic is the Holistic-Intuitive circuit: a resonant node network
// with node patterns to complete and energy flows that branch and merge.
package holistic

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
	"eightcircuits/pkg/game/locale"
	"eightcircuits/pkg/game/realm"
)

const (
	ID          = 5
	Name        = "Holistic-Intuitive"
	Description = "Integration of all circuits, intuition, and wholeness"
)

const (
	flowSpeed       = 0.02
	mergeBridge     = 5
	echoChance      = 0.01
	echoSeconds     = 0.2
	burstParticles  = 200
	activeIntensity = 0.8
)

var (
	primary   = scene.RGB(0x87, 0xce, 0xeb)
	secondary = scene.RGB(0x98, 0xfb, 0x98)
	accent    = scene.RGB(0xda, 0x70, 0xd6)
	baseSky   = scene.RGB(0x22, 0x22, 0x33)
	lowRes    = scene.RGB(0x00, 0x00, 0xff)
	highRes   = scene.RGB(0xff, 0xd7, 0x00)
	echoes    = []scene.Color{scene.RGB(0xff, 0x66, 0x00), scene.RGB(0x8b, 0x45, 0x13), scene.RGB(0xff, 0xff, 0x00)}
)

// PatternKind distinguishes the two node puzzles.
type PatternKind int

const (
	// Sequence nodes must be touched in order.
	Sequence PatternKind = iota
	// Simultaneous nodes may be touched in any order until all are lit.
	Simultaneous
)

func (k PatternKind) String() string {
	if k == Simultaneous {
		return "simultaneous"
	}
	return "sequence"
}

// Pattern tracks progress over a fixed set of node indexes.
type Pattern struct {
	Kind      PatternKind
	Nodes     []int
	Completed bool

	next int
	lit  mapset.Set[int]
}

// Progress returns how many of the pattern's nodes are satisfied.
func (p *Pattern) Progress() int {
	if p.Kind == Sequence {
		return p.next
	}
	return p.lit.Size()
}

func (p *Pattern) reset() {
	p.Completed = false
	p.next = 0
	p.lit = mapset.New[int]()
}

// touch records a touch of node i and reports whether it advanced the pattern.
func (p *Pattern) touch(i int) bool {
	switch p.Kind {
	case Sequence:
		if p.next < len(p.Nodes) && p.Nodes[p.next] == i {
			p.next++
			p.Completed = p.next >= len(p.Nodes)
			return true
		}
	case Simultaneous:
		for _, n := range p.Nodes {
			if n == i && !p.lit.Has(i) {
				p.lit.Put(i)
				p.Completed = p.lit.Size() >= len(p.Nodes)
				return true
			}
		}
	}
	return false
}

func (p *Pattern) holds(i int) bool {
	if p.Kind == Sequence {
		for _, n := range p.Nodes[:p.next] {
			if n == i {
				return true
			}
		}
		return false
	}
	return p.lit.Has(i)
}

type flowVisual struct {
	line, spark *scene.Node
}

// Realm is the Holistic-Intuitive circuit.
type Realm struct {
	*realm.Base

	cfg config.HolisticConfig
	rng *rand.Rand

	nodes       []*scene.Node
	links       []*scene.Node
	patterns    []*Pattern
	resonance   float64
	completions int

	flows   *Arena
	visuals map[FlowID]flowVisual

	lights []*scene.Node
	echo   *tasks.Token
}

// New creates the realm. Nothing is built until Setup.
func New(cfg config.HolisticConfig, rng *rand.Rand) *Realm {
	r := &Realm{cfg: cfg, rng: rng}
	r.Base = realm.NewBase(ID, Name, Description, r)
	r.Reset()
	return r
}

// Reset forgets nodes, patterns and flows and zeroes resonance.
func (r *Realm) Reset() {
	r.nodes = nil
	r.links = nil
	r.patterns = nil
	r.resonance = 0
	r.completions = 0
	r.flows = NewArena(r.cfg.MaxFlows)
	r.visuals = make(map[FlowID]flowVisual)
	r.lights = nil
	r.echo = nil
}

func (r *Realm) BuildEnvironment(s *scene.Scene) error {
	s.Sky = baseSky
	s.Fog = scene.Fog{Color: baseSky, Density: 0.005}
	s.Add(scene.Node{
		Kind:  scene.KindObject,
		Tag:   "ground",
		Glyph: '.',
		Scale: r.cfg.FieldRadius * 2,
		Color: scene.RGB(0x22, 0x33, 0x22),
	})
	s.Add(scene.Node{
		Kind:      scene.KindObject,
		Tag:       "echo",
		Glyph:     'A',
		Position:  mgl64.Vec3{5, 10, -15},
		Scale:     2,
		Color:     accent,
		Opacity:   0.1,
		Wireframe: true,
	})
	return nil
}

func (r *Realm) BuildLighting(s *scene.Scene) error {
	s.Add(scene.Node{Kind: scene.KindLight, Tag: "ambient", Color: scene.RGB(0x44, 0x44, 0x66), Intensity: 0.5})
	r.lights = append(r.lights,
		s.Add(scene.Node{Kind: scene.KindLight, Tag: "point", Position: mgl64.Vec3{20, 30, 20}, Color: primary, Intensity: 0.8}),
		s.Add(scene.Node{Kind: scene.KindLight, Tag: "point", Position: mgl64.Vec3{-20, 30, -20}, Color: secondary, Intensity: 0.8}),
	)
	return nil
}

func (r *Realm) BuildObjects(s *scene.Scene) error {
	for i := 0; i < r.cfg.NodeCount; i++ {
		angle := float64(i) / float64(r.cfg.NodeCount) * 2 * math.Pi
		radius := realm.RandRange(r.rng, 10, 25)
		n := s.Add(scene.Node{
			Kind:      scene.KindObject,
			Tag:       "node",
			Label:     fmt.Sprintf("node-%d", i),
			Glyph:     'O',
			Position:  mgl64.Vec3{math.Cos(angle) * radius, 2 + math.Sin(angle*3), math.Sin(angle) * radius},
			Color:     secondary,
			Intensity: 0.6,
		})
		r.nodes = append(r.nodes, n)
		for j := 0; j < i; j++ {
			if r.rng.Float64() < r.cfg.ConnectionChance {
				r.connect(s, n, r.nodes[j])
			}
		}
	}
	if r.cfg.SequenceLength > len(r.nodes) || r.cfg.SimultaneousSize > len(r.nodes) {
		return fmt.Errorf("patterns need %d and %d nodes, only %d built",
			r.cfg.SequenceLength, r.cfg.SimultaneousSize, len(r.nodes))
	}
	r.patterns = []*Pattern{
		r.newPattern(Sequence, r.cfg.SequenceLength),
		r.newPattern(Simultaneous, r.cfg.SimultaneousSize),
	}
	return nil
}

func (r *Realm) connect(s *scene.Scene, a, b *scene.Node) {
	mid := a.Position.Add(b.Position).Mul(0.5)
	mid[1] = math.Max(a.Position.Y(), b.Position.Y()) + realm.RandRange(r.rng, 5, 15)
	r.links = append(r.links, s.Add(scene.Node{
		Kind:     scene.KindObject,
		Tag:      "link",
		Glyph:    '-',
		Position: mid,
		Scale:    b.Position.Sub(a.Position).Len(),
		Color:    secondary,
		Opacity:  0.4,
	}))
}

func (r *Realm) newPattern(kind PatternKind, size int) *Pattern {
	p := &Pattern{Kind: kind, Nodes: r.rng.Perm(len(r.nodes))[:size]}
	p.reset()
	return p
}

func (r *Realm) BuildParticles(s *scene.Scene) error {
	for i := 0; i < r.cfg.InitialFlows; i++ {
		r.addFlow(s, Flow{
			Path:   r.spiral(i),
			Speed:  flowSpeed * realm.RandRange(r.rng, 0.8, 1.2),
			Offset: r.rng.Float64(),
		})
	}
	return nil
}

// spiral samples the closed looping path of initial flow i.
func (r *Realm) spiral(i int) []mgl64.Vec3 {
	radius := realm.RandRange(r.rng, 15, 25)
	height := realm.RandRange(r.rng, 15, 25)
	loops := float64(1 + r.rng.Intn(3))
	n := r.cfg.FlowPoints
	path := make([]mgl64.Vec3, 0, n)
	for j := 0; j < n; j++ {
		t := float64(j) / float64(n)
		angle := t*2*math.Pi*loops + float64(i)*math.Pi/float64(r.cfg.InitialFlows)
		wobble := radius * (1 + 0.3*math.Sin(t*math.Pi*4))
		path = append(path, mgl64.Vec3{
			math.Cos(angle) * wobble,
			height + 10*math.Sin(t*math.Pi*2),
			math.Sin(angle) * wobble,
		})
	}
	return path
}

// addFlow stores f in the arena and gives it scene nodes. An evicted flow
// loses its nodes.
func (r *Realm) addFlow(s *scene.Scene, f Flow) FlowID {
	id, evicted := r.flows.Add(f)
	if evicted != 0 {
		r.dropVisual(s, evicted)
	}
	r.visuals[id] = flowVisual{
		line: s.Add(scene.Node{
			Kind:     scene.KindObject,
			Tag:      "flow",
			Label:    fmt.Sprintf("flow-%d", id),
			Glyph:    '~',
			Position: pointAt(f.Path, 0.5),
			Color:    primary,
			Opacity:  0.8,
		}),
		spark: s.Add(scene.Node{
			Kind:     scene.KindParticles,
			Tag:      "flow-particles",
			Glyph:    '*',
			Position: pointAt(f.Path, f.Offset),
			Color:    primary,
			Count:    50,
			Opacity:  0.3,
		}),
	}
	return id
}

func (r *Realm) dropVisual(s *scene.Scene, id FlowID) {
	v, ok := r.visuals[id]
	if !ok {
		return
	}
	s.Remove(v.line.ID)
	s.Remove(v.spark.ID)
	delete(r.visuals, id)
}

func (r *Realm) removeFlow(s *scene.Scene, id FlowID) {
	r.flows.Remove(id)
	r.dropVisual(s, id)
}

// Simulate animates flows and nodes, branches and merges flows, decays
// resonance and settles completed patterns.
func (r *Realm) Simulate(ft clock.FrameTime) {
	s := r.Scene()
	t := ft.Elapsed

	s.Fog.Density = 0.005 * (1 - r.resonance)
	for _, l := range r.links {
		l.Opacity = 0.2 + 0.2*math.Sin(t*3+l.Position.X())*(r.resonance+0.5)
	}
	for _, id := range r.flows.IDs() {
		f, _ := r.flows.Get(id)
		f.Offset = math.Mod(f.Offset+ft.Delta*f.Speed, 1)
		v := r.visuals[id]
		v.line.Opacity = 0.3 + r.resonance*0.5 + 0.2*math.Sin(t+f.Offset)
		v.spark.Position = pointAt(f.Path, f.Offset)
		v.spark.Opacity = 0.3 + r.resonance*0.7
	}

	r.branch(s)
	r.merge(s)

	for i, n := range r.nodes {
		n.Scale = 1 + 0.1*math.Sin(t*2+n.Position.X())
		if r.active(i) {
			n.Intensity = activeIntensity
		} else {
			n.Intensity = 0.3 + 0.2*math.Sin(t*3+n.Position.Z())
		}
	}

	r.echoes(s, t)

	r.resonance = math.Max(0, r.resonance-r.cfg.ResonanceDecay*ft.Delta)
	r.settlePatterns(s)
}

func (r *Realm) branch(s *scene.Scene) {
	for _, id := range r.flows.IDs() {
		f, ok := r.flows.Get(id)
		if !ok || f.Branches >= r.cfg.MaxBranches || r.rng.Float64() >= r.cfg.BranchChance {
			continue
		}
		at := r.rng.Intn(len(f.Path))
		path := append([]mgl64.Vec3(nil), f.Path[:at+1]...)
		for i := 0; i < r.cfg.FlowPoints/2; i++ {
			dir := mgl64.Vec3{r.rng.Float64() - 0.5, r.rng.Float64() - 0.5, r.rng.Float64() - 0.5}
			if dir.Len() == 0 {
				continue
			}
			step := dir.Normalize().Mul(realm.RandRange(r.rng, 3, 6))
			path = append(path, path[len(path)-1].Add(step))
		}
		child := Flow{
			Path:     resample(path, r.cfg.FlowPoints),
			Speed:    f.Speed * realm.RandRange(r.rng, 0.8, 1.2),
			Offset:   r.rng.Float64(),
			Branches: f.Branches + 1,
			Parent:   id,
		}
		f.Branches++
		r.addFlow(s, child)
	}
}

func (r *Realm) merge(s *scene.Scene) {
	ids := r.flows.IDs()
	merged := mapset.New[FlowID]()
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if merged.Has(ids[i]) || merged.Has(ids[j]) {
				continue
			}
			a, okA := r.flows.Get(ids[i])
			b, okB := r.flows.Get(ids[j])
			// A branch starts on its parent's path; it never folds straight back.
			if !okA || !okB || a.Parent == b.ID || b.Parent == a.ID {
				continue
			}
			ia, ib, dist := closestPoints(a.Path, b.Path)
			if dist < 0 || dist >= r.cfg.MergeDistance {
				continue
			}
			path := append([]mgl64.Vec3(nil), a.Path[:ia+1]...)
			for k := 0; k <= mergeBridge; k++ {
				w := float64(k) / mergeBridge
				path = append(path, a.Path[ia].Add(b.Path[ib].Sub(a.Path[ia]).Mul(w)))
			}
			path = append(path, b.Path[ib:]...)
			speed := (a.Speed + b.Speed) / 2
			merged.Put(ids[i])
			merged.Put(ids[j])
			r.removeFlow(s, ids[i])
			r.removeFlow(s, ids[j])
			r.addFlow(s, Flow{
				Path:   resample(path, r.cfg.FlowPoints),
				Speed:  speed,
				Offset: r.rng.Float64(),
			})
		}
	}
}

// echoes briefly tints the fog with a colour of another circuit and shifts
// the sky towards the resonance colour.
func (r *Realm) echoes(s *scene.Scene, t float64) {
	if r.rng.Float64() < echoChance {
		if r.echo != nil {
			r.echo.Cancel()
		}
		s.Fog.Color = s.Fog.Color.Lerp(echoes[r.rng.Intn(len(echoes))], 0.1)
		r.echo = r.Tasks().Spawn(tasks.Task{
			Name:     "echo",
			Duration: echoSeconds,
			Done: func() {
				s.Fog.Color = s.Fog.Color.Lerp(baseSky, 0.1)
			},
		})
	}
	s.Sky = baseSky.Lerp(r.ResonanceColor(), r.resonance*0.4)
	for i, l := range r.lights {
		l.Intensity = 0.8 + 0.2*math.Sin(t+float64(i))
	}
}

func (r *Realm) settlePatterns(s *scene.Scene) {
	for _, p := range r.patterns {
		if !p.Completed {
			continue
		}
		r.completions++
		r.burst(s, r.nodes[p.Nodes[0]].Position)
		r.Notify(gotext.Get("A %s pattern resonates", locale.Word(p.Kind.String())))
		p.reset()
	}
}

// burst spawns the expanding, fading completion effect.
func (r *Realm) burst(s *scene.Scene, at mgl64.Vec3) {
	n := s.Add(scene.Node{
		Kind:     scene.KindParticles,
		Tag:      "burst",
		Glyph:    '*',
		Position: at,
		Scale:    0.1,
		Color:    accent,
		Count:    burstParticles,
		Opacity:  0.8,
	})
	id := n.ID
	r.Tasks().Spawn(tasks.Task{
		Name:     "completion burst",
		Duration: r.cfg.CompletionSeconds,
		Step: func(progress float64) {
			n.Scale = 0.1 + progress*10
			n.Opacity = 1 - progress
		},
		Done: func() {
			s.Remove(id)
		},
	})
}

// HandleInteraction raises resonance and advances patterns when interacting
// within reach of the nearest node.
func (r *Realm) HandleInteraction(ev realm.Event) {
	if ev.Kind != realm.EventInteract {
		return
	}
	i, ok := r.nearestNode(ev.Position)
	if !ok {
		return
	}
	r.resonance = math.Min(1, r.resonance+r.cfg.ResonanceGain)
	for _, p := range r.patterns {
		if p.touch(i) {
			r.nodes[i].Intensity = activeIntensity
		}
	}
}

func (r *Realm) nearestNode(pos mgl64.Vec3) (int, bool) {
	best, bestDist := -1, math.Inf(1)
	for i, n := range r.nodes {
		if d := n.Position.Sub(pos).Len(); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0 && bestDist < r.cfg.InteractRadius
}

func (r *Realm) active(i int) bool {
	for _, p := range r.patterns {
		if p.holds(i) {
			return true
		}
	}
	return false
}

// Resonance returns the resonance in 0..1.
func (r *Realm) Resonance() float64 { return r.resonance }

// Patterns returns the node puzzles.
func (r *Realm) Patterns() []*Pattern { return r.patterns }

// Flows returns the flow arena.
func (r *Realm) Flows() *Arena { return r.flows }

// Completions returns how many patterns were completed since setup.
func (r *Realm) Completions() int { return r.completions }

// ResonanceColor blends from blue at rest to gold at full resonance.
func (r *Realm) ResonanceColor() scene.Color {
	return lowRes.Lerp(highRes, r.resonance)
}

// Status implements realm.StatusReporter.
func (r *Realm) Status() []string {
	lines := []string{
		gotext.Get("Resonance %.0f%%  Flows %d/%d", r.resonance*100, r.flows.Len(), r.flows.Cap()),
	}
	for _, p := range r.patterns {
		lines = append(lines, gotext.Get("%s: %d/%d", locale.Word(p.Kind.String()), p.Progress(), len(p.Nodes)))
	}
	if r.completions > 0 {
		lines = append(lines, gotext.Get("Patterns completed: %d", r.completions))
	}
	return lines
}

// AmbientLevel follows resonance.
func (r *Realm) AmbientLevel() float64 {
	return r.resonance
}

// resample returns n points spaced evenly by index along path.
func resample(path []mgl64.Vec3, n int) []mgl64.Vec3 {
	if n < 2 || len(path) < 2 {
		return append([]mgl64.Vec3(nil), path...)
	}
	out := make([]mgl64.Vec3, n)
	last := len(path) - 1
	for i := range out {
		f := float64(i) * float64(last) / float64(n-1)
		k := int(f)
		if k >= last {
			out[i] = path[last]
			continue
		}
		out[i] = path[k].Add(path[k+1].Sub(path[k]).Mul(f - float64(k)))
	}
	return out
}
