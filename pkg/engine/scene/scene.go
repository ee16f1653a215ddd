// Package scene provides the retained node graph a realm populates and a front-end projects.
package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/zyedidia/generic/mapset"
)

// Kind classifies a node as one of the resource types a realm owns.
type Kind int

const (
	KindObject Kind = iota
	KindLight
	KindParticles
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindLight:
		return "light"
	case KindParticles:
		return "particles"
	default:
		return "unknown"
	}
}

// NodeID is a stable handle to a node within one scene.
type NodeID int

// Color is a linear RGB triple in the 0..1 range.
type Color struct {
	R, G, B float64
}

// RGB builds a Color from 0..255 components.
func RGB(r, g, b uint8) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Lerp blends c towards o by t.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
	}
}

// Bytes returns the color as clamped 0..255 components.
func (c Color) Bytes() (r, g, b uint8) {
	conv := func(v float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return conv(c.R), conv(c.G), conv(c.B)
}

// Fog describes the scene-wide fog.
type Fog struct {
	Color   Color
	Density float64
}

// Node is an opaque renderable owned by a realm.
type Node struct {
	ID        NodeID
	Kind      Kind
	Tag       string // realm-specific role, e.g. "resource" or "npc"
	Label     string
	Glyph     rune
	Position  mgl64.Vec3
	Scale     float64
	Color     Color
	Intensity float64
	Opacity   float64
	Count     int // particle count for KindParticles
	Wireframe bool
	Hidden    bool
}

// Scene holds the nodes of one realm and its visibility.
type Scene struct {
	nodes  []*Node
	byID   map[NodeID]*Node
	nextID NodeID

	objects   mapset.Set[NodeID]
	lights    mapset.Set[NodeID]
	particles mapset.Set[NodeID]

	visible bool

	Sky Color
	Fog Fog
}

// New creates an empty, hidden scene.
func New() *Scene {
	s := &Scene{}
	s.reset()
	return s
}

func (s *Scene) reset() {
	s.nodes = nil
	s.byID = make(map[NodeID]*Node)
	s.objects = mapset.New[NodeID]()
	s.lights = mapset.New[NodeID]()
	s.particles = mapset.New[NodeID]()
	s.Sky = Color{}
	s.Fog = Fog{}
}

func (s *Scene) kindSet(k Kind) *mapset.Set[NodeID] {
	switch k {
	case KindLight:
		return &s.lights
	case KindParticles:
		return &s.particles
	default:
		return &s.objects
	}
}

// Add stores a copy of n under a fresh ID and returns the stored node.
func (s *Scene) Add(n Node) *Node {
	s.nextID++
	n.ID = s.nextID
	if n.Scale == 0 {
		n.Scale = 1
	}
	if n.Opacity == 0 {
		n.Opacity = 1
	}
	stored := &n
	s.nodes = append(s.nodes, stored)
	s.byID[stored.ID] = stored
	s.kindSet(stored.Kind).Put(stored.ID)
	return stored
}

// Remove deletes the node with the given ID. It reports whether a node was removed.
func (s *Scene) Remove(id NodeID) bool {
	n, ok := s.byID[id]
	if !ok {
		return false
	}
	delete(s.byID, id)
	s.kindSet(n.Kind).Remove(id)
	for i, cand := range s.nodes {
		if cand.ID == id {
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			break
		}
	}
	return true
}

// Node returns the node with the given ID.
func (s *Scene) Node(id NodeID) (*Node, bool) {
	n, ok := s.byID[id]
	return n, ok
}

// Len returns the total number of nodes.
func (s *Scene) Len() int {
	return len(s.nodes)
}

// Count returns the number of nodes of the given kind.
func (s *Scene) Count(k Kind) int {
	return s.kindSet(k).Size()
}

// Each calls fn for every node in insertion order.
func (s *Scene) Each(fn func(n *Node)) {
	for _, n := range s.nodes {
		fn(n)
	}
}

// Tagged returns the nodes carrying tag, in insertion order.
func (s *Scene) Tagged(tag string) []*Node {
	var out []*Node
	for _, n := range s.nodes {
		if n.Tag == tag {
			out = append(out, n)
		}
	}
	return out
}

// Nearest returns the closest node accepted by filter within radius of pos.
// A nil filter accepts every node.
func (s *Scene) Nearest(pos mgl64.Vec3, radius float64, filter func(n *Node) bool) (*Node, bool) {
	var best *Node
	bestDist := math.Inf(1)
	for _, n := range s.nodes {
		if filter != nil && !filter(n) {
			continue
		}
		d := n.Position.Sub(pos).Len()
		if d < radius && d < bestDist {
			best, bestDist = n, d
		}
	}
	return best, best != nil
}

// SetVisible toggles whether the scene is part of the rendered frame.
func (s *Scene) SetVisible(v bool) {
	s.visible = v
}

// Visible reports whether the scene is rendered.
func (s *Scene) Visible() bool {
	return s.visible
}

// Clear removes every node and resets sky and fog. Visibility is kept.
func (s *Scene) Clear() {
	s.reset()
}
