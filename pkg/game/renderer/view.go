package renderer

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"eightcircuits/pkg/engine/scene"
	"eightcircuits/pkg/game/state"
)

// Both front-ends draw the live scene from above: x runs right and z runs
// down the screen. In player mode the view follows the avatar; in orbit mode
// it circles the origin.

// View is a top-down camera.
type View struct {
	Center mgl64.Vec3
	Angle  float64 // rotation around the vertical axis, radians
}

// ViewOf returns the camera for the session's control mode.
func ViewOf(g *state.Game) View {
	if g.Mode == state.ModeOrbit || g.Player == nil {
		return View{Angle: g.OrbitAngle}
	}
	return View{Center: g.Player.Position()}
}

// Project maps a world position to view coordinates in world units,
// relative to the centre of the view.
func (v View) Project(p mgl64.Vec3) (x, y float64) {
	rel := mgl64.Rotate3DY(v.Angle).Mul3x1(p.Sub(v.Center))
	return rel.X(), rel.Z()
}

// layer orders node kinds bottom to top.
func layer(n *scene.Node) int {
	switch n.Kind {
	case scene.KindParticles:
		return 0
	case scene.KindLight:
		return 1
	default:
		return 2
	}
}

// DrawList returns the nodes to draw in painting order: hidden and
// unlabelled nodes without a glyph are skipped; higher nodes paint later.
func DrawList(s *scene.Scene) []*scene.Node {
	if s == nil || !s.Visible() {
		return nil
	}
	var nodes []*scene.Node
	s.Each(func(n *scene.Node) {
		if n.Hidden || n.Glyph == 0 || n.Glyph == ' ' {
			return
		}
		nodes = append(nodes, n)
	})
	sort.SliceStable(nodes, func(i, j int) bool {
		li, lj := layer(nodes[i]), layer(nodes[j])
		if li != lj {
			return li < lj
		}
		return nodes[i].Position.Y() < nodes[j].Position.Y()
	})
	return nodes
}

// Dim scales a colour by a node's opacity and light, so faint nodes draw faint.
func Dim(n *scene.Node) scene.Color {
	k := n.Opacity
	if n.Kind == scene.KindLight {
		k *= 0.5 + 0.5*n.Intensity
	}
	if k > 1 {
		k = 1
	}
	if k < 0.25 {
		k = 0.25
	}
	return scene.Color{R: n.Color.R * k, G: n.Color.G * k, B: n.Color.B * k}
}

// Cell is one character of a rasterized top-down frame. An empty cell has
// Glyph 0.
type Cell struct {
	Glyph  rune
	Color  scene.Color
	Player bool
}

// PlayerColor is the avatar marker colour.
var PlayerColor = scene.Color{R: 0.2, G: 1, B: 0.2}

// Raster projects the live scene onto a cols by rows character grid with
// unitsPerCell world units per cell and the view centre in the middle.
// Later nodes overwrite earlier ones; the avatar is drawn last.
func Raster(g *state.Game, cols, rows int, unitsPerCell float64) [][]Cell {
	grid := make([][]Cell, rows)
	for r := range grid {
		grid[r] = make([]Cell, cols)
	}
	if g.Coordinator == nil || g.Coordinator.Active() == nil || unitsPerCell <= 0 {
		return grid
	}
	v := ViewOf(g)
	plot := func(p mgl64.Vec3, c Cell) {
		x, y := v.Project(p)
		col := cols/2 + int(math.Round(x/unitsPerCell))
		row := rows/2 + int(math.Round(y/unitsPerCell))
		if col < 0 || col >= cols || row < 0 || row >= rows {
			return
		}
		grid[row][col] = c
	}
	for _, n := range DrawList(g.Coordinator.Active().Scene()) {
		plot(n.Position, Cell{Glyph: n.Glyph, Color: Dim(n)})
	}
	if g.Player != nil && g.Mode == state.ModePlayer {
		plot(g.Player.Position(), Cell{Glyph: '@', Color: PlayerColor, Player: true})
	}
	return grid
}
