package realm

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"eightcircuits/pkg/engine/clock"
	"eightcircuits/pkg/engine/scene"
)

// BuildFallbackScene clears s and fills it with a neutral scene: a floor
// grid, a wireframe sphere and a point light.
func BuildFallbackScene(s *scene.Scene) {
	s.Clear()
	s.Sky = scene.Color{R: 0.05, G: 0.05, B: 0.08}
	s.Add(scene.Node{
		Kind:      scene.KindObject,
		Tag:       "grid",
		Label:     "Grid",
		Glyph:     '+',
		Scale:     100,
		Color:     scene.Color{R: 0.4, G: 0.4, B: 0.4},
		Wireframe: true,
	})
	s.Add(scene.Node{
		Kind:      scene.KindObject,
		Tag:       "sphere",
		Label:     "Sphere",
		Glyph:     'O',
		Position:  mgl64.Vec3{0, 5, -10},
		Scale:     3,
		Color:     scene.Color{R: 1, G: 1, B: 1},
		Wireframe: true,
	})
	s.Add(scene.Node{
		Kind:      scene.KindLight,
		Tag:       "point",
		Glyph:     '*',
		Position:  mgl64.Vec3{0, 10, 0},
		Color:     scene.Color{R: 1, G: 1, B: 1},
		Intensity: 1,
	})
}

// spinFallback gently pulses the fallback sphere.
func spinFallback(s *scene.Scene, ft clock.FrameTime) {
	for _, n := range s.Tagged("sphere") {
		n.Scale = 3 + 0.2*math.Sin(ft.Elapsed)
	}
}

// NewFallback returns a realm whose only content is the fallback scene. It
// stands in for a realm whose factory failed.
func NewFallback(id int, name, description string) *Base {
	return NewBase(id, name, description, fallbackContent{})
}

type fallbackContent struct{}

func (fallbackContent) BuildEnvironment(s *scene.Scene) error {
	BuildFallbackScene(s)
	return nil
}
func (fallbackContent) BuildLighting(*scene.Scene) error  { return nil }
func (fallbackContent) BuildObjects(*scene.Scene) error   { return nil }
func (fallbackContent) BuildParticles(*scene.Scene) error { return nil }
func (fallbackContent) Simulate(clock.FrameTime)          {}
