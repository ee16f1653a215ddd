// Package social is the Social-Sexual circuit: a cybernetic grid where the
// visitor raises connectivity by staying close to flowing data.
package social

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/leonelquinteros/gotext"

	"eightcircuits/pkg/engine/clock"
	"eightcircuits/pkg/engine/scene"
	"eightcircuits/pkg/game/config"
	"eightcircuits/pkg/game/player"
	"eightcircuits/pkg/game/realm"
)

const (
	ID          = 4
	Name        = "Social-Sexual"
	Description = "The social and sexual roles circuit"
)

const (
	controlPoints   = 8
	streamSamples   = 64
	networkNodes    = 20
	networkLinks    = 30
	nodeSpacing     = 10
	interfaceHeight = 5
)

var (
	primary   = scene.RGB(0x00, 0xff, 0xff)
	secondary = scene.RGB(0x00, 0x00, 0x8b)
	accent    = scene.RGB(0xff, 0x00, 0xff)
)

// ErrNoStreams is returned by setup when the tuning asks for no data streams.
var ErrNoStreams = errors.New("social realm needs at least one data stream")

type stream struct {
	control []mgl64.Vec3
	samples []mgl64.Vec3
	speed   float64
}

type dataPoint struct {
	node   *scene.Node
	stream *stream
	u      float64
}

// Realm is the Social-Sexual circuit.
type Realm struct {
	*realm.Base

	cfg config.SocialConfig
	rng *rand.Rand

	streams    []*stream
	points     []*dataPoint
	network    []*scene.Node
	iface      *scene.Node
	ifacePos   mgl64.Vec3
	lights     []*scene.Node
	connection float64
	reached    bool
}

// New creates the realm. Nothing is built until Setup.
func New(cfg config.SocialConfig, rng *rand.Rand) *Realm {
	r := &Realm{cfg: cfg, rng: rng}
	r.Base = realm.NewBase(ID, Name, Description, r)
	r.Reset()
	return r
}

// Reset drops connectivity and the built network.
func (r *Realm) Reset() {
	r.streams = nil
	r.points = nil
	r.network = nil
	r.iface = nil
	r.ifacePos = mgl64.Vec3{0, interfaceHeight, 0}
	r.lights = nil
	r.connection = 0
	r.reached = false
}

func (r *Realm) BuildEnvironment(s *scene.Scene) error {
	s.Sky = scene.Color{}
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
	s.Add(scene.Node{Kind: scene.KindLight, Tag: "ambient", Color: secondary, Intensity: 0.2})
	r.lights = append(r.lights,
		s.Add(scene.Node{Kind: scene.KindLight, Tag: "point", Position: mgl64.Vec3{10, 20, 10}, Color: primary, Intensity: 0.8}),
		s.Add(scene.Node{Kind: scene.KindLight, Tag: "point", Position: mgl64.Vec3{-10, 20, -10}, Color: accent, Intensity: 0.8}),
	)
	return nil
}

func (r *Realm) BuildObjects(s *scene.Scene) error {
	if r.cfg.StreamCount <= 0 {
		return ErrNoStreams
	}
	r.buildStreams(s)
	r.buildNetwork(s)
	r.iface = s.Add(scene.Node{
		Kind:      scene.KindObject,
		Tag:       "interface",
		Glyph:     'O',
		Position:  r.ifacePos,
		Scale:     2,
		Color:     primary,
		Intensity: 0.8,
		Opacity:   0.7,
		Wireframe: true,
	})
	return nil
}

func (r *Realm) buildStreams(s *scene.Scene) {
	half := r.cfg.FieldRadius / 2
	for i := 0; i < r.cfg.StreamCount; i++ {
		st := &stream{speed: 0.5 + r.rng.Float64()*0.5}
		for j := 0; j < controlPoints; j++ {
			st.control = append(st.control, mgl64.Vec3{
				realm.RandRange(r.rng, -half, half),
				realm.RandRange(r.rng, 0, 10),
				realm.RandRange(r.rng, -half, half),
			})
		}
		st.samples = mgl64.MakeBezierCurve3D(streamSamples, st.control)
		r.streams = append(r.streams, st)
		s.Add(scene.Node{
			Kind:     scene.KindObject,
			Tag:      "stream",
			Label:    fmt.Sprintf("stream-%d", i),
			Glyph:    '~',
			Position: st.samples[len(st.samples)/2],
			Color:    primary,
			Opacity:  0.8,
		})
	}

	for i := 0; i < r.cfg.DataPointCount; i++ {
		st := r.streams[i%len(r.streams)]
		u := r.rng.Float64()
		r.points = append(r.points, &dataPoint{
			node: s.Add(scene.Node{
				Kind:     scene.KindObject,
				Tag:      "data",
				Glyph:    '*',
				Position: mgl64.BezierCurve3D(u, st.control),
				Scale:    0.2,
				Color:    primary,
				Opacity:  0.9,
			}),
			stream: st,
			u:      u,
		})
	}
}

func (r *Realm) buildNetwork(s *scene.Scene) {
	for i := 0; i < networkNodes; i++ {
		pos := mgl64.Vec3{
			float64(i%5)*nodeSpacing - 2*nodeSpacing,
			float64((i/5)%4)*nodeSpacing - 1.5*nodeSpacing + 5,
			float64(i/20)*nodeSpacing - 0.5*nodeSpacing,
		}
		r.network = append(r.network, s.Add(scene.Node{
			Kind:      scene.KindObject,
			Tag:       "node",
			Glyph:     'o',
			Position:  pos,
			Color:     secondary,
			Intensity: 0.5,
		}))
	}
	for i := 0; i < networkLinks; i++ {
		a := r.rng.Intn(networkNodes)
		b := r.rng.Intn(networkNodes - 1)
		if b >= a {
			b++
		}
		from, to := r.network[a].Position, r.network[b].Position
		s.Add(scene.Node{
			Kind:      scene.KindObject,
			Tag:       "connection",
			Glyph:     '-',
			Position:  from.Add(to).Mul(0.5),
			Scale:     to.Sub(from).Len(),
			Color:     accent,
			Intensity: 0.2,
			Opacity:   0.5,
		})
	}
}

func (r *Realm) BuildParticles(s *scene.Scene) error {
	s.Add(scene.Node{
		Kind:     scene.KindParticles,
		Tag:      "static",
		Glyph:    '.',
		Position: mgl64.Vec3{0, 10, 0},
		Scale:    r.cfg.FieldRadius,
		Color:    primary,
		Count:    300,
		Opacity:  0.4,
	})
	return nil
}

// Simulate moves data along the streams, pulses the network and updates
// connectivity once per tick.
func (r *Realm) Simulate(ft clock.FrameTime) {
	t := ft.Elapsed
	for _, p := range r.points {
		p.u += ft.Delta * p.stream.speed * 0.1
		if p.u > 1 {
			p.u--
		}
		p.node.Position = mgl64.BezierCurve3D(p.u, p.stream.control)
		p.node.Opacity = 0.5 + math.Sin(t*4)*0.4
	}
	for _, n := range r.network {
		n.Scale = 1 + 0.1*math.Sin(t*3+n.Position.X())
		n.Intensity = 0.5 + 0.2*math.Sin(t*2+n.Position.Z())
	}
	r.iface.Position = r.ifacePos
	r.iface.Scale = 2 * (1 + 0.1*math.Sin(t*4))
	r.iface.Intensity = 0.8 + 0.2*math.Sin(t*3)

	r.updateConnectivity()
}

func (r *Realm) updateConnectivity() {
	bonus := 0.0
	for _, p := range r.points {
		d := p.node.Position.Sub(r.ifacePos).Len()
		if d < r.cfg.ProximityRadius {
			bonus += r.cfg.ProximityGain * (r.cfg.ProximityRadius - d)
		}
	}
	r.connection = mgl64.Clamp(r.connection+bonus-r.cfg.Decay, 0, 1)
	if r.connection >= r.cfg.TargetConnectivity && !r.reached {
		r.reached = true
		r.Notify(gotext.Get("Connectivity target reached"))
	}
}

// CheckProximity keeps the neural interface above the visitor.
func (r *Realm) CheckProximity(p *player.Controller) {
	pos := p.Position()
	r.ifacePos = mgl64.Vec3{pos.X(), interfaceHeight, pos.Z()}
}

// HandleInteraction boosts connectivity when interacting near a data stream.
func (r *Realm) HandleInteraction(ev realm.Event) {
	if ev.Kind != realm.EventInteract {
		return
	}
	if r.distanceToStream(ev.Position) < r.cfg.StreamRadius {
		r.connection = math.Min(1, r.connection+r.cfg.StreamBoost)
	}
}

// distanceToStream returns the distance from pos to the closest sampled stream point.
func (r *Realm) distanceToStream(pos mgl64.Vec3) float64 {
	best := math.Inf(1)
	for _, st := range r.streams {
		for _, p := range st.samples {
			if d := p.Sub(pos).Len(); d < best {
				best = d
			}
		}
	}
	return best
}

// Connectivity returns the connection strength in 0..1.
func (r *Realm) Connectivity() float64 {
	return r.connection
}

// Status implements realm.StatusReporter.
func (r *Realm) Status() []string {
	lines := []string{
		gotext.Get("Connectivity %.0f%% (target %.0f%%)", r.connection*100, r.cfg.TargetConnectivity*100),
	}
	if r.reached {
		lines = append(lines, gotext.Get("Connected"))
	} else {
		lines = append(lines, gotext.Get("Move near data streams to increase connectivity"))
	}
	return lines
}

// AmbientLevel follows connectivity.
func (r *Realm) AmbientLevel() float64 {
	return r.connection
}
