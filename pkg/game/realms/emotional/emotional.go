// Package emotional is the Emotional-Territorial circuit: a village of three
// rival factions whose standing follows the visitor's emotional state.
package emotional

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/leonelquinteros/gotext"

	"eightcircuits/pkg/engine/clock"
	"eightcircuits/pkg/engine/scene"
	"eightcircuits/pkg/engine/tasks"
	"eightcircuits/pkg/game/config"
	"eightcircuits/pkg/game/locale"
	"eightcircuits/pkg/game/player"
	"eightcircuits/pkg/game/realm"
)

const (
	ID          = 2
	Name        = "Emotional-Territorial"
	Description = "Tribal village with rival factions"
)

const (
	factionCount         = 3
	structuresPerFaction = 5
	territoryOpacity     = 0.3
	npcHeight            = 1.25
)

// Emotion indexes the emotional state.
type Emotion int

const (
	Anger Emotion = iota
	Fear
	Joy
	Sadness
	emotionCount
)

func (e Emotion) String() string {
	switch e {
	case Anger:
		return "anger"
	case Fear:
		return "fear"
	case Joy:
		return "joy"
	case Sadness:
		return "sadness"
	default:
		return "unknown"
	}
}

// Weather is driven by the emotional state.
type Weather int

const (
	WeatherCalm Weather = iota
	WeatherRain
	WeatherStorm
)

func (w Weather) String() string {
	switch w {
	case WeatherRain:
		return "rain"
	case WeatherStorm:
		return "storm"
	default:
		return "calm"
	}
}

// Faction is one of the rival groups.
type Faction struct {
	Influence    float64
	Relationship float64

	emotion  Emotion
	center   mgl64.Vec3
	color    scene.Color
	terrain  *scene.Node
	light    *scene.Node
	flash    *tasks.Token
	bonusFor []effect
}

type effect struct {
	emotion Emotion
	delta   float64
}

// structure effects per faction, in faction order: red, blue, green.
var structureEffects = [factionCount][]effect{
	{{Anger, 0.2}, {Joy, -0.1}},
	{{Sadness, 0.2}, {Fear, 0.1}},
	{{Joy, 0.2}, {Anger, -0.1}},
}

var (
	factionEmotions = [factionCount]Emotion{Anger, Sadness, Joy}
	factionColors   = [factionCount]scene.Color{
		scene.RGB(0xff, 0x00, 0x00),
		scene.RGB(0x00, 0x00, 0xff),
		scene.RGB(0x00, 0xff, 0x00),
	}
	factionNames = [factionCount]string{"Red", "Blue", "Green"}
)

type npcState int

const (
	npcIdle npcState = iota
	npcMoving
)

type npc struct {
	node    *scene.Node
	home    mgl64.Vec3
	target  mgl64.Vec3
	speed   float64
	state   npcState
	idle    float64
	maxIdle float64
}

// Realm is the Emotional-Territorial circuit.
type Realm struct {
	*realm.Base

	cfg config.EmotionalConfig
	rng *rand.Rand

	emotions [emotionCount]float64
	factions []*Faction
	owners   map[scene.NodeID]int
	npcs     []*npc

	weather          Weather
	weatherIntensity float64
	lightning        float64

	aura, lightningLight, rainDrops, moodParticles *scene.Node
}

// New creates the realm. Nothing is built until Setup.
func New(cfg config.EmotionalConfig, rng *rand.Rand) *Realm {
	r := &Realm{cfg: cfg, rng: rng}
	r.Base = realm.NewBase(ID, Name, Description, r)
	r.Reset()
	return r
}

// Reset returns every emotion to neutral and forgets the built village.
func (r *Realm) Reset() {
	for i := range r.emotions {
		r.emotions[i] = 0.5
	}
	r.factions = nil
	r.owners = make(map[scene.NodeID]int)
	r.npcs = nil
	r.weather, r.weatherIntensity, r.lightning = WeatherCalm, 0, 0
	r.aura, r.lightningLight, r.rainDrops, r.moodParticles = nil, nil, nil, nil
}

func (r *Realm) BuildEnvironment(s *scene.Scene) error {
	s.Sky = scene.RGB(0xff, 0xcc, 0x99)
	s.Fog = scene.Fog{Color: scene.RGB(0xff, 0xcc, 0x99), Density: 0.002}
	s.Add(scene.Node{
		Kind:  scene.KindObject,
		Tag:   "ground",
		Glyph: '.',
		Scale: 100,
		Color: scene.RGB(0x8b, 0x45, 0x13),
	})
	return nil
}

func (r *Realm) BuildLighting(s *scene.Scene) error {
	s.Add(scene.Node{Kind: scene.KindLight, Tag: "ambient", Color: scene.RGB(0xff, 0xff, 0xff), Intensity: 0.4})
	s.Add(scene.Node{Kind: scene.KindLight, Tag: "sun", Position: mgl64.Vec3{50, 100, 50}, Color: scene.RGB(0xff, 0x66, 0x00), Intensity: 0.8})
	r.lightningLight = s.Add(scene.Node{Kind: scene.KindLight, Tag: "lightning", Position: mgl64.Vec3{0, 100, 0}, Color: scene.RGB(0xee, 0xee, 0xff)})
	return nil
}

func (r *Realm) BuildObjects(s *scene.Scene) error {
	for i := 0; i < factionCount; i++ {
		center := realm.RingPoint(i, factionCount, r.cfg.TerritoryDistance, 0)
		f := &Faction{
			Influence: 0.33,
			emotion:   factionEmotions[i],
			center:    center,
			color:     factionColors[i],
			bonusFor:  structureEffects[i],
		}
		f.terrain = s.Add(scene.Node{
			Kind:     scene.KindObject,
			Tag:      "territory",
			Label:    fmt.Sprintf("territory-%d", i),
			Glyph:    ':',
			Position: center.Add(mgl64.Vec3{0, 0.1, 0}),
			Scale:    r.cfg.TerritoryRadius,
			Color:    f.color,
			Opacity:  territoryOpacity,
		})
		f.light = s.Add(scene.Node{
			Kind:      scene.KindLight,
			Tag:       "faction-light",
			Position:  center.Add(mgl64.Vec3{0, 10, 0}),
			Color:     f.color,
			Intensity: 0.5,
		})
		r.factions = append(r.factions, f)
		r.buildStructures(s, i)
		r.buildNPCs(s, i)
	}

	r.aura = s.Add(scene.Node{
		Kind:      scene.KindObject,
		Tag:       "aura",
		Glyph:     'o',
		Position:  mgl64.Vec3{0, 1, 0},
		Scale:     1.5,
		Color:     r.Aura(),
		Opacity:   0.4,
		Wireframe: true,
	})
	return nil
}

func (r *Realm) buildStructures(s *scene.Scene, faction int) {
	f := r.factions[faction]
	for i := 0; i < structuresPerFaction; i++ {
		pos := realm.RingPoint(i, structuresPerFaction, realm.RandRange(r.rng, 8, 13), 0).Add(f.center)
		height := realm.RandRange(r.rng, 4, 6)
		if i == 0 {
			height = 8
		}
		n := s.Add(scene.Node{
			Kind:     scene.KindObject,
			Tag:      "structure",
			Label:    fmt.Sprintf("structure-%d-%d", faction, i),
			Glyph:    '#',
			Position: pos.Add(mgl64.Vec3{0, height / 2, 0}),
			Scale:    height / 4,
			Color:    f.color,
		})
		r.owners[n.ID] = faction
	}
}

func (r *Realm) buildNPCs(s *scene.Scene, faction int) {
	f := r.factions[faction]
	count := r.cfg.NPCMin + r.rng.Intn(r.cfg.NPCMax-r.cfg.NPCMin+1)
	for i := 0; i < count; i++ {
		home := realm.ScatterDisc(r.rng, f.center, 12, npcHeight)
		n := s.Add(scene.Node{
			Kind:     scene.KindObject,
			Tag:      "npc",
			Label:    fmt.Sprintf("npc-%d-%d", faction, i),
			Glyph:    'i',
			Position: home,
			Color:    f.color,
		})
		r.npcs = append(r.npcs, &npc{
			node:    n,
			home:    home,
			target:  home,
			speed:   realm.RandRange(r.rng, r.cfg.NPCSpeedMin, r.cfg.NPCSpeedMax),
			maxIdle: realm.RandRange(r.rng, r.cfg.IdleMin, r.cfg.IdleMax),
		})
	}
}

func (r *Realm) BuildParticles(s *scene.Scene) error {
	for _, f := range r.factions {
		s.Add(scene.Node{
			Kind:     scene.KindParticles,
			Tag:      "faction-particles",
			Glyph:    '\'',
			Position: f.center.Add(mgl64.Vec3{0, 5, 0}),
			Scale:    r.cfg.TerritoryRadius,
			Color:    f.color,
			Count:    100,
			Opacity:  0.6,
		})
	}
	r.moodParticles = s.Add(scene.Node{
		Kind:    scene.KindParticles,
		Tag:     "emotional-particles",
		Glyph:   '`',
		Scale:   5,
		Color:   r.Aura(),
		Count:   50,
		Opacity: 0.7,
	})
	r.rainDrops = s.Add(scene.Node{
		Kind:     scene.KindParticles,
		Tag:      "rain",
		Glyph:    '|',
		Position: mgl64.Vec3{0, 30, 0},
		Scale:    100,
		Color:    scene.RGB(0x99, 0x99, 0xcc),
		Count:    2000,
		Hidden:   true,
	})
	return nil
}

// Simulate moves NPCs, resizes territories by influence and follows the
// emotional weather.
func (r *Realm) Simulate(ft clock.FrameTime) {
	dt := ft.Delta
	r.updateNPCs(dt)

	color := r.Aura()
	r.aura.Color = color
	r.aura.Scale = 1.5 * (1 + math.Sin(ft.Elapsed)*0.2)
	r.moodParticles.Color = color

	total := 0.0
	for _, f := range r.factions {
		total += f.Influence
	}
	for _, f := range r.factions {
		share := f.Influence / total
		f.terrain.Scale = r.cfg.TerritoryRadius * (0.8 + share*0.5)
		f.light.Intensity = 0.5 + share
	}

	r.updateWeather(dt)
}

func (r *Realm) updateNPCs(dt float64) {
	for _, n := range r.npcs {
		switch n.state {
		case npcIdle:
			n.idle += dt
			if n.idle >= n.maxIdle {
				n.idle = 0
				n.target = realm.ScatterDisc(r.rng, n.home, r.cfg.WanderRadius, 0)
				n.state = npcMoving
			}
		case npcMoving:
			to := n.target.Sub(n.node.Position)
			dist := to.Len()
			if dist < r.cfg.ArriveDistance {
				n.state = npcIdle
				continue
			}
			step := math.Min(n.speed*dt, dist)
			n.node.Position = n.node.Position.Add(to.Mul(step / dist))
			if n.node.Position.Sub(n.target).Len() < r.cfg.ArriveDistance {
				n.state = npcIdle
			}
		}
	}
}

func (r *Realm) updateWeather(dt float64) {
	target, intensity := WeatherCalm, 0.0
	if s := r.emotions[Sadness]; s > 0.6 {
		target, intensity = WeatherRain, (s-0.6)*2.5
	}
	if a := r.emotions[Anger]; a > 0.7 {
		target, intensity = WeatherStorm, (a-0.7)*3.3
	}
	if target != r.weather {
		r.weather = target
		r.Notify(gotext.Get("The weather turns to %s", locale.Word(target.String())))
	}
	r.weatherIntensity += (intensity - r.weatherIntensity) * math.Min(1, dt/r.cfg.WeatherLerpSeconds)

	r.rainDrops.Hidden = r.weather == WeatherCalm && r.weatherIntensity < 0.01
	r.rainDrops.Opacity = r.weatherIntensity * 0.7

	if r.weather == WeatherStorm && r.rng.Float64() < dt*r.weatherIntensity*0.5 {
		angle := r.rng.Float64() * 2 * math.Pi
		dist := realm.RandRange(r.rng, 50, 150)
		r.lightningLight.Position = mgl64.Vec3{math.Cos(angle) * dist, realm.RandRange(r.rng, 80, 130), math.Sin(angle) * dist}
		r.lightning = realm.RandRange(r.rng, 2, 5)
	}
	r.lightning = math.Max(0, r.lightning-dt*10)
	r.lightningLight.Intensity = r.lightning
}

// CheckProximity keeps the aura around the visitor.
func (r *Realm) CheckProximity(p *player.Controller) {
	if r.aura == nil {
		return
	}
	pos := p.Position()
	r.aura.Position = pos
	r.moodParticles.Position = pos
}

// HandleInteraction reacts to interact near a structure first, then near a
// territory.
func (r *Realm) HandleInteraction(ev realm.Event) {
	if ev.Kind != realm.EventInteract {
		return
	}
	n, ok := r.Scene().Nearest(ev.Position, r.cfg.StructureRadius, func(n *scene.Node) bool {
		return n.Tag == "structure"
	})
	if ok {
		r.interactWithStructure(r.owners[n.ID])
		return
	}
	if i, ok := r.territoryAt(ev.Position); ok {
		r.interactWithTerritory(i)
	}
}

// territoryAt returns the faction whose territory contains pos on the ground plane.
func (r *Realm) territoryAt(pos mgl64.Vec3) (int, bool) {
	best, bestDist := -1, math.Inf(1)
	for i, f := range r.factions {
		d := mgl64.Vec2{pos.X() - f.center.X(), pos.Z() - f.center.Z()}.Len()
		if d < r.cfg.TerritoryRadius && d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}

func (r *Realm) interactWithTerritory(i int) {
	f := r.factions[i]
	r.adjust(f.emotion, 0.1)
	r.befriend(f, 0.1)
	r.flash(f)
}

func (r *Realm) interactWithStructure(i int) {
	f := r.factions[i]
	for _, e := range f.bonusFor {
		r.adjust(e.emotion, e.delta)
	}
	r.befriend(f, 0.2)
	r.flash(f)
}

// adjust shifts one emotion and re-derives every faction's standing.
func (r *Realm) adjust(e Emotion, delta float64) {
	r.SetEmotion(e, r.emotions[e]+delta)
}

// SetEmotion sets e, clamped to 0..1, and re-derives faction standing.
func (r *Realm) SetEmotion(e Emotion, v float64) {
	r.emotions[e] = mgl64.Clamp(v, 0, 1)
	for _, f := range r.factions {
		f.Relationship = r.emotions[f.emotion]*2 - 1
		f.Influence = 0.2 + math.Max(0, f.Relationship)*0.3
	}
}

// befriend raises the relationship on top of the emotion-derived value
// until the next emotional change re-derives it.
func (r *Realm) befriend(f *Faction, delta float64) {
	f.Relationship = math.Min(1, f.Relationship+delta)
	f.Influence = 0.2 + math.Max(0, f.Relationship)*0.3
}

func (r *Realm) flash(f *Faction) {
	if f.flash != nil {
		f.flash.Cancel()
	}
	territory := f.terrain
	f.flash = r.Tasks().Spawn(tasks.Task{
		Name:     "territory flash",
		Duration: r.cfg.FlashSeconds,
		Step: func(progress float64) {
			territory.Opacity = territoryOpacity + 0.5*(1-progress)
		},
		Done: func() {
			territory.Opacity = territoryOpacity
		},
	})
}

// Emotion returns the current value of e.
func (r *Realm) Emotion(e Emotion) float64 {
	return r.emotions[e]
}

// Factions returns the factions in build order.
func (r *Realm) Factions() []*Faction {
	return r.factions
}

// Aura is the visitor's emotional colour: anger, joy and sadness as red, green and blue.
func (r *Realm) Aura() scene.Color {
	return scene.Color{R: r.emotions[Anger], G: r.emotions[Joy], B: r.emotions[Sadness]}
}

// Dominant returns the strongest emotion. Ties go to the first in order.
func (r *Realm) Dominant() Emotion {
	best := Anger
	for e := Anger; e < emotionCount; e++ {
		if r.emotions[e] > r.emotions[best] {
			best = e
		}
	}
	return best
}

// Status implements realm.StatusReporter.
func (r *Realm) Status() []string {
	lines := []string{
		gotext.Get("Mood: %s  Weather: %s", locale.Word(r.Dominant().String()), locale.Word(r.weather.String())),
	}
	for i, f := range r.factions {
		lines = append(lines, gotext.Get("%s faction: relationship %+.2f influence %.2f",
			locale.Word(factionNames[i]), f.Relationship, f.Influence))
	}
	return lines
}

// AmbientLevel follows the storm.
func (r *Realm) AmbientLevel() float64 {
	return math.Max(r.weatherIntensity, r.emotions[Anger]*0.5)
}
