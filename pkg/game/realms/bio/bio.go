// Package bio is the Bio-Survival circuit: gather food and water, stay near
// shelter, keep the breathing rhythm and survive the day cycle.
package bio

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/leonelquinteros/gotext"

	"eightcircuits/pkg/engine/clock"
	"eightcircuits/pkg/engine/scene"
	"eightcircuits/pkg/game/config"
	"eightcircuits/pkg/game/locale"
	"eightcircuits/pkg/game/player"
	"eightcircuits/pkg/game/realm"
)

const (
	ID          = 1
	Name        = "Bio-Survival"
	Description = "Gather food and water, find shelter and keep your breath in rhythm."
)

const (
	treeCount      = 25
	rockCount      = 10
	maxRainDrops   = 5000
	thunderSeconds = 0.3
	sunDistance    = 150
)

var (
	daySky     = scene.RGB(0x87, 0xce, 0xeb)
	nightSky   = scene.RGB(0x0a, 0x0a, 0x20)
	dayLight   = scene.RGB(0xff, 0xff, 0xff)
	nightLight = scene.RGB(0x33, 0x44, 0x55)
)

// Weather is the current weather effect.
type Weather int

const (
	WeatherNone Weather = iota
	WeatherClear
	WeatherRain
	WeatherFog
)

func (w Weather) String() string {
	switch w {
	case WeatherClear:
		return "clear"
	case WeatherRain:
		return "rain"
	case WeatherFog:
		return "fog"
	default:
		return "none"
	}
}

// Cause names why the survivor died.
type Cause int

const (
	CauseNone Cause = iota
	CauseStarvation
	CauseDehydration
	CauseExposure
	CauseSystemFailure
)

func (c Cause) String() string {
	switch c {
	case CauseStarvation:
		return "starvation"
	case CauseDehydration:
		return "dehydration"
	case CauseExposure:
		return "exposure"
	case CauseSystemFailure:
		return "system failure"
	default:
		return ""
	}
}

// Meters are the survival stats, each in 0..100.
type Meters struct {
	Health  float64
	Food    float64
	Water   float64
	Shelter float64
}

type resourceKind int

const (
	resourceFood resourceKind = iota
	resourceWater
)

type resource struct {
	kind  resourceKind
	value float64
}

// Realm is the Bio-Survival circuit.
type Realm struct {
	*realm.Base

	cfg config.BioConfig
	rng *rand.Rand

	meters   Meters
	gameOver bool
	cause    Cause

	breathPhase  float64
	breathTarget float64
	aligned      bool

	timeOfDay    float64
	wasNight     bool
	weather      Weather
	weatherTimer float64
	rain         float64
	fog          float64
	thunder      float64

	nearShelter bool
	resources   map[scene.NodeID]resource
	shelters    []mgl64.Vec3

	sun, moon, ambient, pulse, rainDrops *scene.Node
}

// New creates the realm. Nothing is built until Setup.
func New(cfg config.BioConfig, rng *rand.Rand) *Realm {
	r := &Realm{cfg: cfg, rng: rng}
	r.Base = realm.NewBase(ID, Name, Description, r)
	r.Reset()
	return r
}

// Reset restores the initial survival state. It runs on creation and dispose.
func (r *Realm) Reset() {
	r.meters = Meters{Health: 100, Food: 50, Water: 50}
	r.gameOver, r.cause = false, CauseNone
	r.breathPhase = 0
	r.breathTarget = r.rng.Float64() * 2 * math.Pi
	r.aligned = false
	r.timeOfDay = r.rng.Float64() * 24
	r.wasNight = r.IsNight()
	r.weather, r.weatherTimer = WeatherNone, 0
	r.rain, r.fog, r.thunder = 0, 0, 0
	r.nearShelter = false
	r.resources = make(map[scene.NodeID]resource)
	r.shelters = nil
	r.sun, r.moon, r.ambient, r.pulse, r.rainDrops = nil, nil, nil, nil, nil
}

func (r *Realm) BuildEnvironment(s *scene.Scene) error {
	s.Sky = daySky
	s.Fog = scene.Fog{Color: scene.RGB(0xcc, 0xcc, 0xcc)}
	s.Add(scene.Node{
		Kind:  scene.KindObject,
		Tag:   "ground",
		Glyph: '.',
		Scale: r.cfg.FieldRadius * 2,
		Color: scene.RGB(0x3a, 0x5f, 0x0b),
	})
	for i := 0; i < treeCount; i++ {
		s.Add(scene.Node{
			Kind:     scene.KindObject,
			Tag:      "tree",
			Glyph:    'T',
			Position: realm.ScatterDisc(r.rng, mgl64.Vec3{}, r.cfg.FieldRadius, 0),
			Scale:    realm.RandRange(r.rng, 1, 2),
			Color:    scene.RGB(0x22, 0x8b, 0x22),
		})
	}
	for i := 0; i < rockCount; i++ {
		s.Add(scene.Node{
			Kind:     scene.KindObject,
			Tag:      "rock",
			Glyph:    'o',
			Position: realm.ScatterDisc(r.rng, mgl64.Vec3{}, r.cfg.FieldRadius, 0),
			Scale:    realm.RandRange(r.rng, 0.5, 1.5),
			Color:    scene.RGB(0x80, 0x80, 0x80),
		})
	}
	return nil
}

func (r *Realm) BuildLighting(s *scene.Scene) error {
	r.sun = s.Add(scene.Node{Kind: scene.KindLight, Tag: "sun", Glyph: '*', Position: mgl64.Vec3{0, 100, 0}, Color: scene.RGB(0xff, 0xee, 0xaa), Intensity: 1})
	r.moon = s.Add(scene.Node{Kind: scene.KindLight, Tag: "moon", Glyph: 'C', Color: scene.RGB(0xaa, 0xbb, 0xff)})
	r.ambient = s.Add(scene.Node{Kind: scene.KindLight, Tag: "ambient", Color: dayLight, Intensity: realm.DefaultAmbientIntensity})
	r.pulse = s.Add(scene.Node{Kind: scene.KindLight, Tag: "breath", Position: mgl64.Vec3{0, 1, 0}, Color: scene.RGB(0xff, 0x44, 0x44)})
	return nil
}

func (r *Realm) BuildObjects(s *scene.Scene) error {
	for i := 0; i < r.cfg.FoodCount; i++ {
		r.spawnResource(s, resourceFood)
	}
	for i := 0; i < r.cfg.WaterCount; i++ {
		r.spawnResource(s, resourceWater)
	}
	for i := 0; i < r.cfg.ShelterCount; i++ {
		pos := realm.RingPoint(i, r.cfg.ShelterCount, r.cfg.FieldRadius*0.6, 0)
		s.Add(scene.Node{
			Kind:     scene.KindObject,
			Tag:      "shelter",
			Label:    "Shelter",
			Glyph:    '^',
			Position: pos,
			Scale:    3,
			Color:    scene.RGB(0x8b, 0x45, 0x13),
		})
		r.shelters = append(r.shelters, pos)
	}
	return nil
}

func (r *Realm) spawnResource(s *scene.Scene, kind resourceKind) {
	n := scene.Node{
		Kind:     scene.KindObject,
		Position: realm.ScatterDisc(r.rng, mgl64.Vec3{}, r.cfg.FieldRadius, 0.5),
		Scale:    0.5,
	}
	if kind == resourceFood {
		n.Tag, n.Label, n.Glyph, n.Color = "food", "Food", 'f', scene.RGB(0x7c, 0xfc, 0x00)
	} else {
		n.Tag, n.Label, n.Glyph, n.Color = "water", "Water", '~', scene.RGB(0x1e, 0x90, 0xff)
	}
	stored := s.Add(n)
	r.resources[stored.ID] = resource{
		kind:  kind,
		value: realm.RandRange(r.rng, r.cfg.ResourceMinValue, r.cfg.ResourceMaxValue),
	}
}

func (r *Realm) BuildParticles(s *scene.Scene) error {
	r.rainDrops = s.Add(scene.Node{
		Kind:     scene.KindParticles,
		Tag:      "rain",
		Glyph:    '|',
		Position: mgl64.Vec3{0, 20, 0},
		Scale:    r.cfg.FieldRadius,
		Color:    scene.RGB(0x44, 0x44, 0xff),
		Hidden:   true,
	})
	// Sky, fog and rain start from the random time of day.
	r.updateSky()
	return nil
}

// Simulate advances the day cycle, weather, breathing and meters. Nothing
// moves once the survivor is dead.
func (r *Realm) Simulate(ft clock.FrameTime) {
	if r.gameOver {
		return
	}
	dt := ft.Delta
	r.advanceDay(dt)
	r.advanceWeather(dt)
	r.advanceBreathing(dt)
	r.advanceMeters(dt)
	r.updateSky()
}

// IsNight reports whether the clock is in the dark hours.
func (r *Realm) IsNight() bool {
	return r.timeOfDay >= r.cfg.NightStart || r.timeOfDay < r.cfg.NightEnd
}

func (r *Realm) advanceDay(dt float64) {
	r.timeOfDay = math.Mod(r.timeOfDay+dt/r.cfg.DayLengthSeconds*24, 24)
	night := r.IsNight()
	if night && !r.wasNight {
		r.Notify(gotext.Get("Night is falling. Find shelter."))
	}
	r.wasNight = night
}

func (r *Realm) advanceWeather(dt float64) {
	r.weatherTimer += dt
	if r.weather == WeatherNone || r.weatherTimer >= r.cfg.WeatherInterval {
		r.weatherTimer = 0
		r.setWeather(r.pickWeather())
	}

	switch r.weather {
	case WeatherRain:
		r.rain = math.Min(1, r.rain+dt*0.5)
		if r.IsNight() && r.rng.Float64() < dt*0.1 {
			r.thunder = thunderSeconds
		}
	case WeatherFog:
		r.fog = math.Min(1, r.fog+dt*0.2)
	default:
		r.rain = math.Max(0, r.rain-dt*0.5)
		r.fog = math.Max(0, r.fog-dt*0.5)
	}
	if r.thunder > 0 {
		r.thunder -= dt
	}
}

func (r *Realm) pickWeather() Weather {
	clearP, rainP := 0.7, 0.2
	if r.IsNight() {
		clearP, rainP = 0.3, 0.4
	}
	roll := r.rng.Float64()
	switch {
	case roll < clearP:
		return WeatherClear
	case roll < clearP+rainP:
		return WeatherRain
	default:
		return WeatherFog
	}
}

func (r *Realm) setWeather(w Weather) {
	r.weather = w
	switch w {
	case WeatherClear:
		r.Notify(gotext.Get("The skies are clearing"))
	case WeatherRain:
		r.rain = 0.2
		r.Notify(gotext.Get("It's starting to rain"))
	case WeatherFog:
		r.fog = 0.2
		r.Notify(gotext.Get("Fog is rolling in"))
	}
}

func (r *Realm) advanceBreathing(dt float64) {
	r.breathPhase = math.Mod(r.breathPhase+dt*r.cfg.BreathRate, 2*math.Pi)
	if r.rng.Float64() < r.cfg.BreathTargetChance {
		r.breathTarget = r.rng.Float64() * 2 * math.Pi
	}
	r.aligned = math.Abs(math.Sin(r.breathPhase)-math.Sin(r.breathTarget)) < r.cfg.BreathTolerance
}

func (r *Realm) advanceMeters(dt float64) {
	m := &r.meters
	m.Food = mgl64.Clamp(m.Food-r.cfg.FoodDecay*dt, 0, 100)
	m.Water = mgl64.Clamp(m.Water-r.cfg.WaterDecay*dt, 0, 100)
	if r.nearShelter {
		m.Shelter += r.cfg.ShelterGain * dt
	} else {
		m.Shelter -= r.cfg.ShelterDecay * dt
	}
	m.Shelter = mgl64.Clamp(m.Shelter, 0, 100)

	critical, danger := r.cfg.CriticalLevel, r.cfg.DangerLevel
	if m.Food < critical {
		m.Health -= 2 * dt
	} else if m.Food < danger {
		m.Health -= 0.5 * dt
	}
	if m.Water < critical {
		m.Health -= 3 * dt
	} else if m.Water < danger {
		m.Health -= 1 * dt
	}
	if m.Shelter < critical {
		m.Health -= 1 * dt
	}

	healthy := m.Food > 70 && m.Water > 70 && m.Shelter > 60
	switch {
	case healthy && r.aligned:
		m.Health += 3 * dt
	case healthy:
		m.Health += 1 * dt
	case r.aligned:
		m.Health += 0.5 * dt
	}
	m.Health = mgl64.Clamp(m.Health, 0, 100)

	if m.Health <= 0 {
		r.gameOver = true
		r.cause = r.causeOfDeath()
		r.Notify(gotext.Get("You died of %s. Press F to restart.", locale.Word(r.cause.String())))
	}
}

func (r *Realm) causeOfDeath() Cause {
	switch {
	case r.meters.Food <= 0:
		return CauseStarvation
	case r.meters.Water <= 0:
		return CauseDehydration
	case r.meters.Shelter <= 0:
		return CauseExposure
	default:
		return CauseSystemFailure
	}
}

// updateSky moves sun and moon with the clock and applies weather to the scene.
func (r *Realm) updateSky() {
	if r.sun == nil {
		return
	}
	s := r.Scene()
	angle := (r.timeOfDay - 6) / 24 * 2 * math.Pi
	sunX, sunY := math.Cos(angle)*sunDistance, math.Sin(angle)*sunDistance

	r.sun.Position = mgl64.Vec3{sunX, math.Max(50, sunY), 0}
	r.sun.Intensity = mgl64.Clamp(sunY/100, 0, 1)
	r.moon.Position = mgl64.Vec3{-sunX, math.Max(50, -sunY), 0}
	r.moon.Intensity = mgl64.Clamp(-sunY/100, 0, 0.3)

	day := mgl64.Clamp(sunY/100, 0, 1)
	night := mgl64.Clamp(-sunY/100, 0, 0.3)
	r.ambient.Color = nightLight.Lerp(dayLight, day)
	r.ambient.Intensity = math.Max(0.1, day*0.3+night*0.1)
	s.Sky = nightSky.Lerp(daySky, day)
	if r.thunder > 0 {
		r.ambient.Intensity = 1
		s.Sky = dayLight
	}

	fogFactor := 1.0
	if !r.IsNight() {
		fogFactor = 0.5
	}
	s.Fog.Density = 0.01 * r.fog * fogFactor

	if r.rainDrops != nil {
		r.rainDrops.Hidden = r.rain <= 0
		r.rainDrops.Count = int(maxRainDrops * r.rain)
		r.rainDrops.Opacity = math.Min(0.6, r.rain)
	}

	r.pulse.Intensity = math.Max(0, math.Sin(r.breathPhase)*2)
	r.pulse.Color = scene.RGB(0xff, 0x44, 0x44)
	if r.aligned {
		r.pulse.Intensity = 5
		r.pulse.Color = scene.RGB(0x44, 0xff, 0x44)
	}
}

// CheckProximity records whether the player stands near a shelter.
func (r *Realm) CheckProximity(p *player.Controller) {
	pos := p.Position()
	r.nearShelter = false
	for _, sh := range r.shelters {
		if sh.Sub(pos).Len() < r.cfg.ShelterRadius {
			r.nearShelter = true
			return
		}
	}
}

// HandleInteraction consumes nearby resources on interact and syncs the
// breathing rhythm on action. Action restarts after death.
func (r *Realm) HandleInteraction(ev realm.Event) {
	switch ev.Kind {
	case realm.EventInteract:
		if !r.gameOver {
			r.consumeNearby(ev.Position)
		}
	case realm.EventAction:
		if r.gameOver {
			r.restart()
			return
		}
		r.breathPhase = r.breathTarget
		r.aligned = true
	}
}

func (r *Realm) consumeNearby(pos mgl64.Vec3) {
	s := r.Scene()
	n, ok := s.Nearest(pos, r.cfg.PickupRadius, func(n *scene.Node) bool {
		_, ok := r.resources[n.ID]
		return ok
	})
	if !ok {
		return
	}
	res := r.resources[n.ID]
	switch res.kind {
	case resourceFood:
		r.meters.Food = math.Min(100, r.meters.Food+res.value)
		r.Notify(gotext.Get("Ate food (+%.0f)", res.value))
	case resourceWater:
		r.meters.Water = math.Min(100, r.meters.Water+res.value)
		r.Notify(gotext.Get("Drank water (+%.0f)", res.value))
	}
	delete(r.resources, n.ID)
	s.Remove(n.ID)
}

func (r *Realm) restart() {
	r.meters = Meters{Health: 100, Food: 100, Water: 100, Shelter: 100}
	r.gameOver, r.cause = false, CauseNone
	r.Notify(gotext.Get("You have been revived"))
}

// Meters returns the current survival stats.
func (r *Realm) Meters() Meters { return r.meters }

// GameOver reports whether the survivor died and why.
func (r *Realm) GameOver() (bool, Cause) { return r.gameOver, r.cause }

// Status implements realm.StatusReporter.
func (r *Realm) Status() []string {
	m := r.meters
	hours := int(r.timeOfDay)
	minutes := int((r.timeOfDay - float64(hours)) * 60)
	lines := []string{
		gotext.Get("Health %.0f  Food %.0f  Water %.0f  Shelter %.0f", m.Health, m.Food, m.Water, m.Shelter),
		gotext.Get("Time %02d:%02d  Weather: %s", hours, minutes, locale.Word(r.weather.String())),
	}
	if r.aligned {
		lines = append(lines, gotext.Get("Breathing aligned"))
	} else {
		lines = append(lines, gotext.Get("Breathing out of rhythm (F to sync)"))
	}
	if r.gameOver {
		lines = append(lines, gotext.Get("You died of %s. Press F to restart.", locale.Word(r.cause.String())))
	}
	return lines
}

// AmbientLevel rises with rain and with failing health.
func (r *Realm) AmbientLevel() float64 {
	return math.Max(r.rain, 1-r.meters.Health/100)
}
