// Package config loads the YAML tuning file and holds the active configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"eightcircuits/pkg/engine/input"
	"eightcircuits/pkg/game/player"
)

// DefaultPath is the tuning file looked up when no -config flag is given.
const DefaultPath = "circuits.yaml"

// Config is the full tuning of a session.
type Config struct {
	Seed    int64         `yaml:"seed"`
	Player  PlayerConfig  `yaml:"player"`
	Clock   ClockConfig   `yaml:"clock"`
	Loading LoadingConfig `yaml:"loading"`
	Display DisplayConfig `yaml:"display"`
	Audio   AudioConfig   `yaml:"audio"`
	Realms  RealmsConfig  `yaml:"realms"`

	// Controls rebinds actions by name, e.g. "Jump": "j".
	Controls map[string]string `yaml:"controls"`
}

type PlayerConfig struct {
	Start            []float64 `yaml:"start"`
	MoveSpeed        float64   `yaml:"move_speed"`
	SprintMultiplier float64   `yaml:"sprint_multiplier"`
	JumpVelocity     float64   `yaml:"jump_velocity"`
	Gravity          float64   `yaml:"gravity"`
	GroundY          float64   `yaml:"ground_y"`
	LookSensitivity  float64   `yaml:"look_sensitivity"`
	KeyLookPixels    float64   `yaml:"key_look_pixels"`
}

type ClockConfig struct {
	StepHz   int `yaml:"step_hz"`
	MaxSteps int `yaml:"max_steps"`
}

type LoadingConfig struct {
	StepPercent     int     `yaml:"step_percent"`
	IntervalSeconds float64 `yaml:"interval_seconds"`
}

type DisplayConfig struct {
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	FrameRate        int     `yaml:"frame_rate"`
	CellSize         float64 `yaml:"cell_size"`
	PixelsPerUnit    float64 `yaml:"pixels_per_unit"`
	HeldPulseSeconds float64 `yaml:"held_pulse_seconds"`
}

type AudioConfig struct {
	Enabled       bool    `yaml:"enabled"`
	SampleRate    int     `yaml:"sample_rate"`
	BaseFrequency float64 `yaml:"base_frequency"`
	MaxVolume     float64 `yaml:"max_volume"`
}

type RealmsConfig struct {
	Bio          BioConfig          `yaml:"bio"`
	Emotional    EmotionalConfig    `yaml:"emotional"`
	Symbolic     SymbolicConfig     `yaml:"symbolic"`
	Social       SocialConfig       `yaml:"social"`
	Holistic     HolisticConfig     `yaml:"holistic"`
	Neurogenetic NeurogeneticConfig `yaml:"neurogenetic"`
	Quantum      QuantumConfig      `yaml:"quantum"`
	Void         VoidConfig         `yaml:"void"`
}

type BioConfig struct {
	FoodCount          int     `yaml:"food_count"`
	WaterCount         int     `yaml:"water_count"`
	ShelterCount       int     `yaml:"shelter_count"`
	ResourceMinValue   float64 `yaml:"resource_min_value"`
	ResourceMaxValue   float64 `yaml:"resource_max_value"`
	PickupRadius       float64 `yaml:"pickup_radius"`
	ShelterRadius      float64 `yaml:"shelter_radius"`
	FieldRadius        float64 `yaml:"field_radius"`
	FoodDecay          float64 `yaml:"food_decay"`
	WaterDecay         float64 `yaml:"water_decay"`
	ShelterDecay       float64 `yaml:"shelter_decay"`
	ShelterGain        float64 `yaml:"shelter_gain"`
	CriticalLevel      float64 `yaml:"critical_level"`
	DangerLevel        float64 `yaml:"danger_level"`
	BreathRate         float64 `yaml:"breath_rate"`
	BreathTargetChance float64 `yaml:"breath_target_chance"`
	BreathTolerance    float64 `yaml:"breath_tolerance"`
	DayLengthSeconds   float64 `yaml:"day_length_seconds"`
	NightStart         float64 `yaml:"night_start"`
	NightEnd           float64 `yaml:"night_end"`
	WeatherInterval    float64 `yaml:"weather_interval"`
}

type EmotionalConfig struct {
	NPCMin             int     `yaml:"npc_min"`
	NPCMax             int     `yaml:"npc_max"`
	NPCSpeedMin        float64 `yaml:"npc_speed_min"`
	NPCSpeedMax        float64 `yaml:"npc_speed_max"`
	IdleMin            float64 `yaml:"idle_min"`
	IdleMax            float64 `yaml:"idle_max"`
	WanderRadius       float64 `yaml:"wander_radius"`
	ArriveDistance     float64 `yaml:"arrive_distance"`
	TerritoryDistance  float64 `yaml:"territory_distance"`
	TerritoryRadius    float64 `yaml:"territory_radius"`
	StructureRadius    float64 `yaml:"structure_radius"`
	FlashSeconds       float64 `yaml:"flash_seconds"`
	WeatherLerpSeconds float64 `yaml:"weather_lerp_seconds"`
}

type SymbolicConfig struct {
	SymbolCount    int     `yaml:"symbol_count"`
	TextCount      int     `yaml:"text_count"`
	InteractRadius float64 `yaml:"interact_radius"`
	FieldRadius    float64 `yaml:"field_radius"`
}

type SocialConfig struct {
	DataPointCount     int     `yaml:"data_point_count"`
	StreamCount        int     `yaml:"stream_count"`
	ProximityRadius    float64 `yaml:"proximity_radius"`
	ProximityGain      float64 `yaml:"proximity_gain"`
	Decay              float64 `yaml:"decay"`
	StreamBoost        float64 `yaml:"stream_boost"`
	StreamRadius       float64 `yaml:"stream_radius"`
	TargetConnectivity float64 `yaml:"target_connectivity"`
	FieldRadius        float64 `yaml:"field_radius"`
}

type HolisticConfig struct {
	NodeCount         int     `yaml:"node_count"`
	ConnectionChance  float64 `yaml:"connection_chance"`
	SequenceLength    int     `yaml:"sequence_length"`
	SimultaneousSize  int     `yaml:"simultaneous_size"`
	ResonanceDecay    float64 `yaml:"resonance_decay"`
	ResonanceGain     float64 `yaml:"resonance_gain"`
	InteractRadius    float64 `yaml:"interact_radius"`
	InitialFlows      int     `yaml:"initial_flows"`
	MaxFlows          int     `yaml:"max_flows"`
	BranchChance      float64 `yaml:"branch_chance"`
	MaxBranches       int     `yaml:"max_branches"`
	MergeDistance     float64 `yaml:"merge_distance"`
	FlowPoints        int     `yaml:"flow_points"`
	CompletionSeconds float64 `yaml:"completion_seconds"`
	FieldRadius       float64 `yaml:"field_radius"`
}

type NeurogeneticConfig struct {
	ChoiceRadius   float64 `yaml:"choice_radius"`
	InteractRadius float64 `yaml:"interact_radius"`
	StrandCount    int     `yaml:"strand_count"`
	StreamCount    int     `yaml:"stream_count"`
	ParticleBatch  int     `yaml:"particle_batch"`
	RotationSpeed  float64 `yaml:"rotation_speed"`
}

type QuantumConfig struct {
	Pairs          int     `yaml:"pairs"`
	TeleportChance float64 `yaml:"teleport_chance"`
	FlickerChance  float64 `yaml:"flicker_chance"`
	Displacement   float64 `yaml:"displacement"`
	TrailLength    int     `yaml:"trail_length"`
	InteractRadius float64 `yaml:"interact_radius"`
	PulseSeconds   float64 `yaml:"pulse_seconds"`
}

type VoidConfig struct {
	InstabilityRate float64 `yaml:"instability_rate"`
	ObjectCount     int     `yaml:"object_count"`
}

// Default returns the stock tuning.
func Default() Config {
	p := player.DefaultSettings()
	return Config{
		Player: PlayerConfig{
			Start:            []float64{p.Start.X(), p.Start.Y(), p.Start.Z()},
			MoveSpeed:        p.MoveSpeed,
			SprintMultiplier: p.SprintMultiplier,
			JumpVelocity:     p.JumpVelocity,
			Gravity:          p.Gravity,
			GroundY:          p.GroundY,
			LookSensitivity:  p.LookSensitivity,
			KeyLookPixels:    40,
		},
		Clock:   ClockConfig{StepHz: 60, MaxSteps: 5},
		Loading: LoadingConfig{StepPercent: 20, IntervalSeconds: 0.2},
		Display: DisplayConfig{
			Width:            1024,
			Height:           768,
			FrameRate:        30,
			CellSize:         2,
			PixelsPerUnit:    8,
			HeldPulseSeconds: 0.15,
		},
		Audio: AudioConfig{Enabled: true, SampleRate: 44100, BaseFrequency: 110, MaxVolume: 0.5},
		Realms: RealmsConfig{
			Bio: BioConfig{
				FoodCount: 15, WaterCount: 12, ShelterCount: 5,
				ResourceMinValue: 20, ResourceMaxValue: 40,
				PickupRadius: 3, ShelterRadius: 25, FieldRadius: 40,
				FoodDecay: 0.5, WaterDecay: 0.8, ShelterDecay: 0.3, ShelterGain: 1,
				CriticalLevel: 20, DangerLevel: 40,
				BreathRate: 0.5, BreathTargetChance: 0.005, BreathTolerance: 0.2,
				DayLengthSeconds: 300, NightStart: 18.5, NightEnd: 6,
				WeatherInterval: 120,
			},
			Emotional: EmotionalConfig{
				NPCMin: 5, NPCMax: 9, NPCSpeedMin: 0.5, NPCSpeedMax: 1,
				IdleMin: 5, IdleMax: 10, WanderRadius: 10, ArriveDistance: 0.5,
				TerritoryDistance: 30, TerritoryRadius: 15, StructureRadius: 3,
				FlashSeconds: 2, WeatherLerpSeconds: 3,
			},
			Symbolic: SymbolicConfig{SymbolCount: 20, TextCount: 10, InteractRadius: 3, FieldRadius: 30},
			Social: SocialConfig{
				DataPointCount: 30, StreamCount: 6, ProximityRadius: 5, ProximityGain: 0.01,
				Decay: 0.005, StreamBoost: 0.1, StreamRadius: 5, TargetConnectivity: 0.5, FieldRadius: 30,
			},
			Holistic: HolisticConfig{
				NodeCount: 15, ConnectionChance: 0.3, SequenceLength: 3, SimultaneousSize: 4,
				ResonanceDecay: 0.005, ResonanceGain: 0.02, InteractRadius: 3,
				InitialFlows: 5, MaxFlows: 16, BranchChance: 0.002, MaxBranches: 2,
				MergeDistance: 5, FlowPoints: 48, CompletionSeconds: 2, FieldRadius: 40,
			},
			Neurogenetic: NeurogeneticConfig{
				ChoiceRadius: 25, InteractRadius: 5, StrandCount: 3, StreamCount: 5,
				ParticleBatch: 200, RotationSpeed: 0.2,
			},
			Quantum: QuantumConfig{
				Pairs: 5, TeleportChance: 0.001, FlickerChance: 0.005, Displacement: 5,
				TrailLength: 20, InteractRadius: 5, PulseSeconds: 1,
			},
			Void: VoidConfig{InstabilityRate: 0.01, ObjectCount: 12},
		},
	}
}

// Load reads the tuning file at path over the defaults. A missing file is
// not an error: the defaults are returned.
func Load(path string) (Config, error) {
	c := Default()
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate rejects tunings the simulation cannot run with.
func (c Config) Validate() error {
	if c.Clock.StepHz <= 0 {
		return fmt.Errorf("clock.step_hz must be positive, got %d", c.Clock.StepHz)
	}
	if len(c.Player.Start) != 3 {
		return fmt.Errorf("player.start needs 3 components, got %d", len(c.Player.Start))
	}
	if c.Loading.StepPercent <= 0 || c.Loading.IntervalSeconds <= 0 {
		return errors.New("loading.step_percent and loading.interval_seconds must be positive")
	}
	if c.Realms.Holistic.MaxFlows < c.Realms.Holistic.InitialFlows {
		return fmt.Errorf("realms.holistic.max_flows (%d) is below initial_flows (%d)",
			c.Realms.Holistic.MaxFlows, c.Realms.Holistic.InitialFlows)
	}
	if c.Realms.Emotional.NPCMax < c.Realms.Emotional.NPCMin {
		return errors.New("realms.emotional.npc_max is below npc_min")
	}
	for name := range c.Controls {
		if _, ok := input.ActionByName(name); !ok {
			return fmt.Errorf("controls: unknown action %q", name)
		}
	}
	return nil
}

// PlayerSettings converts the player section into controller settings.
func (c Config) PlayerSettings() player.Settings {
	s := player.DefaultSettings()
	if len(c.Player.Start) == 3 {
		s.Start = mgl64.Vec3{c.Player.Start[0], c.Player.Start[1], c.Player.Start[2]}
	}
	s.MoveSpeed = c.Player.MoveSpeed
	s.SprintMultiplier = c.Player.SprintMultiplier
	s.JumpVelocity = c.Player.JumpVelocity
	s.Gravity = c.Player.Gravity
	s.GroundY = c.Player.GroundY
	s.LookSensitivity = c.Player.LookSensitivity
	return s
}

// ClockStep returns the fixed simulation step.
func (c Config) ClockStep() time.Duration {
	return time.Second / time.Duration(c.Clock.StepHz)
}

var current = Default()

// Current returns the active configuration.
func Current() Config {
	return current
}

// SetCurrent replaces the active configuration.
func SetCurrent(c Config) {
	current = c
}
