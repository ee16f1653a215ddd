package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "circuits.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault_Validates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}
	if c.Clock.StepHz != Default().Clock.StepHz {
		t.Errorf("Clock.StepHz = %d, want %d", c.Clock.StepHz, Default().Clock.StepHz)
	}
}

func TestLoad_OverridesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
seed: 42
player:
  move_speed: 7
realms:
  void:
    object_count: 3
controls:
  Jump: j
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if c.Seed != 42 || c.Player.MoveSpeed != 7 || c.Realms.Void.ObjectCount != 3 {
		t.Errorf("overrides not applied: seed %d speed %v void objects %d", c.Seed, c.Player.MoveSpeed, c.Realms.Void.ObjectCount)
	}
	if c.Player.Gravity != Default().Player.Gravity {
		t.Errorf("Player.Gravity = %v, want the default %v", c.Player.Gravity, Default().Player.Gravity)
	}
	if c.Realms.Bio.FoodCount != Default().Realms.Bio.FoodCount {
		t.Errorf("Realms.Bio.FoodCount = %d, want the default", c.Realms.Bio.FoodCount)
	}
	if c.Controls["Jump"] != "j" {
		t.Errorf(`Controls["Jump"] = %q, want "j"`, c.Controls["Jump"])
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad yaml", "player: [", "circuits.yaml"},
		{"zero step", "clock:\n  step_hz: 0\n", "step_hz"},
		{"short start", "player:\n  start: [1, 2]\n", "player.start"},
		{"loading", "loading:\n  step_percent: 0\n", "loading"},
		{"flows", "realms:\n  holistic:\n    initial_flows: 20\n", "max_flows"},
		{"npcs", "realms:\n  emotional:\n    npc_min: 12\n", "npc_max"},
		{"unknown control", "controls:\n  Fly: x\n", "Fly"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Load() = nil, want an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestPlayerSettings(t *testing.T) {
	c := Default()
	c.Player.Start = []float64{1, 3, -2}
	c.Player.MoveSpeed = 9
	s := c.PlayerSettings()
	if s.Start != (mgl64.Vec3{1, 3, -2}) || s.MoveSpeed != 9 {
		t.Errorf("PlayerSettings() = start %v speed %v, want (1,3,-2) and 9", s.Start, s.MoveSpeed)
	}
}

func TestClockStep(t *testing.T) {
	c := Default()
	c.Clock.StepHz = 50
	if got := c.ClockStep(); got != 20*time.Millisecond {
		t.Errorf("ClockStep() = %v, want 20ms", got)
	}
}

func TestCurrent(t *testing.T) {
	saved := Current()
	t.Cleanup(func() { SetCurrent(saved) })

	c := Default()
	c.Seed = 7
	SetCurrent(c)
	if Current().Seed != 7 {
		t.Errorf("Current().Seed = %d, want 7", Current().Seed)
	}
}
