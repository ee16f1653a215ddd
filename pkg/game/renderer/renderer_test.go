package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"eightcircuits/pkg/engine/clock"
	"eightcircuits/pkg/engine/scene"
	"eightcircuits/pkg/game/config"
	"eightcircuits/pkg/game/coordinator"
	"eightcircuits/pkg/game/player"
	"eightcircuits/pkg/game/realm"
	"eightcircuits/pkg/game/state"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		msg  string
		args []any
		want string
	}{
		{"Press KEY{L} to skip loading.", nil, "Press L to skip loading."},
		{"Entered REALM{%s}", []any{"Symbolic"}, "Entered Symbolic"},
		{"WARN{No circuit %d}", []any{9}, "No circuit 9"},
		{"GT{Loading the eight circuits}", nil, "Loading the eight circuits"},
		{"resonance 100%", nil, "resonance 100%"},
		{"lower{case} is not markup", nil, "lower{case} is not markup"},
	}
	for _, tt := range tests {
		if got := PlainText(tt.msg, tt.args...); got != tt.want {
			t.Errorf("PlainText(%q) = %q, want %q", tt.msg, got, tt.want)
		}
	}
}

func TestExpandMarkup(t *testing.T) {
	got := ExpandMarkup("KEY{Esc} menu  STATUS{ok}", func(fn, operand string) string {
		return "<" + fn + ":" + operand + ">"
	})
	if want := "<KEY:Esc> menu  <STATUS:ok>"; got != want {
		t.Errorf("ExpandMarkup() = %q, want %q", got, want)
	}
}

func TestPlainMarkup(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"100% charged  KEY{L}", "100% charged  L"},
		{"STATUS{%d nodes}", "%d nodes"},
		{"no markup", "no markup"},
	}
	for _, tt := range tests {
		if got := PlainMarkup(tt.in); got != tt.want {
			t.Errorf("PlainMarkup(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMarkup_KeepsPercent(t *testing.T) {
	if got := VisibleLen(FormatMarkup("50% REALM{Bio}")); got != len("50% Bio") {
		t.Errorf("VisibleLen(FormatMarkup()) = %d, want %d", got, len("50% Bio"))
	}
}

func TestFormatText_FallsBackToPlain(t *testing.T) {
	saved := Current
	t.Cleanup(func() { SetRenderer(saved) })
	SetRenderer(nil)
	if got := FormatText("REALM{%s}", "Bio"); got != "Bio" {
		t.Errorf("FormatText() = %q, want %q", got, "Bio")
	}
	if got := StyleText("x", StyleWarning); got != "x" {
		t.Errorf("StyleText() = %q, want %q", got, "x")
	}
}

func TestVisibleLenAndPad(t *testing.T) {
	s := "\x1b[31mred\x1b[0m"
	if got := VisibleLen(s); got != 3 {
		t.Errorf("VisibleLen() = %d, want 3", got)
	}
	if got := VisibleLen(PadRight(s, 6)); got != 6 {
		t.Errorf("VisibleLen(PadRight(6)) = %d, want 6", got)
	}
	if got := PadRight("long", 2); got != "long" {
		t.Errorf("PadRight(long, 2) = %q", got)
	}
}

func TestLoadingBar(t *testing.T) {
	tests := []struct {
		progress, max, width int
		want                 string
	}{
		{0, 100, 10, "[..........] 0%"},
		{40, 100, 10, "[####......] 40%"},
		{100, 100, 10, "[##########] 100%"},
		{150, 100, 4, "[####] 150%"},
		{1, 0, 2, "[##] 100%"},
	}
	for _, tt := range tests {
		if got := LoadingBar(tt.progress, tt.max, tt.width); got != tt.want {
			t.Errorf("LoadingBar(%d, %d, %d) = %q, want %q", tt.progress, tt.max, tt.width, got, tt.want)
		}
	}
}

// fixedContent places the given nodes.
type fixedContent struct {
	nodes []scene.Node
}

func (c fixedContent) BuildEnvironment(s *scene.Scene) error {
	for _, n := range c.nodes {
		s.Add(n)
	}
	return nil
}
func (fixedContent) BuildLighting(*scene.Scene) error  { return nil }
func (fixedContent) BuildObjects(*scene.Scene) error   { return nil }
func (fixedContent) BuildParticles(*scene.Scene) error { return nil }
func (fixedContent) Simulate(clock.FrameTime)          {}

func newViewGame(t *testing.T, nodes ...scene.Node) *state.Game {
	t.Helper()
	cfg := config.Default()
	g := state.NewGame(cfg)
	g.Player = player.New(cfg.PlayerSettings())
	g.Coordinator = coordinator.New(nil)
	if err := g.Coordinator.Register(1, func() realm.Realm {
		return realm.NewBase(1, "View", "", fixedContent{nodes})
	}); err != nil {
		t.Fatalf("Register(1) = %v", err)
	}
	if err := g.Coordinator.Activate(1); err != nil {
		t.Fatalf("Activate(1) = %v", err)
	}
	g.Phase = state.PhasePlaying
	return g
}

func TestProject(t *testing.T) {
	v := View{Center: mgl64.Vec3{1, 2, 1}}
	x, y := v.Project(mgl64.Vec3{4, 0, -1})
	if x != 3 || y != -2 {
		t.Errorf("Project() = %v, %v, want 3, -2", x, y)
	}

	v = View{Angle: math.Pi / 2}
	x, y = v.Project(mgl64.Vec3{3, 0, -2})
	if math.Abs(x+2) > 1e-9 || math.Abs(y+3) > 1e-9 {
		t.Errorf("Project() rotated = %v, %v, want -2, -3", x, y)
	}
}

func TestDrawList(t *testing.T) {
	g := newViewGame(t,
		scene.Node{Tag: "high", Glyph: 'h', Position: mgl64.Vec3{0, 5, 0}},
		scene.Node{Tag: "low", Glyph: 'l', Position: mgl64.Vec3{0, 1, 0}},
		scene.Node{Tag: "light", Kind: scene.KindLight, Glyph: '*'},
		scene.Node{Tag: "dust", Kind: scene.KindParticles, Glyph: '.'},
		scene.Node{Tag: "hidden", Glyph: 'x', Hidden: true},
		scene.Node{Tag: "blank"},
	)
	var got []string
	for _, n := range DrawList(g.Coordinator.Active().Scene()) {
		got = append(got, n.Tag)
	}
	want := []string{"dust", "light", "low", "high"}
	if len(got) != len(want) {
		t.Fatalf("DrawList() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DrawList()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	g.Coordinator.Active().SetVisible(false)
	if n := len(DrawList(g.Coordinator.Active().Scene())); n != 0 {
		t.Errorf("DrawList() of a hidden scene = %d nodes, want 0", n)
	}
}

func TestDim(t *testing.T) {
	faint := &scene.Node{Color: scene.Color{R: 1, G: 1, B: 1}, Opacity: 0.1}
	if got := Dim(faint); got.R != 0.25 {
		t.Errorf("Dim(faint).R = %v, want the 0.25 floor", got.R)
	}
	full := &scene.Node{Color: scene.Color{R: 1}, Opacity: 1}
	if got := Dim(full); got.R != 1 {
		t.Errorf("Dim(full).R = %v, want 1", got.R)
	}
	light := &scene.Node{Kind: scene.KindLight, Color: scene.Color{R: 1}, Opacity: 1, Intensity: 0}
	if got := Dim(light); got.R != 0.5 {
		t.Errorf("Dim(dark light).R = %v, want 0.5", got.R)
	}
}

func TestRaster(t *testing.T) {
	g := newViewGame(t, scene.Node{Tag: "rock", Glyph: 'R', Position: mgl64.Vec3{3, 0, -2}, Color: scene.Color{R: 1}})

	grid := Raster(g, 11, 11, 1)
	if len(grid) != 11 || len(grid[0]) != 11 {
		t.Fatalf("Raster() is %dx%d, want 11x11", len(grid[0]), len(grid))
	}
	if c := grid[5][5]; c.Glyph != '@' || !c.Player {
		t.Errorf("centre cell = %q, want the player", c.Glyph)
	}
	if c := grid[3][8]; c.Glyph != 'R' {
		t.Errorf("cell (8,3) = %q, want R", c.Glyph)
	}

	g.Mode = state.ModeOrbit
	g.OrbitAngle = math.Pi / 2
	grid = Raster(g, 11, 11, 1)
	if c := grid[2][3]; c.Glyph != 'R' {
		t.Errorf("orbit cell (3,2) = %q, want R", c.Glyph)
	}
	for _, row := range grid {
		for _, c := range row {
			if c.Player {
				t.Fatal("player drawn in orbit mode")
			}
		}
	}
}

func TestRaster_NoActiveRealm(t *testing.T) {
	g := state.NewGame(config.Default())
	grid := Raster(g, 4, 3, 1)
	if len(grid) != 3 || len(grid[0]) != 4 || grid[1][1].Glyph != 0 {
		t.Error("Raster() without a realm should be an empty grid")
	}
}
