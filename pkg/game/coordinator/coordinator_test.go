package coordinator

import (
	"errors"
	"testing"

	"eightcircuits/pkg/engine/clock"
	"eightcircuits/pkg/engine/scene"
	"eightcircuits/pkg/game/interaction"
	"eightcircuits/pkg/game/player"
	"eightcircuits/pkg/game/realm"
)

// testContent builds one object and counts simulation steps.
type testContent struct {
	fail      bool
	simulated int
	panicTick bool
}

func (c *testContent) BuildEnvironment(s *scene.Scene) error {
	if c.fail {
		return errors.New("no environment")
	}
	s.Add(scene.Node{Tag: "thing", Glyph: 'x'})
	return nil
}
func (c *testContent) BuildLighting(*scene.Scene) error  { return nil }
func (c *testContent) BuildObjects(*scene.Scene) error   { return nil }
func (c *testContent) BuildParticles(*scene.Scene) error { return nil }
func (c *testContent) Simulate(clock.FrameTime) {
	c.simulated++
	if c.panicTick {
		panic("tick")
	}
}

// testRealm also receives interaction events.
type testRealm struct {
	*realm.Base
	content *testContent
	events  int
}

func (r *testRealm) HandleInteraction(realm.Event) { r.events++ }

// panicRealm panics in Setup itself.
type panicRealm struct {
	*realm.Base
}

func (panicRealm) Setup() error { panic("setup") }

func newTestRealm(id int) *testRealm {
	c := &testContent{}
	return &testRealm{Base: realm.NewBase(id, "Test", "", c), content: c}
}

// newTestCoordinator registers realms 1..n and returns them by id.
func newTestCoordinator(t *testing.T, n int) (*Coordinator, map[int]*testRealm, *interaction.Manager) {
	t.Helper()
	im := interaction.New()
	c := New(im)
	built := make(map[int]*testRealm)
	for id := 1; id <= n; id++ {
		id := id
		if err := c.Register(id, func() realm.Realm {
			r := newTestRealm(id)
			built[id] = r
			return r
		}); err != nil {
			t.Fatalf("Register(%d) = %v", id, err)
		}
	}
	return c, built, im
}

func TestRegister(t *testing.T) {
	c, _, _ := newTestCoordinator(t, 2)
	if err := c.Register(2, func() realm.Realm { return newTestRealm(2) }); !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("Register(2) again = %v, want ErrAlreadyRegistered", err)
	}
	if err := c.Register(0, func() realm.Realm { return nil }); err == nil {
		t.Error("Register(0) = nil, want an error")
	}
	if got := c.IDs(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("IDs() = %v, want [1 2]", got)
	}
}

func TestPrepareAll_ConstructsWithoutSetup(t *testing.T) {
	c, built, _ := newTestCoordinator(t, 3)
	c.PrepareAll()
	c.PrepareAll()
	if len(built) != 3 {
		t.Fatalf("constructed %d realms, want 3", len(built))
	}
	for id, r := range built {
		if r.Initialized() || r.SetupRuns() != 0 {
			t.Errorf("realm %d initialized before activation", id)
		}
	}
	if c.Active() != nil || c.ActiveID() != 0 {
		t.Error("PrepareAll() activated a realm")
	}
}

func TestActivate_Idempotent(t *testing.T) {
	c, built, _ := newTestCoordinator(t, 2)
	transitions := 0
	c.OnTransition = func(from, to realm.Realm) { transitions++ }

	for i := 0; i < 3; i++ {
		if err := c.Activate(1); err != nil {
			t.Fatalf("Activate(1) = %v", err)
		}
	}
	r := built[1]
	if r.SetupRuns() != 1 || transitions != 1 {
		t.Errorf("SetupRuns() = %d, transitions = %d, want 1 and 1", r.SetupRuns(), transitions)
	}
	if !r.Active() || !r.Scene().Visible() {
		t.Error("realm 1 not active and visible")
	}
}

func TestActivate_EndToEnd(t *testing.T) {
	c, built, im := newTestCoordinator(t, 2)
	var froms []realm.Realm
	c.OnTransition = func(from, to realm.Realm) { froms = append(froms, from) }

	c.Activate(1)
	c.Activate(2)
	c.Activate(2)

	r1, r2 := built[1], built[2]
	if c.ActiveID() != 2 || c.Active() != realm.Realm(r2) {
		t.Fatalf("ActiveID() = %d, want 2", c.ActiveID())
	}
	if r1.Active() || r1.Scene().Visible() {
		t.Error("realm 1 still shown after switching away")
	}
	if !r1.Initialized() {
		t.Error("realm 1 lost its content when hidden")
	}
	if r2.SetupRuns() != 1 {
		t.Errorf("realm 2 SetupRuns() = %d, want 1", r2.SetupRuns())
	}
	if im.Active() != realm.Realm(r2) {
		t.Error("interaction manager not bound to realm 2")
	}
	if len(froms) != 2 || froms[0] != nil || froms[1] != realm.Realm(r1) {
		t.Errorf("transition sources = %v, want [nil realm1]", froms)
	}
}

func TestActivate_CountsStableOverCycles(t *testing.T) {
	c, built, _ := newTestCoordinator(t, 2)
	c.Activate(1)
	want := built[1].Scene().Len()
	for i := 0; i < 5; i++ {
		c.Activate(2)
		c.Activate(1)
	}
	if got := built[1].Scene().Len(); got != want {
		t.Errorf("realm 1 has %d nodes after cycling, want %d", got, want)
	}
	if built[1].SetupRuns() != 1 {
		t.Errorf("SetupRuns() = %d, want 1", built[1].SetupRuns())
	}
}

func TestActivate_UnknownKeepsActive(t *testing.T) {
	c, _, _ := newTestCoordinator(t, 2)
	c.Activate(1)
	err := c.Activate(9)
	if !errors.Is(err, ErrUnknownRealm) {
		t.Errorf("Activate(9) = %v, want ErrUnknownRealm", err)
	}
	if c.ActiveID() != 1 || !c.Active().Active() {
		t.Errorf("ActiveID() = %d after a bad switch, want 1", c.ActiveID())
	}
}

func TestActivate_SetupFailureFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		factory Factory
	}{
		{"setup error", func() realm.Realm {
			r := newTestRealm(1)
			r.content.fail = true
			return r
		}},
		{"setup panic", func() realm.Realm {
			return panicRealm{realm.NewBase(1, "Panics", "", &testContent{})}
		}},
		{"factory panic", func() realm.Realm { panic("factory") }},
		{"factory nil", func() realm.Realm { return nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(interaction.New())
			c.Register(1, tt.factory)
			if err := c.Activate(1); err != nil {
				t.Fatalf("Activate(1) = %v, want nil", err)
			}
			r := c.Active()
			if r == nil || !r.Initialized() || !r.Active() {
				t.Fatal("fallback realm not initialized and active")
			}
			if r.Scene().Len() == 0 || !r.Scene().Visible() {
				t.Errorf("fallback scene: %d nodes, visible %v", r.Scene().Len(), r.Scene().Visible())
			}
		})
	}
}

func TestTick_OnlyActive(t *testing.T) {
	c, built, _ := newTestCoordinator(t, 2)
	c.Tick(clock.FrameTime{Delta: 0.1})
	c.Activate(1)
	c.Activate(2)
	for i := 0; i < 3; i++ {
		c.Tick(clock.FrameTime{Delta: 0.1})
	}
	if built[1].content.simulated != 0 || built[2].content.simulated != 3 {
		t.Errorf("simulated realm1 %d realm2 %d, want 0 and 3",
			built[1].content.simulated, built[2].content.simulated)
	}
}

func TestTick_PanicRecovered(t *testing.T) {
	c, built, _ := newTestCoordinator(t, 1)
	c.Activate(1)
	built[1].content.panicTick = true
	c.Tick(clock.FrameTime{Delta: 0.1})
	c.Tick(clock.FrameTime{Delta: 0.1})
	if built[1].content.simulated != 2 {
		t.Errorf("simulated %d times, want 2", built[1].content.simulated)
	}
}

func TestInteractDispatchCount(t *testing.T) {
	c, built, im := newTestCoordinator(t, 1)
	c.Activate(1)
	p := player.New(player.DefaultSettings())
	p.Keys.Interact = true
	for i := 0; i < 4; i++ {
		im.Tick(p)
	}
	if built[1].events != 4 || im.Dispatched() != 4 {
		t.Errorf("events %d, dispatched %d, want 4 and 4", built[1].events, im.Dispatched())
	}
}

func TestDisposeAll(t *testing.T) {
	c, built, im := newTestCoordinator(t, 2)
	c.Activate(1)
	c.Activate(2)
	c.DisposeAll()
	for id, r := range built {
		if r.Initialized() || r.Active() || r.Scene().Len() != 0 {
			t.Errorf("realm %d not released", id)
		}
	}
	if c.Active() != nil || im.Active() != nil {
		t.Error("DisposeAll() left a live realm")
	}
}
