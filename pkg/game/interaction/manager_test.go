package interaction

import (
	"testing"

	"eightcircuits/pkg/engine/clock"
	"eightcircuits/pkg/engine/scene"
	"eightcircuits/pkg/game/player"
	"eightcircuits/pkg/game/realm"
)

type noContent struct{}

func (noContent) BuildEnvironment(*scene.Scene) error { return nil }
func (noContent) BuildLighting(*scene.Scene) error    { return nil }
func (noContent) BuildObjects(*scene.Scene) error     { return nil }
func (noContent) BuildParticles(*scene.Scene) error   { return nil }
func (noContent) Simulate(clock.FrameTime)            {}

// watchingRealm records events and proximity checks.
type watchingRealm struct {
	*realm.Base
	kinds  []realm.EventKind
	checks int
	panics bool
}

func (r *watchingRealm) HandleInteraction(ev realm.Event) {
	r.kinds = append(r.kinds, ev.Kind)
	if r.panics {
		panic("handler")
	}
}

func (r *watchingRealm) CheckProximity(*player.Controller) { r.checks++ }

func newWatchingRealm() *watchingRealm {
	return &watchingRealm{Base: realm.NewBase(1, "Watch", "", noContent{})}
}

func TestTick_Dispatch(t *testing.T) {
	tests := []struct {
		name string
		keys player.Keys
		want []realm.EventKind
	}{
		{"nothing held", player.Keys{}, nil},
		{"interact", player.Keys{Interact: true}, []realm.EventKind{realm.EventInteract}},
		{"action", player.Keys{Action: true}, []realm.EventKind{realm.EventAction}},
		{"both in one tick", player.Keys{Interact: true, Action: true}, []realm.EventKind{realm.EventInteract, realm.EventAction}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			r := newWatchingRealm()
			m.SetActive(r)
			p := player.New(player.DefaultSettings())
			p.Keys = tt.keys
			m.Tick(p)
			if len(r.kinds) != len(tt.want) {
				t.Fatalf("events = %v, want %v", r.kinds, tt.want)
			}
			for i := range tt.want {
				if r.kinds[i] != tt.want[i] {
					t.Errorf("event %d = %s, want %s", i, r.kinds[i], tt.want[i])
				}
			}
			if r.checks != 1 {
				t.Errorf("proximity checks = %d, want 1", r.checks)
			}
		})
	}
}

func TestTick_HeldKeyRefires(t *testing.T) {
	m := New()
	r := newWatchingRealm()
	m.SetActive(r)
	p := player.New(player.DefaultSettings())
	p.Keys.Action = true
	const n = 5
	for i := 0; i < n; i++ {
		m.Tick(p)
	}
	if len(r.kinds) != n || m.Dispatched() != n {
		t.Errorf("events %d, Dispatched() %d, want %d", len(r.kinds), m.Dispatched(), n)
	}
}

func TestTick_HandlerPanicRecovered(t *testing.T) {
	m := New()
	r := newWatchingRealm()
	r.panics = true
	m.SetActive(r)
	p := player.New(player.DefaultSettings())
	p.Keys = player.Keys{Interact: true, Action: true}
	m.Tick(p)
	if len(r.kinds) != 2 {
		t.Errorf("events = %d, want 2 despite the first panicking", len(r.kinds))
	}
}

func TestTick_WithoutCapabilities(t *testing.T) {
	m := New()
	m.SetActive(realm.NewBase(2, "Plain", "", noContent{}))
	p := player.New(player.DefaultSettings())
	p.Keys.Interact = true
	m.Tick(p)
	if m.Dispatched() != 1 {
		t.Errorf("Dispatched() = %d, want 1", m.Dispatched())
	}
}

func TestTick_NoActiveRealm(t *testing.T) {
	m := New()
	p := player.New(player.DefaultSettings())
	p.Keys.Interact = true
	m.Tick(p)
	m.SetActive(nil)
	m.Tick(p)
	if m.Dispatched() != 0 {
		t.Errorf("Dispatched() = %d, want 0", m.Dispatched())
	}
}

func TestSetActive_DegradedRealmBindsNothing(t *testing.T) {
	m := New()
	r := newWatchingRealm()
	r.InstallFallback()
	m.SetActive(r)

	p := player.New(player.DefaultSettings())
	p.Keys = player.Keys{Interact: true, Action: true}
	m.Tick(p)

	if len(r.kinds) != 0 || r.checks != 0 {
		t.Errorf("degraded realm saw %d events and %d checks, want none", len(r.kinds), r.checks)
	}
	if m.Active() != r {
		t.Error("Active() is not the degraded realm")
	}
}
