package neurogenetic

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"eightcircuits/pkg/engine/clock"
	"eightcircuits/pkg/game/config"
	"eightcircuits/pkg/game/realm"
)

func newRealm(t *testing.T) *Realm {
	t.Helper()
	r := New(config.Default().Realms.Neurogenetic, rand.New(rand.NewSource(6)))
	if err := r.Setup(); err != nil {
		t.Fatalf("Setup() = %v, want nil", err)
	}
	return r
}

func interactAt(r *Realm, pos mgl64.Vec3) {
	r.HandleInteraction(realm.Event{Kind: realm.EventInteract, Position: pos})
}

func TestSetup_ChoicesOnRing(t *testing.T) {
	r := newRealm(t)
	choices := r.Scene().Tagged("choice")
	if len(choices) != 3 {
		t.Fatalf("len(Tagged(choice)) = %d, want 3", len(choices))
	}
	for i, c := range choices {
		p := c.Position
		if d := math.Hypot(p.X(), p.Z()); math.Abs(d-25) > 1e-9 {
			t.Errorf("choice %d at radius %v, want 25", i, d)
		}
	}
	if got := len(r.Scene().Tagged("stream")); got != config.Default().Realms.Neurogenetic.StreamCount {
		t.Errorf("len(Tagged(stream)) = %d, want %d", got, config.Default().Realms.Neurogenetic.StreamCount)
	}
}

func TestHandleInteraction_Choices(t *testing.T) {
	tests := []struct {
		choice Choice
		check  func(t *testing.T, r *Realm)
	}{
		{ChoiceMutate, func(t *testing.T, r *Realm) {
			for _, n := range r.Scene().Tagged("backbone") {
				if n.Color != mutated {
					t.Fatalf("backbone color = %v, want %v", n.Color, mutated)
				}
			}
		}},
		{ChoiceAccelerate, func(t *testing.T, r *Realm) {
			for _, st := range r.streams {
				if st.speed < 0.04 || st.speed > 0.1 {
					t.Fatalf("stream speed = %v, want doubled into 0.04..0.1", st.speed)
				}
			}
		}},
		{ChoiceExpand, func(t *testing.T, r *Realm) {
			if got := len(r.Scene().Tagged("particles")); got != 2 {
				t.Fatalf("len(Tagged(particles)) = %d, want 2", got)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.choice.String(), func(t *testing.T) {
			r := newRealm(t)
			interactAt(r, r.choices[tt.choice].Position)
			if r.Taken(tt.choice) != 1 {
				t.Errorf("Taken(%v) = %d, want 1", tt.choice, r.Taken(tt.choice))
			}
			tt.check(t, r)
		})
	}
}

func TestHandleInteraction_OutOfReach(t *testing.T) {
	r := newRealm(t)
	interactAt(r, mgl64.Vec3{0, 2, 0})
	interactAt(r, r.choices[0].Position.Add(mgl64.Vec3{5, 0, 0}))
	r.HandleInteraction(realm.Event{Kind: realm.EventAction, Position: r.choices[0].Position})
	for c := ChoiceMutate; c < choiceCount; c++ {
		if r.Taken(c) != 0 {
			t.Errorf("Taken(%v) = %d, want 0", c, r.Taken(c))
		}
	}
}

func TestSimulate_HelixRotatesAroundCentre(t *testing.T) {
	r := newRealm(t)
	h := r.helices[0]
	before := h.parts[0].Position
	dist := before.Sub(h.center).Len()

	r.Simulate(clock.FrameTime{Delta: 1, Elapsed: 1})

	after := h.parts[0].Position
	if after == before {
		t.Error("helix did not rotate")
	}
	if got := after.Sub(h.center).Len(); math.Abs(got-dist) > 1e-9 {
		t.Errorf("distance from centre = %v, want %v", got, dist)
	}
}

func TestDispose_ForgetsChoices(t *testing.T) {
	r := newRealm(t)
	r.Choose(ChoiceExpand)
	r.Dispose()
	if r.Taken(ChoiceExpand) != 0 || len(r.batches) != 0 {
		t.Error("state survived Dispose")
	}
}
