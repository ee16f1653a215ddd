package holistic

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
	r := New(config.Default().Realms.Holistic, rand.New(rand.NewSource(5)))
	if err := r.Setup(); err != nil {
		t.Fatalf("Setup() = %v, want nil", err)
	}
	return r
}

func line(from mgl64.Vec3, step mgl64.Vec3, n int) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, n)
	for i := range out {
		out[i] = from.Add(step.Mul(float64(i)))
	}
	return out
}

func touch(r *Realm, i int) {
	r.HandleInteraction(realm.Event{Kind: realm.EventInteract, Position: r.nodes[i].Position})
}

func TestArena_EvictsOldest(t *testing.T) {
	a := NewArena(2)
	first, ev := a.Add(Flow{})
	if ev != 0 {
		t.Fatalf("Add() evicted %d from an empty arena", ev)
	}
	second, _ := a.Add(Flow{})
	third, ev := a.Add(Flow{})
	if ev != first {
		t.Errorf("evicted = %d, want %d", ev, first)
	}
	if a.Len() != 2 {
		t.Errorf("Len() = %d, want 2", a.Len())
	}
	if ids := a.IDs(); len(ids) != 2 || ids[0] != second || ids[1] != third {
		t.Errorf("IDs() = %v, want [%d %d]", ids, second, third)
	}
	if _, ok := a.Get(first); ok {
		t.Error("evicted flow still reachable")
	}
}

func TestArena_IDsNeverReused(t *testing.T) {
	a := NewArena(4)
	id, _ := a.Add(Flow{})
	if !a.Remove(id) {
		t.Fatal("Remove() = false for a live flow")
	}
	if a.Remove(id) {
		t.Error("Remove() = true for a removed flow")
	}
	a.Clear()
	next, _ := a.Add(Flow{})
	if next <= id {
		t.Errorf("Add() after Remove and Clear = %d, want > %d", next, id)
	}
}

func TestArena_MinimumCapacity(t *testing.T) {
	if got := NewArena(0).Cap(); got != 1 {
		t.Errorf("NewArena(0).Cap() = %d, want 1", got)
	}
}

func TestPointAt(t *testing.T) {
	path := line(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 11)
	tests := []struct {
		t    float64
		want float64
	}{
		{0, 0},
		{0.25, 2.5},
		{0.5, 5},
		{1.5, 5},
		{-0.25, 7.5},
	}
	for _, tt := range tests {
		if got := pointAt(path, tt.t).X(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("pointAt(path, %v).X() = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestResample_KeepsEnds(t *testing.T) {
	path := line(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 7)
	got := resample(path, 13)
	if len(got) != 13 {
		t.Fatalf("len(resample) = %d, want 13", len(got))
	}
	if got[0] != path[0] || got[12] != path[6] {
		t.Errorf("resample ends = %v..%v, want %v..%v", got[0], got[12], path[0], path[6])
	}
	if math.Abs(got[1].X()-0.5) > 1e-9 {
		t.Errorf("resample[1].X() = %v, want 0.5", got[1].X())
	}
}

func TestSetup_BuildsFieldAndPatterns(t *testing.T) {
	r := newRealm(t)
	cfg := config.Default().Realms.Holistic
	if got := len(r.Scene().Tagged("node")); got != cfg.NodeCount {
		t.Errorf("len(Tagged(node)) = %d, want %d", got, cfg.NodeCount)
	}
	if r.Flows().Len() != cfg.InitialFlows {
		t.Errorf("Flows().Len() = %d, want %d", r.Flows().Len(), cfg.InitialFlows)
	}
	if got := len(r.Scene().Tagged("flow")); got != cfg.InitialFlows {
		t.Errorf("len(Tagged(flow)) = %d, want %d", got, cfg.InitialFlows)
	}
	ps := r.Patterns()
	if len(ps) != 2 || len(ps[0].Nodes) != cfg.SequenceLength || len(ps[1].Nodes) != cfg.SimultaneousSize {
		t.Fatalf("Patterns() sizes wrong: %+v", ps)
	}
}

func TestSetup_PatternTooLargeFails(t *testing.T) {
	cfg := config.Default().Realms.Holistic
	cfg.NodeCount = 2
	r := New(cfg, rand.New(rand.NewSource(5)))
	if err := r.Setup(); err == nil {
		t.Error("Setup() = nil with fewer nodes than the pattern needs")
	}
}

func TestHandleInteraction_Resonance(t *testing.T) {
	r := newRealm(t)
	r.HandleInteraction(realm.Event{Kind: realm.EventInteract, Position: mgl64.Vec3{500, 0, 500}})
	if r.Resonance() != 0 {
		t.Errorf("Resonance() = %v far from nodes, want 0", r.Resonance())
	}

	touch(r, 0)
	if math.Abs(r.Resonance()-0.02) > 1e-9 {
		t.Errorf("Resonance() = %v, want 0.02", r.Resonance())
	}

	r.resonance = 0.99
	touch(r, 0)
	if r.Resonance() != 1 {
		t.Errorf("Resonance() = %v, want 1 (capped)", r.Resonance())
	}

	r.HandleInteraction(realm.Event{Kind: realm.EventAction, Position: r.nodes[0].Position})
	if r.Resonance() != 1 {
		t.Error("action changed resonance")
	}
}

func TestPattern_SequenceNeedsOrder(t *testing.T) {
	p := &Pattern{Kind: Sequence, Nodes: []int{4, 1, 7}}
	p.reset()
	if p.touch(1) {
		t.Error("touch(1) advanced before 4")
	}
	for _, i := range []int{4, 1, 7} {
		if !p.touch(i) {
			t.Errorf("touch(%d) did not advance", i)
		}
	}
	if !p.Completed || p.Progress() != 3 {
		t.Errorf("Completed = %v Progress = %d, want true 3", p.Completed, p.Progress())
	}
}

func TestPattern_SimultaneousAnyOrder(t *testing.T) {
	p := &Pattern{Kind: Simultaneous, Nodes: []int{2, 3, 5}}
	p.reset()
	for _, i := range []int{5, 5, 2, 9, 3} {
		p.touch(i)
	}
	if !p.Completed || p.Progress() != 3 {
		t.Errorf("Completed = %v Progress = %d, want true 3", p.Completed, p.Progress())
	}
}

func TestSimulate_CompletionBurstsAndResets(t *testing.T) {
	r := newRealm(t)
	seq := r.Patterns()[0]
	for _, i := range seq.Nodes {
		touch(r, i)
	}
	if !seq.Completed {
		t.Fatal("sequence not completed after touching every node in order")
	}

	r.Tick(clock.FrameTime{Delta: 0.01, Elapsed: 0.01})
	if seq.Completed || seq.Progress() != 0 {
		t.Errorf("sequence not reset: Completed = %v Progress = %d", seq.Completed, seq.Progress())
	}
	if r.Completions() != 1 {
		t.Errorf("Completions() = %d, want 1", r.Completions())
	}
	if got := len(r.Scene().Tagged("burst")); got != 1 {
		t.Fatalf("len(Tagged(burst)) = %d, want 1", got)
	}
	if len(r.DrainNotices()) == 0 {
		t.Error("no notice for the completed pattern")
	}

	cfg := config.Default().Realms.Holistic
	r.Tasks().Tick(cfg.CompletionSeconds)
	if got := len(r.Scene().Tagged("burst")); got != 0 {
		t.Errorf("len(Tagged(burst)) = %d after the effect, want 0", got)
	}
}

func TestSimulate_ResonanceDecays(t *testing.T) {
	r := newRealm(t)
	r.resonance = 0.5
	r.Simulate(clock.FrameTime{Delta: 2, Elapsed: 2})
	if math.Abs(r.Resonance()-0.49) > 1e-9 {
		t.Errorf("Resonance() = %v, want 0.49", r.Resonance())
	}
	// Fog follows the resonance at the start of the tick.
	if got := r.Scene().Fog.Density; math.Abs(got-0.0025) > 1e-9 {
		t.Errorf("Fog.Density = %v, want 0.0025", got)
	}
}

func TestMerge_JoinsCloseFlows(t *testing.T) {
	r := newRealm(t)
	s := r.Scene()
	for _, id := range r.flows.IDs() {
		r.removeFlow(s, id)
	}
	n := r.cfg.FlowPoints
	r.addFlow(s, Flow{Path: line(mgl64.Vec3{0, 20, 0}, mgl64.Vec3{1, 0, 0}, n), Speed: 0.02})
	r.addFlow(s, Flow{Path: line(mgl64.Vec3{10, 21, -10}, mgl64.Vec3{0, 0, 1}, n), Speed: 0.04})
	r.addFlow(s, Flow{Path: line(mgl64.Vec3{0, 200, 0}, mgl64.Vec3{1, 0, 0}, n), Speed: 0.02})

	r.merge(s)

	if r.Flows().Len() != 2 {
		t.Fatalf("Flows().Len() = %d, want 2", r.Flows().Len())
	}
	ids := r.Flows().IDs()
	merged, _ := r.Flows().Get(ids[len(ids)-1])
	if math.Abs(merged.Speed-0.03) > 1e-9 {
		t.Errorf("merged Speed = %v, want 0.03", merged.Speed)
	}
	if len(merged.Path) != n {
		t.Errorf("len(merged.Path) = %d, want %d", len(merged.Path), n)
	}
	if got := len(s.Tagged("flow")); got != 2 {
		t.Errorf("len(Tagged(flow)) = %d, want 2", got)
	}
}

func TestMerge_SkipsParentAndChild(t *testing.T) {
	r := newRealm(t)
	s := r.Scene()
	for _, id := range r.flows.IDs() {
		r.removeFlow(s, id)
	}
	path := line(mgl64.Vec3{0, 20, 0}, mgl64.Vec3{1, 0, 0}, r.cfg.FlowPoints)
	parent := r.addFlow(s, Flow{Path: path, Speed: 0.02})
	r.addFlow(s, Flow{Path: path, Speed: 0.02, Parent: parent, Branches: 1})

	r.merge(s)

	if r.Flows().Len() != 2 {
		t.Errorf("Flows().Len() = %d, want 2", r.Flows().Len())
	}
}

func TestBranch_BoundedByArena(t *testing.T) {
	cfg := config.Default().Realms.Holistic
	cfg.BranchChance = 1
	cfg.MaxBranches = 100
	cfg.MergeDistance = 0
	r := New(cfg, rand.New(rand.NewSource(5)))
	if err := r.Setup(); err != nil {
		t.Fatalf("Setup() = %v, want nil", err)
	}
	for i := 0; i < 10; i++ {
		r.branch(r.Scene())
	}
	if r.Flows().Len() != cfg.MaxFlows {
		t.Errorf("Flows().Len() = %d, want %d", r.Flows().Len(), cfg.MaxFlows)
	}
	if got := len(r.Scene().Tagged("flow")); got != cfg.MaxFlows {
		t.Errorf("len(Tagged(flow)) = %d, want %d (evicted visuals dropped)", got, cfg.MaxFlows)
	}
}

func TestDispose_Resets(t *testing.T) {
	r := newRealm(t)
	r.resonance = 0.7
	r.Dispose()
	if r.Resonance() != 0 || r.Flows().Len() != 0 || r.Patterns() != nil {
		t.Error("state survived Dispose")
	}
}
