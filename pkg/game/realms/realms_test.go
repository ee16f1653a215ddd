package realms

import (
	"testing"

	"eightcircuits/pkg/engine/scene"
	"eightcircuits/pkg/game/config"
	"eightcircuits/pkg/game/coordinator"
	"eightcircuits/pkg/game/interaction"
)

func newCoordinator(t *testing.T, seed int64) *coordinator.Coordinator {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = seed
	c := coordinator.New(interaction.New())
	if err := RegisterAll(c, cfg); err != nil {
		t.Fatalf("RegisterAll() = %v", err)
	}
	return c
}

func TestCatalog(t *testing.T) {
	want := []string{
		"Bio-Survival", "Emotional-Territorial", "Symbolic", "Social-Sexual",
		"Holistic-Intuitive", "Neurogenetic", "Quantum-Nonlocal", "Meta Void",
	}
	if len(Catalog) != len(want) {
		t.Fatalf("len(Catalog) = %d, want %d", len(Catalog), len(want))
	}
	for i, e := range Catalog {
		if e.ID != i+1 || e.Name != want[i] {
			t.Errorf("Catalog[%d] = %d %q, want %d %q", i, e.ID, e.Name, i+1, want[i])
		}
	}
	if _, ok := Lookup(9); ok {
		t.Error("Lookup(9) ok = true, want false")
	}
	if e, ok := Lookup(5); !ok || e.Name != "Holistic-Intuitive" {
		t.Errorf("Lookup(5) = %v, %v", e, ok)
	}
}

func TestRegisterAll_EveryRealmBuilds(t *testing.T) {
	c := newCoordinator(t, 42)
	if got := c.IDs(); len(got) != 8 {
		t.Fatalf("IDs() = %v, want 8 realms", got)
	}
	for _, e := range Catalog {
		if err := c.Activate(e.ID); err != nil {
			t.Fatalf("Activate(%d) = %v", e.ID, err)
		}
		r := c.Active()
		if r.Name() != e.Name {
			t.Errorf("realm %d Name() = %q, want %q", e.ID, r.Name(), e.Name)
		}
		if d, ok := r.(interface{ Degraded() bool }); ok && d.Degraded() {
			t.Errorf("realm %d fell back to the placeholder scene", e.ID)
		}
		if r.Scene().Len() == 0 || r.Scene().Count(scene.KindLight) == 0 {
			t.Errorf("realm %d scene: %d nodes, %d lights", e.ID, r.Scene().Len(), r.Scene().Count(scene.KindLight))
		}
	}
	if err := RegisterAll(c, config.Default()); err == nil {
		t.Error("second RegisterAll() = nil, want a duplicate registration error")
	}
}

func TestRegisterAll_SeedIsReproducible(t *testing.T) {
	a, b := newCoordinator(t, 7), newCoordinator(t, 7)
	for _, id := range []int{1, 4} {
		a.Activate(id)
		b.Activate(id)
		var pa, pb []scene.Node
		a.Active().Scene().Each(func(n *scene.Node) { pa = append(pa, *n) })
		b.Active().Scene().Each(func(n *scene.Node) { pb = append(pb, *n) })
		if len(pa) != len(pb) {
			t.Fatalf("realm %d: %d nodes vs %d", id, len(pa), len(pb))
		}
		for i := range pa {
			if pa[i].Position != pb[i].Position {
				t.Errorf("realm %d node %d at %v vs %v", id, i, pa[i].Position, pb[i].Position)
				break
			}
		}
	}
}
