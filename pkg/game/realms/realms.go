// Package realms registers the eight circuits with a coordinator.
package realms

import (
	"fmt"
	"math/rand"
	"time"

	"eightcircuits/pkg/game/config"
	"eightcircuits/pkg/game/coordinator"
	"eightcircuits/pkg/game/realm"
	"eightcircuits/pkg/game/realms/bio"
	"eightcircuits/pkg/game/realms/emotional"
	"eightcircuits/pkg/game/realms/holistic"
	"eightcircuits/pkg/game/realms/neurogenetic"
	"eightcircuits/pkg/game/realms/quantum"
	"eightcircuits/pkg/game/realms/social"
	"eightcircuits/pkg/game/realms/symbolic"
	"eightcircuits/pkg/game/realms/void"
)

// Entry describes one circuit for menus and key bindings.
type Entry struct {
	ID          int
	Name        string
	Description string
}

// Catalog lists the circuits in id order.
var Catalog = []Entry{
	{bio.ID, bio.Name, bio.Description},
	{emotional.ID, emotional.Name, emotional.Description},
	{symbolic.ID, symbolic.Name, symbolic.Description},
	{social.ID, social.Name, social.Description},
	{holistic.ID, holistic.Name, holistic.Description},
	{neurogenetic.ID, neurogenetic.Name, neurogenetic.Description},
	{quantum.ID, quantum.Name, quantum.Description},
	{void.ID, void.Name, void.Description},
}

// Lookup returns the catalog entry for id.
func Lookup(id int) (Entry, bool) {
	for _, e := range Catalog {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// RegisterAll registers a factory for every circuit. Each realm draws from
// its own generator seeded from cfg.Seed and its id, so one realm's
// randomness never shifts another's. A zero seed uses the clock.
func RegisterAll(c *coordinator.Coordinator, cfg config.Config) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rc := cfg.Realms
	factories := map[int]func(rng *rand.Rand) realm.Realm{
		bio.ID:          func(rng *rand.Rand) realm.Realm { return bio.New(rc.Bio, rng) },
		emotional.ID:    func(rng *rand.Rand) realm.Realm { return emotional.New(rc.Emotional, rng) },
		symbolic.ID:     func(rng *rand.Rand) realm.Realm { return symbolic.New(rc.Symbolic, rng) },
		social.ID:       func(rng *rand.Rand) realm.Realm { return social.New(rc.Social, rng) },
		holistic.ID:     func(rng *rand.Rand) realm.Realm { return holistic.New(rc.Holistic, rng) },
		neurogenetic.ID: func(rng *rand.Rand) realm.Realm { return neurogenetic.New(rc.Neurogenetic, rng) },
		quantum.ID:      func(rng *rand.Rand) realm.Realm { return quantum.New(rc.Quantum, rng) },
		void.ID:         func(rng *rand.Rand) realm.Realm { return void.New(rc.Void, rng) },
	}
	for _, e := range Catalog {
		build := factories[e.ID]
		rng := rand.New(rand.NewSource(seed + int64(e.ID)))
		if err := c.Register(e.ID, func() realm.Realm { return build(rng) }); err != nil {
			return fmt.Errorf("register %s: %w", e.Name, err)
		}
	}
	return nil
}
