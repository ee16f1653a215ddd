// Package coordinator decides which realm is live and owns realm construction and activation order.
package coordinator

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"eightcircuits/pkg/engine/clock"
	"eightcircuits/pkg/game/interaction"
	"eightcircuits/pkg/game/realm"
)

var (
	// ErrUnknownRealm is returned when activation names an unregistered id.
	ErrUnknownRealm = errors.New("unknown realm")
	// ErrAlreadyRegistered is returned when an id is registered twice.
	ErrAlreadyRegistered = errors.New("realm already registered")
)

// Factory constructs a realm. It is called at most once per id.
type Factory func() realm.Realm

// Coordinator maps realm ids to realms and tracks the active one.
type Coordinator struct {
	factories    map[int]Factory
	realms       map[int]realm.Realm
	activeID     int
	interactions *interaction.Manager

	// OnTransition is called after a successful switch. from is nil on the first activation.
	OnTransition func(from, to realm.Realm)
}

// New creates a coordinator that keeps im pointed at the active realm.
func New(im *interaction.Manager) *Coordinator {
	return &Coordinator{
		factories:    make(map[int]Factory),
		realms:       make(map[int]realm.Realm),
		interactions: im,
	}
}

// Register stores a factory for id without invoking it.
func (c *Coordinator) Register(id int, f Factory) error {
	if id <= 0 {
		return fmt.Errorf("register realm %d: ids start at 1", id)
	}
	if _, ok := c.factories[id]; ok {
		return fmt.Errorf("register realm %d: %w", id, ErrAlreadyRegistered)
	}
	c.factories[id] = f
	return nil
}

// PrepareAll constructs every registered realm that has not been built yet,
// leaving each uninitialized. A failing factory is replaced by a fallback realm.
func (c *Coordinator) PrepareAll() {
	for _, id := range c.IDs() {
		c.instance(id)
	}
}

// instance returns the realm for id, constructing it on first use.
func (c *Coordinator) instance(id int) (realm.Realm, bool) {
	if r, ok := c.realms[id]; ok {
		return r, true
	}
	f, ok := c.factories[id]
	if !ok {
		return nil, false
	}
	r := construct(id, f)
	c.realms[id] = r
	return r, true
}

func construct(id int, f Factory) (r realm.Realm) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Error creating realm %d: %v", id, rec)
			r = realm.NewFallback(id, fmt.Sprintf("Realm %d", id), "")
		}
	}()
	r = f()
	if r == nil {
		log.Printf("Error creating realm %d: factory returned nil", id)
		r = realm.NewFallback(id, fmt.Sprintf("Realm %d", id), "")
	}
	return r
}

// Activate makes id the live realm. Activating the live realm is a no-op.
// An unknown id returns ErrUnknownRealm and leaves the previous realm live.
func (c *Coordinator) Activate(id int) error {
	if id == c.activeID && c.activeID != 0 {
		return nil
	}
	target, ok := c.instance(id)
	if !ok {
		err := fmt.Errorf("activate realm %d: %w", id, ErrUnknownRealm)
		log.Printf("%v", err)
		return err
	}

	previous := c.Active()
	if previous != nil {
		previous.SetVisible(false)
	}

	if !target.Initialized() {
		if err := setup(target); err != nil {
			log.Printf("Realm %d setup failed, using fallback scene: %v", id, err)
			target.InstallFallback()
		}
	}

	target.SetVisible(true)
	c.activeID = id

	if c.interactions != nil {
		c.interactions.SetActive(target)
	}
	if c.OnTransition != nil {
		c.OnTransition(previous, target)
	}
	return nil
}

// setup runs r.Setup, converting a panic into an error.
func setup(r realm.Realm) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", realm.ErrSetupPanicked, rec)
		}
	}()
	return r.Setup()
}

// Active returns the live realm, or nil.
func (c *Coordinator) Active() realm.Realm {
	if c.activeID == 0 {
		return nil
	}
	return c.realms[c.activeID]
}

// ActiveID returns the live realm id, or 0.
func (c *Coordinator) ActiveID() int {
	return c.activeID
}

// Realm returns the constructed realm for id.
func (c *Coordinator) Realm(id int) (realm.Realm, bool) {
	r, ok := c.realms[id]
	return r, ok
}

// IDs returns the registered ids in ascending order.
func (c *Coordinator) IDs() []int {
	ids := make([]int, 0, len(c.factories))
	for id := range c.factories {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Tick advances only the live realm. Hidden realms stay frozen.
// A panic inside the realm is logged and the frame continues.
func (c *Coordinator) Tick(ft clock.FrameTime) {
	r := c.Active()
	if r == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Realm %d tick failed: %v", r.ID(), rec)
		}
	}()
	r.Tick(ft)
}

// DisposeAll releases every constructed realm and clears the live pointer.
func (c *Coordinator) DisposeAll() {
	for _, id := range c.IDs() {
		if r, ok := c.realms[id]; ok {
			r.Dispose()
		}
	}
	c.activeID = 0
	if c.interactions != nil {
		c.interactions.SetActive(nil)
	}
}
