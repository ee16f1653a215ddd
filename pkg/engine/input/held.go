package input

import "github.com/zyedidia/generic/mapset"

// Held tracks which continuous actions are currently held.
//
// Devices with key-up events (Ebiten) call Press and Release. The terminal
// only reports key presses, so it uses Pulse: the action counts as held for
// a short window that each repeated press extends.
type Held struct {
	pressed mapset.Set[Action]
	pulses  map[Action]float64
}

// NewHeld creates an empty held-key state.
func NewHeld() *Held {
	return &Held{
		pressed: mapset.New[Action](),
		pulses:  make(map[Action]float64),
	}
}

// Press marks an action as held until Release.
func (h *Held) Press(a Action) {
	h.pressed.Put(a)
}

// Release clears a pressed action.
func (h *Held) Release(a Action) {
	h.pressed.Remove(a)
}

// Pulse holds an action for ttl seconds.
func (h *Held) Pulse(a Action, ttl float64) {
	if ttl > h.pulses[a] {
		h.pulses[a] = ttl
	}
}

// Decay ages pulses by dt seconds.
func (h *Held) Decay(dt float64) {
	for a, ttl := range h.pulses {
		ttl -= dt
		if ttl <= 0 {
			delete(h.pulses, a)
			continue
		}
		h.pulses[a] = ttl
	}
}

// Has reports whether an action is held by press or pulse.
func (h *Held) Has(a Action) bool {
	if h.pressed.Has(a) {
		return true
	}
	_, ok := h.pulses[a]
	return ok
}

// Reset releases everything.
func (h *Held) Reset() {
	h.pressed = mapset.New[Action]()
	h.pulses = make(map[Action]float64)
}
