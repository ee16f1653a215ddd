package holistic

import (
	"github.com/go-gl/mathgl/mgl64"
)

// FlowID is a stable handle to a flow. IDs are never reused; zero is never issued.
type FlowID int

// Flow is one energy stream: a sampled path and its animation state.
type Flow struct {
	ID       FlowID
	Path     []mgl64.Vec3
	Speed    float64
	Offset   float64
	Branches int
	Parent   FlowID
}

// Arena holds at most Cap flows. Adding to a full arena evicts the oldest.
type Arena struct {
	capacity int
	flows    map[FlowID]*Flow
	order    []FlowID
	next     FlowID
}

// NewArena creates an arena bounded to capacity flows (at least one).
func NewArena(capacity int) *Arena {
	if capacity < 1 {
		capacity = 1
	}
	return &Arena{
		capacity: capacity,
		flows:    make(map[FlowID]*Flow, capacity),
	}
}

// Add stores f under a fresh ID. When the arena is full the oldest flow is
// dropped first and its ID returned as evicted; otherwise evicted is zero.
func (a *Arena) Add(f Flow) (id, evicted FlowID) {
	if len(a.order) >= a.capacity {
		evicted = a.order[0]
		a.Remove(evicted)
	}
	a.next++
	f.ID = a.next
	a.flows[f.ID] = &f
	a.order = append(a.order, f.ID)
	return f.ID, evicted
}

// Remove deletes the flow with id. It reports whether it existed.
func (a *Arena) Remove(id FlowID) bool {
	if _, ok := a.flows[id]; !ok {
		return false
	}
	delete(a.flows, id)
	for i, cand := range a.order {
		if cand == id {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	return true
}

// Get returns the flow with id.
func (a *Arena) Get(id FlowID) (*Flow, bool) {
	f, ok := a.flows[id]
	return f, ok
}

// IDs returns a snapshot of the live IDs, oldest first.
func (a *Arena) IDs() []FlowID {
	out := make([]FlowID, len(a.order))
	copy(out, a.order)
	return out
}

func (a *Arena) Len() int { return len(a.order) }
func (a *Arena) Cap() int { return a.capacity }

// Clear drops every flow. Issued IDs stay retired.
func (a *Arena) Clear() {
	a.flows = make(map[FlowID]*Flow, a.capacity)
	a.order = nil
}

// pointAt returns the point a fraction t (wrapped to 0..1) along path.
func pointAt(path []mgl64.Vec3, t float64) mgl64.Vec3 {
	if len(path) == 0 {
		return mgl64.Vec3{}
	}
	if len(path) == 1 {
		return path[0]
	}
	t -= float64(int(t))
	if t < 0 {
		t++
	}
	f := t * float64(len(path)-1)
	i := int(f)
	if i >= len(path)-1 {
		return path[len(path)-1]
	}
	return path[i].Add(path[i+1].Sub(path[i]).Mul(f - float64(i)))
}

// closestPoints returns the indices of the closest pair of samples between
// two paths and their distance.
func closestPoints(a, b []mgl64.Vec3) (ia, ib int, dist float64) {
	dist = -1
	for i, p := range a {
		for j, q := range b {
			d := p.Sub(q).Len()
			if dist < 0 || d < dist {
				ia, ib, dist = i, j, d
			}
		}
	}
	return ia, ib, dist
}
