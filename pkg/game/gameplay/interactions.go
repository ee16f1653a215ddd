package gameplay

import (
	"math"

	"eightcircuits/pkg/game/state"
)

// defaultAmbient is the drone level of realms that do not drive it.
const defaultAmbient = 0.2

// collectRealmFeeds moves the live realm's notices into the message log and
// refreshes its status lines and ambient level.
func collectRealmFeeds(g *state.Game) {
	f := g.Feeds
	if f.Notices != nil {
		for _, msg := range f.Notices.DrainNotices() {
			logMessage(g, "%s", msg)
		}
	}

	g.Status = nil
	if f.Status != nil {
		g.Status = f.Status.Status()
	}

	g.Ambient = defaultAmbient
	if f.Ambient != nil {
		g.Ambient = math.Max(0, math.Min(1, f.Ambient.AmbientLevel()))
	}
	if g.Sound != nil {
		g.Sound.SetAmbient(g.Ambient)
	}
}
