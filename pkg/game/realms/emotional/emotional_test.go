package emotional

import (
	"math"
	"math/rand"
	"testing"

	"eightcircuits/pkg/game/config"
	"eightcircuits/pkg/game/player"
	"eightcircuits/pkg/game/realm"
)

func newRealm(t *testing.T) *Realm {
	t.Helper()
	r := New(config.Default().Realms.Emotional, rand.New(rand.NewSource(2)))
	if err := r.Setup(); err != nil {
		t.Fatalf("Setup() = %v, want nil", err)
	}
	return r
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestSetup_BuildsVillage(t *testing.T) {
	r := newRealm(t)
	s := r.Scene()
	if got := len(s.Tagged("territory")); got != factionCount {
		t.Errorf("territories = %d, want %d", got, factionCount)
	}
	if got := len(s.Tagged("structure")); got != factionCount*structuresPerFaction {
		t.Errorf("structures = %d, want %d", got, factionCount*structuresPerFaction)
	}
	npcs := len(s.Tagged("npc"))
	cfg := config.Default().Realms.Emotional
	if npcs < factionCount*cfg.NPCMin || npcs > factionCount*cfg.NPCMax {
		t.Errorf("npcs = %d, want between %d and %d", npcs, factionCount*cfg.NPCMin, factionCount*cfg.NPCMax)
	}
	for e := Anger; e < emotionCount; e++ {
		if got := r.Emotion(e); got != 0.5 {
			t.Errorf("Emotion(%v) = %v, want 0.5", e, got)
		}
	}
}

func TestSetEmotion_ClampsAndDerivesStanding(t *testing.T) {
	r := newRealm(t)
	r.SetEmotion(Anger, 2)
	if got := r.Emotion(Anger); got != 1 {
		t.Errorf("Emotion(Anger) = %v, want 1", got)
	}
	red := r.Factions()[0]
	if !near(red.Relationship, 1) || !near(red.Influence, 0.5) {
		t.Errorf("red = (%v, %v), want (1, 0.5)", red.Relationship, red.Influence)
	}

	r.SetEmotion(Joy, -1)
	green := r.Factions()[2]
	if !near(green.Relationship, -1) || !near(green.Influence, 0.2) {
		t.Errorf("green = (%v, %v), want (-1, 0.2)", green.Relationship, green.Influence)
	}
}

func TestInteract_Territory(t *testing.T) {
	r := newRealm(t)
	green := r.Factions()[2]

	r.HandleInteraction(realm.Event{Kind: realm.EventInteract, Position: green.center})

	if got := r.Emotion(Joy); !near(got, 0.6) {
		t.Errorf("Emotion(Joy) = %v, want 0.6", got)
	}
	// 0.6*2-1 from joy, then the territory bond.
	if !near(green.Relationship, 0.3) {
		t.Errorf("Relationship = %v, want 0.3", green.Relationship)
	}
}

func TestInteract_Structure(t *testing.T) {
	r := newRealm(t)
	var target int
	for _, n := range r.Scene().Tagged("structure") {
		if r.owners[n.ID] == 0 {
			r.HandleInteraction(realm.Event{Kind: realm.EventInteract, Position: n.Position})
			target = r.owners[n.ID]
			break
		}
	}
	if target != 0 {
		t.Fatalf("owner = %d, want 0", target)
	}
	if got := r.Emotion(Anger); !near(got, 0.7) {
		t.Errorf("Emotion(Anger) = %v, want 0.7", got)
	}
	if got := r.Emotion(Joy); !near(got, 0.4) {
		t.Errorf("Emotion(Joy) = %v, want 0.4", got)
	}
	if red := r.Factions()[0]; !near(red.Relationship, 0.6) {
		t.Errorf("red.Relationship = %v, want 0.6", red.Relationship)
	}
}

func TestInteract_ActionIgnored(t *testing.T) {
	r := newRealm(t)
	r.HandleInteraction(realm.Event{Kind: realm.EventAction, Position: r.Factions()[0].center})
	if got := r.Emotion(Anger); got != 0.5 {
		t.Errorf("Emotion(Anger) = %v, want 0.5", got)
	}
}

func TestUpdateWeather(t *testing.T) {
	tests := []struct {
		name      string
		sadness   float64
		anger     float64
		want      Weather
		intensity float64
	}{
		{"calm", 0.5, 0.5, WeatherCalm, 0},
		{"rain", 0.8, 0.5, WeatherRain, 0.5},
		{"storm beats rain", 0.8, 1, WeatherStorm, 0.99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRealm(t)
			r.SetEmotion(Sadness, tt.sadness)
			r.SetEmotion(Anger, tt.anger)
			r.updateWeather(r.cfg.WeatherLerpSeconds)
			if r.weather != tt.want {
				t.Errorf("weather = %v, want %v", r.weather, tt.want)
			}
			if !near(r.weatherIntensity, tt.intensity) {
				t.Errorf("weatherIntensity = %v, want %v", r.weatherIntensity, tt.intensity)
			}
		})
	}
}

func TestNPC_IdleMoveArrive(t *testing.T) {
	r := newRealm(t)
	n := r.npcs[0]
	n.maxIdle = 0

	r.updateNPCs(0.01)
	if n.state != npcMoving {
		t.Fatalf("state = %v, want moving", n.state)
	}
	for i := 0; i < 10000 && n.state == npcMoving; i++ {
		r.updateNPCs(0.1)
	}
	if n.state != npcIdle {
		t.Fatalf("state = %v after walking, want idle", n.state)
	}
	if d := n.node.Position.Sub(n.target).Len(); d >= r.cfg.ArriveDistance {
		t.Errorf("distance to target = %v, want < %v", d, r.cfg.ArriveDistance)
	}
	if d := n.node.Position.Sub(n.home).Len(); d > r.cfg.WanderRadius+r.cfg.ArriveDistance {
		t.Errorf("distance from home = %v, want <= %v", d, r.cfg.WanderRadius)
	}
}

func TestFlash_RestartsInsteadOfStacking(t *testing.T) {
	r := newRealm(t)
	center := r.Factions()[1].center
	r.HandleInteraction(realm.Event{Kind: realm.EventInteract, Position: center})
	r.HandleInteraction(realm.Event{Kind: realm.EventInteract, Position: center})

	r.Tasks().Tick(0.01)
	if got := r.Tasks().Len(); got != 1 {
		t.Errorf("Tasks().Len() = %d, want 1", got)
	}

	r.Tasks().Tick(r.cfg.FlashSeconds)
	if got := r.Tasks().Len(); got != 0 {
		t.Errorf("Tasks().Len() = %d after flash, want 0", got)
	}
	if got := r.Factions()[1].terrain.Opacity; got != territoryOpacity {
		t.Errorf("Opacity = %v, want %v", got, territoryOpacity)
	}
}

func TestCheckProximity_AuraFollowsPlayer(t *testing.T) {
	r := newRealm(t)
	p := player.New(player.DefaultSettings())
	p.SetPosition(p.Position().Add(p.Forward().Mul(4)))
	r.CheckProximity(p)
	if r.aura.Position != p.Position() {
		t.Errorf("aura at %v, want %v", r.aura.Position, p.Position())
	}
}
