package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// DroneGenerator generates the endless ambient drone: a root tone and a
// fifth above it, with a slow swell.
type DroneGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewDroneGenerator creates a drone on freq Hz
func NewDroneGenerator(sr beep.SampleRate, freq float64) *DroneGenerator {
	return &DroneGenerator{sr: sr, freq: freq}
}

// swellSeconds is the period of the drone's amplitude swell.
const swellSeconds = 8.0

func (g *DroneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		swell := 0.75 + 0.25*math.Sin(2*math.Pi*t/swellSeconds)
		v := 0.6*math.Sin(2*math.Pi*g.freq*t) + 0.3*math.Sin(2*math.Pi*g.freq*1.5*t)
		v *= swell
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *DroneGenerator) Err() error {
	return nil
}

// ChimeGenerator generates a short bell: fundamental plus octave with an
// exponential decay. It ends after its duration.
type ChimeGenerator struct {
	sr      beep.SampleRate
	freq    float64
	pos     int
	samples int
}

// chimeDuration is how long a transition chime rings.
const chimeDuration = 600 * time.Millisecond

// NewChimeGenerator creates a chime on freq Hz
func NewChimeGenerator(sr beep.SampleRate, freq float64) *ChimeGenerator {
	return &ChimeGenerator{
		sr:      sr,
		freq:    freq,
		samples: sr.N(chimeDuration),
	}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.samples {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.samples {
			return i, true
		}
		t := float64(g.pos) / float64(g.sr)
		env := math.Exp(-6 * t)
		v := env * (0.7*math.Sin(2*math.Pi*g.freq*t) + 0.3*math.Sin(4*math.Pi*g.freq*t))
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}

// ChimeFrequency returns the chime pitch for realm id: one step of a major
// pentatonic scale per circuit, two octaves above the drone.
func ChimeFrequency(base float64, id int) float64 {
	steps := []int{0, 2, 4, 7, 9, 12, 14, 16}
	i := id - 1
	if i < 0 {
		i = 0
	}
	if i >= len(steps) {
		i = len(steps) - 1
	}
	return base * 4 * math.Pow(2, float64(steps[i])/12)
}
