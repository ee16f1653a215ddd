package realm

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// RandRange returns a uniform value in [lo, hi).
func RandRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// ScatterDisc returns a uniform point inside a horizontal disc of the given
// radius around center, at center's height plus yOffset.
func ScatterDisc(rng *rand.Rand, center mgl64.Vec3, radius, yOffset float64) mgl64.Vec3 {
	angle := rng.Float64() * 2 * math.Pi
	dist := radius * math.Sqrt(rng.Float64())
	return mgl64.Vec3{
		center.X() + math.Cos(angle)*dist,
		center.Y() + yOffset,
		center.Z() + math.Sin(angle)*dist,
	}
}

// RingPoint returns the i-th of n evenly spaced points on a horizontal ring.
func RingPoint(i, n int, radius, y float64) mgl64.Vec3 {
	angle := float64(i) / float64(n) * 2 * math.Pi
	return mgl64.Vec3{math.Cos(angle) * radius, y, math.Sin(angle) * radius}
}

// RandomColor returns a color with uniform random components.
func RandomColor(rng *rand.Rand) (r, g, b float64) {
	return rng.Float64(), rng.Float64(), rng.Float64()
}
