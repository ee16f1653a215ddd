// Package clock advances simulation time in fixed steps.
//
// Wall-clock time is only ever fed into Advance; everything downstream sees
// FrameTime values, so a run is reproducible from its sequence of deltas.
package clock

import "time"

// FrameTime is the time information handed to every per-frame update.
type FrameTime struct {
	Delta   float64 // seconds advanced by this step
	Elapsed float64 // seconds of simulation since the clock started, including Delta
}

// Clock accumulates wall time and releases it as fixed simulation steps.
type Clock struct {
	step     float64
	maxSteps int

	acc     float64
	elapsed float64
	paused  bool
}

// New creates a clock producing steps of the given length. maxSteps bounds the
// steps released by a single Advance so a stalled frame cannot spiral.
func New(step time.Duration, maxSteps int) *Clock {
	if step <= 0 {
		step = time.Second / 60
	}
	if maxSteps < 1 {
		maxSteps = 1
	}
	return &Clock{step: step.Seconds(), maxSteps: maxSteps}
}

// Advance feeds wall time into the accumulator and calls fn once per whole
// step. It returns the number of steps run. Nothing happens while paused.
func (c *Clock) Advance(wall time.Duration, fn func(ft FrameTime)) int {
	if c.paused || wall <= 0 {
		return 0
	}
	c.acc += wall.Seconds()
	steps := 0
	for c.acc >= c.step && steps < c.maxSteps {
		c.acc -= c.step
		fn(c.Next())
		steps++
	}
	if steps == c.maxSteps {
		// drop the backlog rather than catching up over later frames
		c.acc = 0
	}
	return steps
}

// Next advances the clock by exactly one step regardless of pause state.
func (c *Clock) Next() FrameTime {
	c.elapsed += c.step
	return FrameTime{Delta: c.step, Elapsed: c.elapsed}
}

// Step returns the fixed step length in seconds.
func (c *Clock) Step() float64 {
	return c.step
}

// Elapsed returns the simulated seconds so far.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}

// SetPaused stops or resumes the accumulator.
func (c *Clock) SetPaused(p bool) {
	c.paused = p
	if p {
		c.acc = 0
	}
}

// Paused reports whether the clock is paused.
func (c *Clock) Paused() bool {
	return c.paused
}
