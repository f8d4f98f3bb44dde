package core

import "time"

// maxCatchUpSteps bounds how many fixed steps Advance hands out for a single
// wall-clock interval, so a stalled terminal does not trigger a burst of ticks.
const maxCatchUpSteps = 6

// FrameClock drives the simulation with a fixed timestep. Frame and session
// time are derived from the tick count only, never from the wall clock.
type FrameClock struct {
	dt           float64
	frame        uint64
	sessionStart uint64
	accumulator  time.Duration
}

// NewFrameClock creates a clock ticking at tickRate steps per second.
func NewFrameClock(tickRate int) *FrameClock {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &FrameClock{dt: 1.0 / float64(tickRate)}
}

// Dt returns the fixed timestep in seconds.
func (c *FrameClock) Dt() float64 {
	return c.dt
}

// Tick advances the clock by one frame.
func (c *FrameClock) Tick() {
	c.frame++
}

// Frame returns the number of ticks since creation.
func (c *FrameClock) Frame() uint64 {
	return c.frame
}

// GlobalTime returns frame * dt.
func (c *FrameClock) GlobalTime() float64 {
	return float64(c.frame) * c.dt
}

// StartSession marks the current frame as the start of a round.
func (c *FrameClock) StartSession() {
	c.sessionStart = c.frame
}

// SessionTime returns seconds elapsed since the last StartSession.
func (c *FrameClock) SessionTime() float64 {
	return float64(c.frame-c.sessionStart) * c.dt
}

// Advance feeds wall-clock time into the accumulator and returns how many
// fixed steps the caller should run now.
func (c *FrameClock) Advance(elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	step := time.Duration(c.dt * float64(time.Second))
	c.accumulator += elapsed
	n := int(c.accumulator / step)
	if n > maxCatchUpSteps {
		n = maxCatchUpSteps
		c.accumulator = 0
		return n
	}
	c.accumulator -= time.Duration(n) * step
	return n
}
