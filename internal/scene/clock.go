package scene

import "time"

const (
	// FixedStep is the physics tick length.
	FixedStep = 20 * time.Millisecond
	// maxStepsPerFrame caps catch-up after a long frame.
	maxStepsPerFrame = 5
)

// Clock turns variable frame deltas into a count of fixed physics steps.
type Clock struct {
	acc time.Duration
}

// Advance adds a frame delta scaled by timeScale and returns how many fixed
// steps are due. Time beyond the per-frame cap is dropped.
func (c *Clock) Advance(delta time.Duration, timeScale float64) int {
	if delta <= 0 || timeScale <= 0 {
		return 0
	}
	c.acc += time.Duration(float64(delta) * timeScale)

	steps := 0
	for c.acc >= FixedStep && steps < maxStepsPerFrame {
		c.acc -= FixedStep
		steps++
	}
	if steps == maxStepsPerFrame && c.acc >= FixedStep {
		c.acc = 0
	}
	return steps
}

// StepSeconds is FixedStep in seconds.
func StepSeconds() float32 {
	return float32(FixedStep.Seconds())
}
