package core

import "time"

// maxCatchUp bounds how many ticks a single Advance may report after a stall.
const maxCatchUp = 8

// FixedStep paces animation ticks at a steady rate independent of frame rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{}
	fs.SetTPS(tps)
	return fs
}

// SetTPS changes the tick rate. Non-positive values fall back to 60.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Step returns the duration of one tick.
func (f *FixedStep) Step() time.Duration { return f.step }

// Advance feeds elapsed time into the accumulator and returns how many whole
// ticks are due. The result is capped so a long pause does not produce a
// burst of catch-up ticks.
func (f *FixedStep) Advance(delta time.Duration) int {
	if delta < 0 {
		delta = 0
	}
	f.accumulator += delta
	n := int(f.accumulator / f.step)
	f.accumulator -= time.Duration(n) * f.step
	if n > maxCatchUp {
		n = maxCatchUp
		f.accumulator = 0
	}
	return n
}

// Ticks measures wall time since the previous call and reports the due ticks.
func (f *FixedStep) Ticks() int {
	now := time.Now()
	if f.last.IsZero() {
		f.last = now
		return 0
	}
	delta := now.Sub(f.last)
	f.last = now
	return f.Advance(delta)
}
