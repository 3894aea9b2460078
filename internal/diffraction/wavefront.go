package diffraction

import (
	"math"
	"slices"

	"diffract/internal/core"
)

// DefaultStepSize is the propagation step used by the simulation, in meters.
const DefaultStepSize = 0.01

const twoPi = 2 * math.Pi

// pathLimit is the largest point count a path slice can be allocated with.
const pathLimit = 1 << 44

// Wavefront walks a straight ray from its origin at a fixed angle and records
// the visited points.
type Wavefront struct {
	origin core.Point
	angle  float64
	phase  float64
	path   []core.Point
}

// NewWavefront creates a wavefront with an empty path. The phase is
// normalised into [0, 2π); a NaN or infinite phase starts at 0.
func NewWavefront(origin core.Point, angle, phase float64) *Wavefront {
	return &Wavefront{origin: origin, angle: angle, phase: wrapPhase(phase)}
}

// Origin returns the starting point of the ray.
func (w *Wavefront) Origin() core.Point { return w.origin }

// Angle returns the propagation direction in radians.
func (w *Wavefront) Angle() float64 { return w.angle }

// Phase returns the current phase in [0, 2π).
func (w *Wavefront) Phase() float64 { return w.phase }

// Len returns the number of recorded points.
func (w *Wavefront) Len() int { return len(w.path) }

// Path returns a copy of the recorded points.
func (w *Wavefront) Path() []core.Point {
	return core.ClonePoints(w.path)
}

// Draw returns the points a renderer should connect.
func (w *Wavefront) Draw() []core.Point { return w.Path() }

// Clone returns an independent copy of the wavefront.
func (w *Wavefront) Clone() *Wavefront {
	c := *w
	c.path = core.ClonePoints(w.path)
	return &c
}

// StepCount returns floor(distance/stepSize), the number of points a
// Propagate call with the same arguments appends.
func StepCount(distance, stepSize float64) float64 {
	return math.Floor(distance / stepSize)
}

// Propagate walks floor(distance/stepSize) steps from the origin along the
// wavefront angle, appending each point to the path. Every call starts again
// from the origin; the path only grows. A negative distance takes no steps.
// The walk is not bounded; callers that need a memory ceiling check
// StepCount first.
func (w *Wavefront) Propagate(distance, stepSize float64) error {
	if !(stepSize > 0) || !finite(stepSize) {
		return invalidParam("propagate", "step_size", stepSize)
	}
	if !finite(distance) {
		return invalidParam("propagate", "distance", distance)
	}
	n := StepCount(distance, stepSize)
	if n > pathLimit {
		return invalidParam("propagate", "distance", distance)
	}
	steps := int(n)
	if steps <= 0 {
		return nil
	}
	dir := core.Point{X: stepSize * math.Cos(w.angle), Y: stepSize * math.Sin(w.angle)}
	w.path = slices.Grow(w.path, steps)
	for k := 1; k <= steps; k++ {
		w.path = append(w.path, w.origin.Add(dir.Scale(float64(k))))
	}
	return nil
}

// UpdatePhase advances the phase by increment, wrapping into [0, 2π). A NaN
// or infinite increment is rejected and leaves the phase unchanged.
func (w *Wavefront) UpdatePhase(increment float64) error {
	if !finite(increment) {
		return invalidParam("update phase", "increment", increment)
	}
	w.phase = wrapPhase(w.phase + increment)
	return nil
}

func wrapPhase(p float64) float64 {
	if !finite(p) {
		return 0
	}
	p = math.Mod(p, twoPi)
	if p < 0 {
		p += twoPi
	}
	// Adding 2π to a tiny negative remainder can round up to exactly 2π.
	if p >= twoPi {
		p = 0
	}
	return p
}
