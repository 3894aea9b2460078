package diffraction

import (
	"fmt"
	"math"
)

// Spot is one diffraction maximum on the observation screen.
type Spot struct {
	// Order is the diffraction order m in [MinOrder, MaxOrder].
	Order int `json:"order" yaml:"order"`
	// Position is the displacement on the screen from the optical axis, in meters.
	Position float64 `json:"position" yaml:"position"`
	// Angle is the diffraction angle in radians.
	Angle float64 `json:"angle" yaml:"angle"`
	// Intensity is relative to the source, typically in [0, source intensity].
	Intensity float64 `json:"intensity" yaml:"intensity"`
}

// CalculateIntensity recomputes the spot intensity from a base intensity and
// the spot's order using a cos² modulation, stores it and returns it.
//
// For integer orders cos²(πm) is always 1, so every spot receives the base
// intensity. The modulation is kept as-is rather than replaced by a sinc
// envelope.
func (s *Spot) CalculateIntensity(base float64) float64 {
	s.Intensity = orderIntensity(base, s.Order)
	return s.Intensity
}

// String describes the spot for logs and terminal output.
func (s Spot) String() string {
	return fmt.Sprintf("order %+d: position %.6f m, angle %.6f rad, intensity %.2f",
		s.Order, s.Position, s.Angle, s.Intensity)
}

func orderIntensity(base float64, order int) float64 {
	c := math.Cos(math.Pi * float64(order))
	return base * c * c
}
