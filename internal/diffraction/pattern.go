package diffraction

import (
	"fmt"
	"math"
	"strings"
)

// Diffraction orders evaluated by the solver.
const (
	MinOrder = -10
	MaxOrder = 10
)

// PatternType names the interference model. Only monochromatic single
// aperture maxima are computed; other types are carried as labels.
type PatternType string

const (
	PatternMonochromatic PatternType = "monochromatic"
	PatternMultiSlit     PatternType = "multi-slit"
)

// ParsePatternType converts a textual pattern type. Empty means monochromatic.
func ParsePatternType(s string) (PatternType, error) {
	switch PatternType(strings.ToLower(strings.TrimSpace(s))) {
	case "", PatternMonochromatic:
		return PatternMonochromatic, nil
	case PatternMultiSlit:
		return PatternMultiSlit, nil
	default:
		return "", fmt.Errorf("%w: unknown pattern type %q", ErrInvalidParameter, s)
	}
}

// Pattern holds the diffraction maxima observed on a screen placed
// screenDistance meters behind the lens.
type Pattern struct {
	screenDistance float64
	kind           PatternType
	spots          []Spot
}

// NewPattern allocates an empty pattern. Geometry is validated on Calculate.
func NewPattern(screenDistance float64, kind PatternType) *Pattern {
	if kind == "" {
		kind = PatternMonochromatic
	}
	return &Pattern{screenDistance: screenDistance, kind: kind}
}

// ScreenDistance returns the lens-to-screen distance in meters.
func (p *Pattern) ScreenDistance() float64 { return p.screenDistance }

// Type returns the pattern type label.
func (p *Pattern) Type() PatternType { return p.kind }

// SetScreenDistance moves the screen. Previously computed spots no longer
// describe the geometry and are discarded.
func (p *Pattern) SetScreenDistance(d float64) {
	p.screenDistance = d
	p.spots = nil
}

// Spots returns a copy of the most recently calculated maxima in ascending order.
func (p *Pattern) Spots() []Spot {
	if p.spots == nil {
		return nil
	}
	return append([]Spot(nil), p.spots...)
}

// Display returns the spots for presentation.
func (p *Pattern) Display() []Spot { return p.Spots() }

// Calculate solves the grating equation sin θ = mλ/a for every order in
// [MinOrder, MaxOrder], keeps the physically realizable ones and projects
// them onto the screen at x = L·tan θ.
//
// The spot list is replaced, never appended to. On failure it is cleared.
func (p *Pattern) Calculate(light *LightSource, lens *Lens) error {
	p.spots = nil
	if light == nil || lens == nil {
		return preconditionf("calculate pattern requires a light source and a lens")
	}
	aperture := lens.CurvatureRadius()
	if aperture == 0 || !finite(aperture) {
		return invalidGeometry("calculate pattern", "aperture", aperture)
	}
	if !(p.screenDistance > 0) || !finite(p.screenDistance) {
		return invalidGeometry("calculate pattern", "screen_distance", p.screenDistance)
	}

	wavelength := light.Wavelength()
	spots := make([]Spot, 0, MaxOrder-MinOrder+1)
	for m := MinOrder; m <= MaxOrder; m++ {
		sinTheta := float64(m) * wavelength / aperture
		if math.Abs(sinTheta) > 1 {
			continue
		}
		theta := math.Asin(sinTheta)
		spots = append(spots, Spot{
			Order:     m,
			Position:  p.screenDistance * math.Tan(theta),
			Angle:     theta,
			Intensity: orderIntensity(light.Intensity(), m),
		})
	}
	p.spots = spots
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
