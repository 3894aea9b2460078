package diffraction

import (
	"fmt"
	"strings"
)

// Shape names the outline of a lens. It is descriptive only.
type Shape string

const (
	ShapeCircular   Shape = "circular"
	ShapeElliptical Shape = "elliptical"
	ShapeCustom     Shape = "custom"
)

// ParseShape converts a textual shape name. An empty name means circular.
func ParseShape(s string) (Shape, error) {
	switch Shape(strings.ToLower(strings.TrimSpace(s))) {
	case "", ShapeCircular:
		return ShapeCircular, nil
	case ShapeElliptical:
		return ShapeElliptical, nil
	case ShapeCustom:
		return ShapeCustom, nil
	default:
		return "", fmt.Errorf("%w: unknown lens shape %q", ErrInvalidParameter, s)
	}
}

// Lens is a simple optical element. The curvature radius doubles as the
// effective aperture width when solving the diffraction pattern.
type Lens struct {
	focalLength     float64
	curvatureRadius float64
	refractiveIndex float64
	shape           Shape
}

// LensProfile is a value snapshot of a lens.
type LensProfile struct {
	FocalLength     float64 `json:"focal_length" yaml:"focal_length"`
	CurvatureRadius float64 `json:"curvature_radius" yaml:"curvature_radius"`
	RefractiveIndex float64 `json:"refractive_index" yaml:"refractive_index"`
	Shape           Shape   `json:"shape" yaml:"shape"`
}

// NewLens returns an immutable lens. An empty shape defaults to circular.
func NewLens(focalLength, curvatureRadius, refractiveIndex float64, shape Shape) *Lens {
	if shape == "" {
		shape = ShapeCircular
	}
	return &Lens{
		focalLength:     focalLength,
		curvatureRadius: curvatureRadius,
		refractiveIndex: refractiveIndex,
		shape:           shape,
	}
}

// FocalLength returns the nominal focal length in meters. It is informational;
// FocalPoint derives the value actually implied by the lens geometry.
func (l *Lens) FocalLength() float64 { return l.focalLength }

// CurvatureRadius returns the radius of curvature in meters.
func (l *Lens) CurvatureRadius() float64 { return l.curvatureRadius }

// RefractiveIndex returns the refractive index of the lens material.
func (l *Lens) RefractiveIndex() float64 { return l.refractiveIndex }

// Shape returns the lens outline.
func (l *Lens) Shape() Shape { return l.shape }

// FocalPoint applies the thin-lens formula 1/f = (n-1)/R.
func (l *Lens) FocalPoint() (float64, error) {
	if l.curvatureRadius == 0 {
		return 0, invalidParam("focal point", "curvature_radius", l.curvatureRadius)
	}
	if !(l.refractiveIndex > 1) {
		return 0, invalidParam("focal point", "refractive_index", l.refractiveIndex)
	}
	return 1 / ((l.refractiveIndex - 1) * (1 / l.curvatureRadius)), nil
}

// Refract reports where light from the source converges after the lens.
// Only the focal distance is modelled; the source does not influence it.
func (l *Lens) Refract(_ *LightSource) (float64, error) {
	return l.FocalPoint()
}

// Profile returns a snapshot of every lens field.
func (l *Lens) Profile() LensProfile {
	return LensProfile{
		FocalLength:     l.focalLength,
		CurvatureRadius: l.curvatureRadius,
		RefractiveIndex: l.refractiveIndex,
		Shape:           l.shape,
	}
}
